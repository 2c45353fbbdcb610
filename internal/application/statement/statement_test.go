package statement

import (
	"testing"
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func idPtr(id int64) *int64   { return &id }

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestBuildRows(t *testing.T) {
	b := NewBuilder(saoPaulo(t))
	txs := []entity.Transaction{
		{
			ID:                 2,
			CreatedAt:          time.Date(2024, 3, 5, 17, 4, 9, 0, time.UTC),
			Kind:               enum.TransactionKindPayment,
			SignedAmountMinor:  -500,
			BalanceBeforeMinor: 1250,
			BalanceAfterMinor:  750,
			OperatorID:         idPtr(9),
		},
		{
			ID:                 1,
			CreatedAt:          time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC),
			Kind:               enum.TransactionKindSale,
			SignedAmountMinor:  1250,
			BalanceBeforeMinor: 0,
			BalanceAfterMinor:  1250,
			Note:               strPtr("pão e leite"),
			OperatorName:       strPtr("Ana"),
		},
	}

	rows := b.BuildRows(txs, map[int64]string{9: "joao"})
	require.Len(t, rows, 2)

	assert.Equal(t, int64(2), rows[0].ID)
	assert.Equal(t, "Pagamento", rows[0].KindLabel)
	assert.Equal(t, "05/03/2024, 14:04:09", rows[0].CreatedAtLabel)
	assert.Equal(t, "-R$ 5,00", rows[0].AmountLabel)
	assert.Equal(t, "R$ 12,50", rows[0].BalanceBeforeLabel)
	assert.Equal(t, "R$ 7,50", rows[0].BalanceAfterLabel)
	assert.Equal(t, "-", rows[0].NoteLabel)
	assert.Equal(t, "joao", rows[0].OperatorLabel)

	assert.Equal(t, "pão e leite", rows[1].NoteLabel)
	assert.Equal(t, "Ana", rows[1].OperatorLabel)
}

func TestBuildRows_Empty(t *testing.T) {
	rows := NewBuilder(nil).BuildRows(nil, nil)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestResolveOperatorLabel(t *testing.T) {
	names := map[int64]string{4: "carla"}

	tests := []struct {
		name string
		tx   entity.Transaction
		want string
	}{
		{"name wins", entity.Transaction{OperatorName: strPtr("Ana"), OperatorUsername: strPtr("ana"), OperatorID: idPtr(4)}, "Ana"},
		{"username next", entity.Transaction{OperatorUsername: strPtr("ana"), OperatorLogin: strPtr("a1")}, "ana"},
		{"login next", entity.Transaction{OperatorLogin: strPtr("a1"), OperatorID: idPtr(4)}, "a1"},
		{"lookup by id", entity.Transaction{OperatorID: idPtr(4)}, "carla"},
		{"id missing from lookup", entity.Transaction{OperatorID: idPtr(5)}, UnknownOperator},
		{"zero id", entity.Transaction{OperatorID: idPtr(0)}, UnknownOperator},
		{"nothing at all", entity.Transaction{}, "Não informado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveOperatorLabel(&tt.tx, names))
		})
	}
}

func TestFilterDebtOnly(t *testing.T) {
	rows := []Row{
		{ID: 1, BalanceBeforeMinor: 0, BalanceAfterMinor: 0},
		{ID: 2, BalanceBeforeMinor: 0, BalanceAfterMinor: 100},
		{ID: 3, BalanceBeforeMinor: 100, BalanceAfterMinor: 0},
		{ID: 4, BalanceBeforeMinor: -50, BalanceAfterMinor: -10},
		{ID: 5, BalanceBeforeMinor: 10, BalanceAfterMinor: 20},
	}

	got := FilterDebtOnly(rows)

	ids := make([]int64, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{2, 3, 5}, ids)
	assert.LessOrEqual(t, len(got), len(rows))
}

func TestSummarize(t *testing.T) {
	rows := []Row{
		{Kind: enum.TransactionKindSale},
		{Kind: enum.TransactionKindPayment},
		{Kind: enum.TransactionKindSale},
	}

	assert.Equal(t, Summary{SaleCount: 2, PaymentCount: 1}, Summarize(rows))
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestOperatorIDs(t *testing.T) {
	txs := []entity.Transaction{
		{OperatorID: idPtr(3)},
		{},
		{OperatorID: idPtr(1)},
		{OperatorID: idPtr(3)},
	}

	assert.Equal(t, []int64{3, 1}, OperatorIDs(txs))
}

func TestSortBy(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []Row{
		{ID: 1, CreatedAt: base},
		{ID: 3, CreatedAt: base.Add(time.Hour)},
		{ID: 2, CreatedAt: base},
	}

	sorted := SortBy(rows, NewestFirst)

	assert.Equal(t, []int64{3, 2, 1}, []int64{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	assert.Equal(t, int64(1), rows[0].ID, "input must not be reordered")

	sorted = SortBy(rows, OldestFirst)
	assert.Equal(t, []int64{1, 2, 3}, []int64{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestCheckContinuity(t *testing.T) {
	t.Run("consistent newest first feed", func(t *testing.T) {
		rows := []Row{
			{ID: 3, AmountMinor: -300, BalanceBeforeMinor: 1500, BalanceAfterMinor: 1200},
			{ID: 2, AmountMinor: 500, BalanceBeforeMinor: 1000, BalanceAfterMinor: 1500},
			{ID: 1, AmountMinor: 1000, BalanceBeforeMinor: 0, BalanceAfterMinor: 1000},
		}
		assert.Empty(t, CheckContinuity(rows))
	})

	t.Run("broken chain and bad delta", func(t *testing.T) {
		rows := []Row{
			{ID: 1, AmountMinor: 1000, BalanceBeforeMinor: 0, BalanceAfterMinor: 1000},
			{ID: 2, AmountMinor: 500, BalanceBeforeMinor: 900, BalanceAfterMinor: 1400},
			{ID: 3, AmountMinor: 100, BalanceBeforeMinor: 1400, BalanceAfterMinor: 1600},
		}

		got := CheckContinuity(rows)
		require.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].RowID)
		assert.Contains(t, got[0].Reason, "previous closing balance")
		assert.Equal(t, int64(3), got[1].RowID)
		assert.Contains(t, got[1].Reason, "movement is R$ 1,00")
	})
}
