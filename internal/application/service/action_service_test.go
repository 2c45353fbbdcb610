package service

import (
	"context"
	"testing"
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/pkg/apperror"
	"github.com/fagundes/debt-ledger/pkg/events"
	"github.com/fagundes/debt-ledger/pkg/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type actionFixture struct {
	customers  *fakeCustomerRepo
	statements *fakeStatementRepo
	trash      *fakeTrashRepo
	bus        *events.Bus[entity.LedgerEvent]
	svc        *ActionService
	session    *entity.Session
}

func newActionFixture() *actionFixture {
	ops := newFakeOperatorRepo()
	ops.add(2, "ana", "5678", enum.RoleOperator)
	auth := NewAuthService(ops, utils.NewJWTManager("secret", time.Hour, "test"), nil)

	f := &actionFixture{
		customers:  newFakeCustomerRepo(joao(), &entity.Customer{ID: 8, Name: "Zé", BalanceMinor: int64Ptr(0)}),
		statements: newFakeStatementRepo(),
		trash:      &fakeTrashRepo{},
		bus:        events.NewBus[entity.LedgerEvent](32),
		session:    &entity.Session{ID: uuid.New(), OperatorID: 2, Username: "ana", Role: enum.RoleOperator},
	}
	f.svc = NewActionService(f.customers, f.statements, f.trash, auth, f.bus, time.Second, zerolog.Nop())
	return f
}

func drain(ch <-chan entity.LedgerEvent) []string {
	var types []string
	for {
		select {
		case ev := <-ch:
			types = append(types, ev.Type)
		default:
			return types
		}
	}
}

func TestActionService_SaleCompletes(t *testing.T) {
	f := newActionFixture()
	ch, unsub := f.bus.Subscribe()
	defer unsub()
	ctx := context.Background()

	view, err := f.svc.Open(ctx, f.session, &OpenActionInput{Kind: enum.ActionPostSale, CustomerID: 7, Amount: "8,00", Note: " pão "})
	require.NoError(t, err)
	assert.Equal(t, "pending", view.State)
	assert.Equal(t, "Lançar venda para João Silva", view.Action.Description)

	view, err = f.svc.Confirm(ctx, f.session, "")
	require.NoError(t, err)
	assert.Equal(t, "idle", view.State)

	require.Len(t, f.statements.sales, 1)
	assert.Equal(t, posting{CustomerID: 7, AmountMinor: 800, Note: "pão", OperatorID: 2}, f.statements.sales[0])

	assert.Equal(t, []string{
		entity.EventActionOpened,
		entity.EventActionConfirm,
		entity.EventActionCompleted,
		entity.EventLedgerChanged,
	}, drain(ch))
}

func TestActionService_OpenRules(t *testing.T) {
	f := newActionFixture()
	ctx := context.Background()

	_, err := f.svc.Open(ctx, f.session, &OpenActionInput{Kind: enum.ActionPostPayment, CustomerID: 7})
	require.NoError(t, err)

	_, err = f.svc.Open(ctx, f.session, &OpenActionInput{Kind: enum.ActionPostSale, CustomerID: 7})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.Equal(t, enum.ActionPostPayment, f.svc.Slot(f.session).Action.Kind, "slot content unchanged")

	_, err = f.svc.Open(ctx, f.session, &OpenActionInput{Kind: "REFUND", CustomerID: 7})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.svc.Open(ctx, f.session, &OpenActionInput{Kind: enum.ActionPostSale, CustomerID: 404})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = f.svc.Open(ctx, nil, &OpenActionInput{Kind: enum.ActionPostSale, CustomerID: 7})
	assert.ErrorIs(t, err, apperror.ErrSessionExpired)
}

func TestActionService_SlotsArePerSession(t *testing.T) {
	f := newActionFixture()
	ctx := context.Background()
	other := &entity.Session{ID: uuid.New(), OperatorID: 2, Username: "ana", Role: enum.RoleOperator}

	_, err := f.svc.Open(ctx, f.session, &OpenActionInput{Kind: enum.ActionPostSale, CustomerID: 7})
	require.NoError(t, err)
	_, err = f.svc.Open(ctx, other, &OpenActionInput{Kind: enum.ActionPostSale, CustomerID: 7})
	require.NoError(t, err)
	assert.Equal(t, 2, f.svc.Sessions())

	f.svc.Drop(other.ID)
	assert.Equal(t, 1, f.svc.Sessions())
	assert.Equal(t, "idle", f.svc.Slot(other).State)
}

func TestActionService_ExpiredSessionSlotsArePruned(t *testing.T) {
	f := newActionFixture()
	ctx := context.Background()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	stale := &entity.Session{ID: uuid.New(), OperatorID: 2, Username: "ana", Role: enum.RoleOperator, ExpiresAt: now.Add(time.Minute)}
	live := &entity.Session{ID: uuid.New(), OperatorID: 2, Username: "ana", Role: enum.RoleOperator, ExpiresAt: now.Add(time.Hour)}

	_, err := f.svc.Open(ctx, stale, &OpenActionInput{Kind: enum.ActionPostSale, CustomerID: 7, Amount: "5"})
	require.NoError(t, err)
	_, err = f.svc.Open(ctx, live, &OpenActionInput{Kind: enum.ActionPostSale, CustomerID: 7, Amount: "5"})
	require.NoError(t, err)
	assert.Equal(t, 2, f.svc.Sessions())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, f.svc.Sessions())
	assert.Equal(t, "idle", f.svc.Slot(stale).State)
	assert.Equal(t, "pending", f.svc.Slot(live).State)
}

func TestActionService_SettleInFull(t *testing.T) {
	f := newActionFixture()
	ctx := context.Background()

	_, err := f.svc.Open(ctx, f.session, &OpenActionInput{Kind: enum.ActionSettleInFull, CustomerID: 8})
	require.Error(t, err)
	assert.Equal(t, MsgNoDebt, err.Error())

	view, err := f.svc.Open(ctx, f.session, &OpenActionInput{Kind: enum.ActionSettleInFull, CustomerID: 7, Amount: "999"})
	require.NoError(t, err)
	assert.Equal(t, "Quitação total de João Silva no valor de R$ 5,00", view.Action.Description)
	assert.Equal(t, int64(500), view.Action.AmountMinor)

	// Amount and note of a settlement cannot be revised.
	amount := "1,00"
	_, err = f.svc.Revise(f.session, &ReviseActionInput{Amount: &amount})
	require.NoError(t, err)

	view, err = f.svc.Confirm(ctx, f.session, "")
	require.Error(t, err)
	assert.Equal(t, "pending", view.State)
	assert.Equal(t, "credential", view.Focus)

	view, err = f.svc.Confirm(ctx, f.session, "0000")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindRejected))
	assert.Equal(t, "pending", view.State)
	assert.False(t, view.HasCredential)
	assert.Empty(t, f.statements.payments)

	view, err = f.svc.Confirm(ctx, f.session, "5678")
	require.NoError(t, err)
	assert.Equal(t, "idle", view.State)
	require.Len(t, f.statements.payments, 1)
	assert.Equal(t, posting{CustomerID: 7, AmountMinor: 500, Note: SettleNote, OperatorID: 2}, f.statements.payments[0])
}

func TestActionService_SoftDelete(t *testing.T) {
	f := newActionFixture()
	ch, unsub := f.bus.Subscribe()
	defer unsub()
	ctx := context.Background()

	view, err := f.svc.Open(ctx, f.session, &OpenActionInput{Kind: enum.ActionSoftDelete, CustomerID: 7, Note: "   "})
	require.NoError(t, err)
	assert.Equal(t, "Enviar o cliente \"João Silva\" para a lixeira.", view.Action.Description)

	_, err = f.svc.Confirm(ctx, f.session, "5678")
	require.NoError(t, err)

	require.Len(t, f.trash.softDeleted, 1)
	assert.Nil(t, f.trash.softDeleted[0].Reason)
	assert.Equal(t, int64(2), f.trash.softDeleted[0].OperatorID)
	assert.Contains(t, drain(ch), entity.EventCustomerTrashed)
}

func TestActionService_MutationFailureKeepsInput(t *testing.T) {
	f := newActionFixture()
	ctx := context.Background()
	f.statements.postErr = errBackend

	_, err := f.svc.Open(ctx, f.session, &OpenActionInput{Kind: enum.ActionPostPayment, CustomerID: 7, Amount: "3,50", Note: "pix"})
	require.NoError(t, err)

	view, err := f.svc.Confirm(ctx, f.session, "")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindTransient))
	assert.Equal(t, "pending", view.State)
	assert.Equal(t, "3,50", view.Action.AmountInput)
	assert.Equal(t, "pix", view.Action.Note)

	f.statements.postErr = nil
	view, err = f.svc.Confirm(ctx, f.session, "")
	require.NoError(t, err)
	assert.Equal(t, "idle", view.State)
	require.Len(t, f.statements.payments, 1)
	assert.Equal(t, int64(350), f.statements.payments[0].AmountMinor)
}

func TestActionService_ReviseAndCancel(t *testing.T) {
	f := newActionFixture()
	ctx := context.Background()

	_, err := f.svc.Cancel(f.session)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	_, err = f.svc.Open(ctx, f.session, &OpenActionInput{Kind: enum.ActionPostSale, CustomerID: 7, Amount: "abc"})
	require.NoError(t, err)

	view, err := f.svc.Confirm(ctx, f.session, "")
	require.Error(t, err)
	assert.Equal(t, "amount", view.Focus)

	amount, note := "12,00", "feira"
	view, err = f.svc.Revise(f.session, &ReviseActionInput{Amount: &amount, Note: &note})
	require.NoError(t, err)
	assert.Nil(t, view.Error)
	assert.Equal(t, "12,00", view.Action.AmountInput)
	assert.Equal(t, "feira", view.Action.Note)

	view, err = f.svc.Cancel(f.session)
	require.NoError(t, err)
	assert.Equal(t, "idle", view.State)
	assert.Empty(t, f.statements.sales)

	_, err = f.svc.Confirm(ctx, f.session, "")
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}
