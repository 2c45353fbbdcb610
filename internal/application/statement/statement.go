// Package statement turns raw ledger movements into display rows and the
// derived views used by screens, reports and tickets.
package statement

import (
	"sort"
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/pkg/money"
)

// UnknownOperator is the label used when no operator attribution resolves.
const UnknownOperator = "Não informado"

// TimestampLayout is the day-first date and time used on every document.
const TimestampLayout = "02/01/2006, 15:04:05"

// Row is the formatted projection of one Transaction.
type Row struct {
	ID                 int64                `json:"id"`
	Kind               enum.TransactionKind `json:"type"`
	KindLabel          string               `json:"type_label"`
	CreatedAt          time.Time            `json:"created_at"`
	CreatedAtLabel     string               `json:"created_at_label"`
	AmountMinor        int64                `json:"amount_minor"`
	AmountLabel        string               `json:"amount_label"`
	BalanceBeforeMinor int64                `json:"balance_before_minor"`
	BalanceBeforeLabel string               `json:"balance_before_label"`
	BalanceAfterMinor  int64                `json:"balance_after_minor"`
	BalanceAfterLabel  string               `json:"balance_after_label"`
	NoteLabel          string               `json:"note_label"`
	OperatorLabel      string               `json:"operator_label"`
}

// Summary counts rows by kind.
type Summary struct {
	SaleCount    int `json:"sale_count"`
	PaymentCount int `json:"payment_count"`
}

// Statement is everything derived from one full fetch of a customer ledger.
type Statement struct {
	Customer      *entity.Customer `json:"customer"`
	Rows          []Row            `json:"rows"`
	DebtRows      []Row            `json:"debt_rows"`
	Summary       Summary          `json:"summary"`
	Discrepancies []Discrepancy    `json:"discrepancies,omitempty"`
	LoadedAt      time.Time        `json:"loaded_at"`
}

// Builder maps transactions to rows, printing timestamps in a fixed zone.
type Builder struct {
	loc *time.Location
}

// NewBuilder creates a builder. A nil location means UTC.
func NewBuilder(loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{loc: loc}
}

// Location returns the zone used for timestamps.
func (b *Builder) Location() *time.Location {
	return b.loc
}

// BuildRows maps every transaction to a Row, preserving input order.
func (b *Builder) BuildRows(txs []entity.Transaction, operatorNames map[int64]string) []Row {
	rows := make([]Row, 0, len(txs))
	for i := range txs {
		rows = append(rows, b.buildRow(&txs[i], operatorNames))
	}
	return rows
}

func (b *Builder) buildRow(tx *entity.Transaction, operatorNames map[int64]string) Row {
	note := "-"
	if tx.Note != nil {
		note = *tx.Note
	}
	return Row{
		ID:                 tx.ID,
		Kind:               tx.Kind,
		KindLabel:          tx.Kind.Label(),
		CreatedAt:          tx.CreatedAt,
		CreatedAtLabel:     b.FormatTimestamp(tx.CreatedAt),
		AmountMinor:        tx.SignedAmountMinor,
		AmountLabel:        money.Format(tx.SignedAmountMinor),
		BalanceBeforeMinor: tx.BalanceBeforeMinor,
		BalanceBeforeLabel: money.Format(tx.BalanceBeforeMinor),
		BalanceAfterMinor:  tx.BalanceAfterMinor,
		BalanceAfterLabel:  money.Format(tx.BalanceAfterMinor),
		NoteLabel:          note,
		OperatorLabel:      ResolveOperatorLabel(tx, operatorNames),
	}
}

// FormatTimestamp prints t in the builder's zone.
func (b *Builder) FormatTimestamp(t time.Time) string {
	return t.In(b.loc).Format(TimestampLayout)
}

// ResolveOperatorLabel picks the first present of: explicit name, username,
// login, the lookup entry for the operator id, then UnknownOperator.
func ResolveOperatorLabel(tx *entity.Transaction, operatorNames map[int64]string) string {
	switch {
	case tx.OperatorName != nil:
		return *tx.OperatorName
	case tx.OperatorUsername != nil:
		return *tx.OperatorUsername
	case tx.OperatorLogin != nil:
		return *tx.OperatorLogin
	}
	if tx.OperatorID != nil && *tx.OperatorID != 0 {
		if name, ok := operatorNames[*tx.OperatorID]; ok {
			return name
		}
	}
	return UnknownOperator
}

// OperatorIDs returns the distinct operator ids referenced by txs, in first
// seen order.
func OperatorIDs(txs []entity.Transaction) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, tx := range txs {
		if tx.OperatorID == nil {
			continue
		}
		if _, ok := seen[*tx.OperatorID]; ok {
			continue
		}
		seen[*tx.OperatorID] = struct{}{}
		ids = append(ids, *tx.OperatorID)
	}
	return ids
}

// FilterDebtOnly keeps rows where money was owed before or after the movement.
func FilterDebtOnly(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.BalanceBeforeMinor > 0 || r.BalanceAfterMinor > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Summarize counts sales and payments.
func Summarize(rows []Row) Summary {
	var s Summary
	for _, r := range rows {
		switch r.Kind {
		case enum.TransactionKindSale:
			s.SaleCount++
		case enum.TransactionKindPayment:
			s.PaymentCount++
		}
	}
	return s
}

// SortBy returns a stably sorted copy of rows. Rows are otherwise kept in
// the order the backend returned them.
func SortBy(rows []Row, less func(a, b Row) bool) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// NewestFirst orders rows by creation time, latest first, breaking ties by id.
func NewestFirst(a, b Row) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// OldestFirst orders rows by creation time, earliest first, breaking ties by id.
func OldestFirst(a, b Row) bool {
	return NewestFirst(b, a)
}
