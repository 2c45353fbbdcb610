// Package report renders statement rows into self-contained documents: the
// A4 statement report, the 80mm receipt ticket, the ESC/POS ticket model and
// the spreadsheet sheets.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/fagundes/debt-ledger/internal/application/statement"
	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/pkg/money"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("documents").
		Funcs(template.FuncMap{"table": newTable}).
		ParseFS(templateFS, "templates/*.html"),
)

// Empty-state placeholders.
const (
	EmptyDebt    = "Sem movimentações com saldo devedor."
	EmptyHistory = "Sem movimentações no histórico."
	EmptyTicket  = "Sem movimentações no extrato."
)

type table struct {
	Rows  []statement.Row
	Empty string
}

func newTable(rows []statement.Row, empty string) table {
	return table{Rows: rows, Empty: empty}
}

// customerHeader holds the already formatted customer identity fields.
type customerHeader struct {
	Name     string
	Document string
	Phone    string
	Balance  string
}

type reportData struct {
	StoreName      string
	Customer       customerHeader
	ScopeLabel     string
	GeneratedAt    string
	Summary        statement.Summary
	DebtRows       []statement.Row
	HistoryRows    []statement.Row
	IncludeHistory bool
	EmptyDebt      string
	EmptyHistory   string
}

type ticketData struct {
	StoreName   string
	Customer    customerHeader
	GeneratedAt string
	Rows        []statement.Row
	Empty       string
}

// Renderer produces documents. It performs no I/O; the only ambient input is
// the clock used for the generation timestamp.
type Renderer struct {
	storeName string
	loc       *time.Location
	now       func() time.Time
}

// NewRenderer creates a renderer printing dates in loc (UTC when nil).
func NewRenderer(storeName string, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{
		storeName: storeName,
		loc:       loc,
		now:       time.Now,
	}
}

// WithClock replaces the clock, for deterministic output.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	cp := *r
	cp.now = now
	return &cp
}

// RenderFullReport renders the A4 report. The debt section is always
// present; the full history section only for ReportScopeFullWithDebt.
func (r *Renderer) RenderFullReport(c *entity.Customer, rows, debtRows []statement.Row, scope enum.ReportScope) (string, error) {
	data := reportData{
		StoreName:      r.storeName,
		Customer:       header(c),
		ScopeLabel:     scope.Label(),
		GeneratedAt:    r.generatedAt(),
		Summary:        statement.Summarize(rows),
		DebtRows:       debtRows,
		HistoryRows:    rows,
		IncludeHistory: scope.IncludesHistory(),
		EmptyDebt:      EmptyDebt,
		EmptyHistory:   EmptyHistory,
	}
	return execute("report", data)
}

// RenderReceiptTicket renders the narrow receipt-printer document listing
// every row as a stanza.
func (r *Renderer) RenderReceiptTicket(c *entity.Customer, rows []statement.Row) (string, error) {
	data := ticketData{
		StoreName:   r.storeName,
		Customer:    header(c),
		GeneratedAt: r.generatedAt(),
		Rows:        rows,
		Empty:       EmptyTicket,
	}
	return execute("ticket", data)
}

// Ticket builds the printer-neutral ticket model used for ESC/POS output.
func (r *Renderer) Ticket(c *entity.Customer, rows []statement.Row) entity.Ticket {
	h := header(c)
	t := entity.Ticket{
		Header: entity.TicketHeader{
			StoreName:   r.storeName,
			Customer:    h.Name,
			Document:    h.Document,
			Phone:       h.Phone,
			Balance:     h.Balance,
			GeneratedAt: r.generatedAt(),
		},
		Entries: make([]entity.TicketEntry, 0, len(rows)),
	}
	for _, row := range rows {
		t.Entries = append(t.Entries, entity.TicketEntry{
			Kind:         row.Kind.TicketLabel(),
			Amount:       row.AmountLabel,
			Date:         row.CreatedAtLabel,
			BalanceAfter: row.BalanceAfterLabel,
			Operator:     row.OperatorLabel,
			Note:         row.NoteLabel,
		})
	}
	if len(rows) == 0 {
		t.Empty = EmptyTicket
	}
	return t
}

// SuggestedFileName is the export base name for a customer report, before
// sanitizing.
func SuggestedFileName(c *entity.Customer, scope enum.ReportScope) string {
	name := ""
	if c != nil {
		name = c.Name
	}
	return fmt.Sprintf("extrato-%s-%s", name, scope.FileSuffix())
}

func (r *Renderer) generatedAt() string {
	return r.now().In(r.loc).Format(statement.TimestampLayout)
}

func header(c *entity.Customer) customerHeader {
	if c == nil {
		c = &entity.Customer{}
	}
	return customerHeader{
		Name:     c.Name,
		Document: c.DocumentLabel(),
		Phone:    c.PhoneLabel(),
		Balance:  money.Format(c.Balance()),
	}
}

func execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("report: failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
