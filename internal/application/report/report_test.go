package report

import (
	"strings"
	"testing"
	"time"

	"github.com/fagundes/debt-ledger/internal/application/statement"
	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fixedRenderer() *Renderer {
	clock := func() time.Time { return time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC) }
	return NewRenderer("Mercearia Boa Vista", time.UTC).WithClock(clock)
}

func customer() *entity.Customer {
	balance := int64(123456)
	return &entity.Customer{
		ID:           7,
		Name:         "Maria Souza",
		Phone:        strPtr("(31) 99999-0000"),
		RG:           strPtr("MG-12.345.678"),
		BalanceMinor: &balance,
	}
}

func sampleRows() []statement.Row {
	return []statement.Row{
		{
			ID: 2, Kind: enum.TransactionKindPayment, KindLabel: "Pagamento",
			CreatedAtLabel: "02/05/2024, 10:00:00", AmountLabel: "-R$ 5,00",
			BalanceBeforeLabel: "R$ 10,00", BalanceAfterLabel: "R$ 5,00",
			BalanceBeforeMinor: 1000, BalanceAfterMinor: 500,
			NoteLabel: "-", OperatorLabel: "ana",
		},
		{
			ID: 1, Kind: enum.TransactionKindSale, KindLabel: "Venda",
			CreatedAtLabel: "01/05/2024, 09:00:00", AmountLabel: "R$ 10,00",
			BalanceBeforeLabel: "R$ 0,00", BalanceAfterLabel: "R$ 10,00",
			BalanceBeforeMinor: 0, BalanceAfterMinor: 1000,
			NoteLabel: "arroz", OperatorLabel: "Não informado",
		},
	}
}

func TestRenderFullReport_Header(t *testing.T) {
	html, err := fixedRenderer().RenderFullReport(customer(), sampleRows(), sampleRows(), enum.ReportScopeFullWithDebt)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, "<title>Extrato - Maria Souza</title>")
	assert.Contains(t, html, "<strong>Documento:</strong> MG-12.345.678")
	assert.Contains(t, html, "<strong>Saldo atual:</strong> R$ 1.234,56")
	assert.Contains(t, html, "<strong>Formato:</strong> Histórico completo &#43; extrato de dívida")
	assert.Contains(t, html, "<strong>Gerado em:</strong> 10/05/2024, 15:30:00")
	assert.Contains(t, html, "size: A4;")
	assert.Contains(t, html, "<td>arroz</td>")
	assert.Equal(t, 2, strings.Count(html, `class="report__table"`))
}

func TestRenderFullReport_EmptyPlaceholders(t *testing.T) {
	r := fixedRenderer()

	full, err := r.RenderFullReport(customer(), nil, nil, enum.ReportScopeFullWithDebt)
	require.NoError(t, err)
	assert.Contains(t, full, EmptyDebt)
	assert.Contains(t, full, EmptyHistory)
	assert.Equal(t, 2, strings.Count(full, `class="report__empty"`))

	debtOnly, err := r.RenderFullReport(customer(), nil, nil, enum.ReportScopeDebtOnly)
	require.NoError(t, err)
	assert.Contains(t, debtOnly, EmptyDebt)
	assert.NotContains(t, debtOnly, EmptyHistory)
	assert.NotContains(t, debtOnly, "Histórico completo")
	assert.Contains(t, debtOnly, "Somente extrato de dívida")
	assert.Equal(t, 1, strings.Count(debtOnly, `class="report__empty"`))
}

func TestRenderFullReport_NilCustomer(t *testing.T) {
	html, err := fixedRenderer().RenderFullReport(nil, nil, nil, enum.ReportScopeDebtOnly)
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Documento:</strong> -")
	assert.Contains(t, html, "<strong>Saldo atual:</strong> R$ 0,00")
}

func TestRenderers_EscapeFreeText(t *testing.T) {
	const hostile = `<script>&"'</script>`
	const escaped = `&lt;script&gt;&amp;&#34;&#39;&lt;/script&gt;`

	c := customer()
	c.Name = hostile
	rows := sampleRows()
	rows[0].NoteLabel = hostile
	rows[1].OperatorLabel = hostile

	r := fixedRenderer()
	full, err := r.RenderFullReport(c, rows, rows, enum.ReportScopeFullWithDebt)
	require.NoError(t, err)
	ticket, err := r.RenderReceiptTicket(c, rows)
	require.NoError(t, err)

	for name, doc := range map[string]string{"report": full, "ticket": ticket} {
		t.Run(name, func(t *testing.T) {
			assert.NotContains(t, doc, "<script>")
			assert.NotContains(t, doc, `"'`)
			assert.Contains(t, doc, escaped)
		})
	}
}

func TestRenderReceiptTicket(t *testing.T) {
	html, err := fixedRenderer().RenderReceiptTicket(customer(), sampleRows())
	require.NoError(t, err)

	assert.Contains(t, html, "size: 80mm auto;")
	assert.Contains(t, html, "<strong>PAGTO</strong>")
	assert.Contains(t, html, "<strong>VENDA</strong>")
	assert.Contains(t, html, "Saldo depois: R$ 5,00")
	assert.Contains(t, html, "Operador: Não informado")
	assert.Contains(t, html, "Obs: arroz")
	assert.Equal(t, 2, strings.Count(html, `class="ticket__item"`))
	assert.NotContains(t, html, EmptyTicket)
}

func TestRenderReceiptTicket_Empty(t *testing.T) {
	html, err := fixedRenderer().RenderReceiptTicket(customer(), []statement.Row{})
	require.NoError(t, err)

	assert.Contains(t, html, `<div class="ticket__empty">`+EmptyTicket+`</div>`)
}

func TestTicket(t *testing.T) {
	tk := fixedRenderer().Ticket(customer(), sampleRows())

	assert.Equal(t, "Mercearia Boa Vista", tk.Header.StoreName)
	assert.Equal(t, "R$ 1.234,56", tk.Header.Balance)
	require.Len(t, tk.Entries, 2)
	assert.Equal(t, "PAGTO", tk.Entries[0].Kind)
	assert.Equal(t, "-R$ 5,00", tk.Entries[0].Amount)
	assert.Empty(t, tk.Empty)

	empty := fixedRenderer().Ticket(customer(), nil)
	assert.Equal(t, EmptyTicket, empty.Empty)
}

func TestSuggestedFileName(t *testing.T) {
	assert.Equal(t, "extrato-Maria Souza-divida", SuggestedFileName(customer(), enum.ReportScopeDebtOnly))
	assert.Equal(t, "extrato-Maria Souza-completo-divida", SuggestedFileName(customer(), enum.ReportScopeFullWithDebt))
}

func TestSheets(t *testing.T) {
	rows := sampleRows()
	debt := statement.FilterDebtOnly(rows)

	sheets := Sheets(rows, debt, true)
	require.Len(t, sheets, 2)
	assert.Equal(t, SheetDebt, sheets[0].Name)
	assert.Equal(t, SheetHistory, sheets[1].Name)
	assert.Equal(t, []string{"02/05/2024, 10:00:00", "Pagamento", "-R$ 5,00", "R$ 10,00", "R$ 5,00", "ana", "-"}, sheets[1].Rows[0])

	assert.Len(t, Sheets(rows, debt, false), 1)
}
