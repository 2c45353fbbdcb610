package report

import (
	"github.com/fagundes/debt-ledger/internal/application/statement"
	"github.com/fagundes/debt-ledger/pkg/export"
)

// Sheet names of the statement workbook.
const (
	SheetDebt    = "Dívida"
	SheetHistory = "Histórico"
)

var sheetHeaders = []string{"Data", "Tipo", "Movimento", "Saldo antes", "Saldo depois", "Operador", "Obs"}

// Sheets lays out the same columns as the report tables. The history sheet
// is only included when includeHistory is set.
func Sheets(rows, debtRows []statement.Row, includeHistory bool) []export.Sheet {
	sheets := []export.Sheet{sheet(SheetDebt, debtRows, EmptyDebt)}
	if includeHistory {
		sheets = append(sheets, sheet(SheetHistory, rows, EmptyHistory))
	}
	return sheets
}

func sheet(name string, rows []statement.Row, empty string) export.Sheet {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.CreatedAtLabel,
			r.KindLabel,
			r.AmountLabel,
			r.BalanceBeforeLabel,
			r.BalanceAfterLabel,
			r.OperatorLabel,
			r.NoteLabel,
		})
	}
	return export.Sheet{
		Name:    name,
		Headers: sheetHeaders,
		Rows:    cells,
		Empty:   empty,
	}
}
