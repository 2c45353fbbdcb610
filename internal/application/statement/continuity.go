package statement

import (
	"fmt"

	"github.com/fagundes/debt-ledger/pkg/money"
)

// Discrepancy is a place where the backend's balance snapshots do not chain.
type Discrepancy struct {
	RowID  int64  `json:"row_id"`
	Reason string `json:"reason"`
}

// CheckContinuity reports rows whose amount does not match their balance
// change, and adjacent rows whose balances do not chain. Adjacent pairs are
// compared in id order, so both feed directions are accepted.
func CheckContinuity(rows []Row) []Discrepancy {
	var out []Discrepancy
	for i, r := range rows {
		if delta := r.BalanceAfterMinor - r.BalanceBeforeMinor; delta != r.AmountMinor {
			out = append(out, Discrepancy{
				RowID: r.ID,
				Reason: fmt.Sprintf("balance moved by %s but movement is %s",
					money.Format(delta), money.Format(r.AmountMinor)),
			})
		}
		if i == 0 {
			continue
		}

		older, newer := rows[i-1], r
		if older.ID > newer.ID {
			older, newer = newer, older
		}
		if newer.BalanceBeforeMinor != older.BalanceAfterMinor {
			out = append(out, Discrepancy{
				RowID: newer.ID,
				Reason: fmt.Sprintf("opening balance %s does not match previous closing balance %s",
					money.Format(newer.BalanceBeforeMinor), money.Format(older.BalanceAfterMinor)),
			})
		}
	}
	return out
}
