package entity

import "github.com/fagundes/debt-ledger/internal/domain/enum"

// PendingAction describes one financial or destructive action awaiting
// operator confirmation.
type PendingAction struct {
	Kind        enum.ActionKind `json:"kind"`
	CustomerID  int64           `json:"customer_id"`
	Description string          `json:"description"`
	// AmountInput is the amount as typed; AmountMinor is its parsed value.
	AmountInput string `json:"amount_input,omitempty"`
	AmountMinor int64  `json:"amount_minor,omitempty"`
	// Note is the movement observation, or the trash reason for soft deletes.
	Note string `json:"note,omitempty"`
}
