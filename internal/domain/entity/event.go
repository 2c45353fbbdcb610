package entity

import "time"

// Ledger event types published on the in-process bus.
const (
	EventActionOpened    = "action.opened"
	EventActionRevised   = "action.revised"
	EventActionConfirm   = "action.confirming"
	EventActionCanceled  = "action.canceled"
	EventActionFailed    = "action.failed"
	EventActionCompleted = "action.completed"
	EventLedgerChanged   = "ledger.changed"
	EventCustomerTrashed = "customer.trashed"
	EventCustomerRestore = "customer.restored"
)

// LedgerEvent notifies listeners that an action slot or a customer changed.
type LedgerEvent struct {
	Type       string    `json:"type"`
	SessionID  string    `json:"session_id,omitempty"`
	OperatorID int64     `json:"operator_id,omitempty"`
	CustomerID int64     `json:"customer_id,omitempty"`
	State      string    `json:"state,omitempty"`
	Message    string    `json:"message,omitempty"`
	At         time.Time `json:"at"`
}
