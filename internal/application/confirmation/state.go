// Package confirmation gates financial and destructive actions behind an
// explicit confirm step, optionally re-checking the operator's password.
package confirmation

import (
	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/pkg/apperror"
)

// Field names an input the caller should focus after a failed confirm.
type Field string

const (
	FieldNone       Field = ""
	FieldAmount     Field = "amount"
	FieldCredential Field = "credential"
)

// State is one of Idle, Pending or Confirming.
type State interface {
	Name() string
	isState()
}

// Idle means the slot is empty.
type Idle struct{}

// Pending holds an action waiting for the operator to confirm or cancel.
type Pending struct {
	Action entity.PendingAction
	// Err is the outcome of the last failed confirm, if any.
	Err *apperror.AppError
	// Focus is the input that needs attention after Err.
	Focus Field
	// credential is kept after transient failures so a retry needs no retyping.
	credential string
}

// HasCredential reports whether a previously entered credential is retained.
func (p Pending) HasCredential() bool {
	return p.credential != ""
}

// Confirming means a confirm call is in flight for Action.
type Confirming struct {
	Action entity.PendingAction
}

func (Idle) Name() string       { return "idle" }
func (Pending) Name() string    { return "pending" }
func (Confirming) Name() string { return "confirming" }

func (Idle) isState()       {}
func (Pending) isState()    {}
func (Confirming) isState() {}

// Outcome classifies what a Confirm call did.
type Outcome int

const (
	// OutcomeIgnored: nothing was pending, or a confirm was already in flight.
	OutcomeIgnored Outcome = iota
	// OutcomeInvalid: input failed validation before any remote call.
	OutcomeInvalid
	// OutcomeRejected: the operator credential was explicitly refused.
	OutcomeRejected
	// OutcomeFailed: the verification or mutation failed and may be retried.
	OutcomeFailed
	// OutcomeCompleted: the mutation succeeded and the slot is empty again.
	OutcomeCompleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	case OutcomeCompleted:
		return "completed"
	default:
		return "ignored"
	}
}

// Result reports a Confirm call back to the caller.
type Result struct {
	Outcome Outcome
	Action  entity.PendingAction
	Err     *apperror.AppError
	Focus   Field
}
