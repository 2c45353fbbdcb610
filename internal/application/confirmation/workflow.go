package confirmation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/pkg/apperror"
	"github.com/fagundes/debt-ledger/pkg/money"
	"github.com/rs/zerolog"
)

// DefaultVerifyTimeout bounds the operator credential check.
const DefaultVerifyTimeout = 15 * time.Second

// User-facing messages.
const (
	MsgInvalidAmount      = "Informe um valor válido. Exemplo: 8,00"
	MsgMissingCredential  = "Digite a senha do operador."
	MsgInvalidCredential  = "Senha do operador inválida."
	MsgVerifyTimeout      = "A operação demorou para responder. Tente novamente."
	MsgVerifyFailed       = "Não foi possível validar a senha do operador. Tente novamente."
	MsgMutationFailed     = "Erro ao confirmar operação."
	MsgWrongCustomerField = "Cliente inválido."
)

// Verifier checks an operator credential against the remote system.
type Verifier interface {
	Verify(ctx context.Context, username, credential string, operatorID int64) (bool, error)
}

// Mutator performs the financial or destructive change an action describes.
type Mutator interface {
	Apply(ctx context.Context, action entity.PendingAction, operatorID int64) error
}

// Transition is emitted after every state change.
type Transition struct {
	From    string
	To      string
	Action  entity.PendingAction
	Outcome Outcome
	Err     *apperror.AppError
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithVerifyTimeout overrides DefaultVerifyTimeout.
func WithVerifyTimeout(d time.Duration) Option {
	return func(w *Workflow) {
		if d > 0 {
			w.verifyTimeout = d
		}
	}
}

// WithNotifier registers a callback run after each transition, outside the lock.
func WithNotifier(fn func(Transition)) Option {
	return func(w *Workflow) { w.notify = fn }
}

// WithLogger sets the workflow logger.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Workflow) { w.log = l }
}

// Workflow owns a single pending-action slot.
type Workflow struct {
	mu    sync.Mutex
	state State

	verifier      Verifier
	mutator       Mutator
	verifyTimeout time.Duration
	notify        func(Transition)
	log           zerolog.Logger
}

// New creates a workflow in the Idle state.
func New(verifier Verifier, mutator Mutator, opts ...Option) *Workflow {
	w := &Workflow{
		state:         Idle{},
		verifier:      verifier,
		mutator:       mutator,
		verifyTimeout: DefaultVerifyTimeout,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns a snapshot of the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Open stores action and moves to Pending. It is a no-op returning false
// when the slot is already occupied.
func (w *Workflow) Open(action entity.PendingAction) bool {
	w.mu.Lock()
	if _, idle := w.state.(Idle); !idle {
		w.mu.Unlock()
		return false
	}
	w.state = Pending{Action: action}
	w.mu.Unlock()

	w.log.Debug().Str("kind", string(action.Kind)).Int64("customer_id", action.CustomerID).Msg("action opened")
	w.emit(Transition{From: "idle", To: "pending", Action: action})
	return true
}

// Revise lets the operator edit the pending action (amount, note) before
// confirming. Any previous error is cleared. Only allowed while Pending.
func (w *Workflow) Revise(edit func(a *entity.PendingAction)) bool {
	w.mu.Lock()
	p, ok := w.state.(Pending)
	if !ok {
		w.mu.Unlock()
		return false
	}
	kind, customer := p.Action.Kind, p.Action.CustomerID
	edit(&p.Action)
	p.Action.Kind, p.Action.CustomerID = kind, customer
	p.Err, p.Focus = nil, FieldNone
	w.state = p
	w.mu.Unlock()

	w.emit(Transition{From: "pending", To: "pending", Action: p.Action})
	return true
}

// Cancel empties the slot. Only allowed while Pending.
func (w *Workflow) Cancel() bool {
	w.mu.Lock()
	p, ok := w.state.(Pending)
	if !ok {
		w.mu.Unlock()
		return false
	}
	w.state = Idle{}
	w.mu.Unlock()

	w.log.Debug().Str("kind", string(p.Action.Kind)).Msg("action canceled")
	w.emit(Transition{From: "pending", To: "idle", Action: p.Action})
	return true
}

// Confirm runs the pending action. A blank credential reuses the one
// retained from a previous transient failure. Calls made while another
// confirm is in flight, or with nothing pending, are ignored.
//
// Remote calls are detached from ctx cancellation: once started, the
// mutation is allowed to finish so the slot reflects what the backend did.
func (w *Workflow) Confirm(ctx context.Context, session *entity.Session, credential string) Result {
	w.mu.Lock()
	p, ok := w.state.(Pending)
	if !ok {
		w.mu.Unlock()
		return Result{Outcome: OutcomeIgnored}
	}

	credential = strings.TrimSpace(credential)
	if credential == "" {
		credential = p.credential
	}

	if err, focus := validate(&p.Action, session, credential); err != nil {
		p.Err, p.Focus, p.credential = err, focus, credential
		w.state = p
		w.mu.Unlock()

		w.emit(Transition{From: "pending", To: "pending", Action: p.Action, Outcome: OutcomeInvalid, Err: err})
		return Result{Outcome: OutcomeInvalid, Action: p.Action, Err: err, Focus: focus}
	}

	action := p.Action
	w.state = Confirming{Action: action}
	w.mu.Unlock()
	w.emit(Transition{From: "pending", To: "confirming", Action: action})

	ctx = context.WithoutCancel(ctx)
	log := w.log.With().
		Str("kind", string(action.Kind)).
		Int64("customer_id", action.CustomerID).
		Int64("operator_id", session.OperatorID).
		Logger()

	if action.Kind.RequiresCredential() {
		valid, err := w.verify(ctx, session, credential)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("operator credential check failed")
			return w.fail(action, credential, OutcomeFailed, err, FieldNone)
		case !valid:
			log.Info().Msg("operator credential rejected")
			rejected := apperror.NewRejectedError("credential", MsgInvalidCredential)
			return w.fail(action, "", OutcomeRejected, rejected, FieldCredential)
		}
	}

	if err := w.mutator.Apply(ctx, action, session.OperatorID); err != nil {
		log.Warn().Err(err).Msg("action mutation failed")
		return w.fail(action, credential, OutcomeFailed, asTransient(err, MsgMutationFailed), FieldNone)
	}

	w.mu.Lock()
	w.state = Idle{}
	w.mu.Unlock()

	log.Info().Int64("amount_minor", action.AmountMinor).Msg("action completed")
	w.emit(Transition{From: "confirming", To: "idle", Action: action, Outcome: OutcomeCompleted})
	return Result{Outcome: OutcomeCompleted, Action: action}
}

// verify calls the Verifier with a bounded wait. A timeout is reported as a
// distinct transient error; a verifier that ignores its context is abandoned.
func (w *Workflow) verify(ctx context.Context, session *entity.Session, credential string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, w.verifyTimeout)
	defer cancel()

	type answer struct {
		ok  bool
		err error
	}
	ch := make(chan answer, 1)
	go func() {
		ok, err := w.verifier.Verify(ctx, session.Username, credential, session.OperatorID)
		ch <- answer{ok, err}
	}()

	select {
	case a := <-ch:
		if a.err != nil {
			return false, verifyError(ctx, a.err)
		}
		return a.ok, nil
	case <-ctx.Done():
		return false, apperror.NewTimeoutError(MsgVerifyTimeout)
	}
}

// verifyError maps a verifier failure. Drivers often flatten the deadline
// into their own message, so an expired ctx counts as a timeout too.
func verifyError(ctx context.Context, err error) *apperror.AppError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperror.NewTimeoutError(MsgVerifyTimeout)
	}
	return asTransient(err, MsgVerifyFailed)
}

// fail returns the slot to Pending keeping the action, and the credential
// unless it was rejected.
func (w *Workflow) fail(action entity.PendingAction, credential string, outcome Outcome, err error, focus Field) Result {
	appErr := asTransient(err, MsgMutationFailed)

	w.mu.Lock()
	w.state = Pending{Action: action, Err: appErr, Focus: focus, credential: credential}
	w.mu.Unlock()

	w.emit(Transition{From: "confirming", To: "pending", Action: action, Outcome: outcome, Err: appErr})
	return Result{Outcome: outcome, Action: action, Err: appErr, Focus: focus}
}

func (w *Workflow) emit(t Transition) {
	if w.notify != nil {
		w.notify(t)
	}
}

// validate checks everything that can be checked locally and resolves the
// typed amount into minor units.
func validate(a *entity.PendingAction, session *entity.Session, credential string) (*apperror.AppError, Field) {
	if session == nil {
		return apperror.ErrSessionExpired, FieldNone
	}
	if a.CustomerID <= 0 {
		return apperror.NewFieldError("customer_id", MsgWrongCustomerField), FieldNone
	}

	if a.Kind.RequiresAmount() {
		if strings.TrimSpace(a.AmountInput) != "" {
			minor, err := money.ParseUserAmountStrict(a.AmountInput)
			if err != nil {
				return apperror.NewFieldError("amount", MsgInvalidAmount), FieldAmount
			}
			a.AmountMinor = minor
		}
		if a.AmountMinor <= 0 {
			return apperror.NewFieldError("amount", MsgInvalidAmount), FieldAmount
		}
	}

	if a.Kind.RequiresCredential() && credential == "" {
		return apperror.NewFieldError("credential", MsgMissingCredential), FieldCredential
	}
	return nil, FieldNone
}

// asTransient keeps AppErrors as they are and wraps anything else as a
// retryable failure carrying the backend message when there is one.
func asTransient(err error, fallback string) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	msg := fallback
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		msg = err.Error()
	}
	return apperror.NewTransientError(msg)
}
