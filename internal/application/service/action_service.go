package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fagundes/debt-ledger/internal/application/confirmation"
	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/internal/domain/repository"
	"github.com/fagundes/debt-ledger/pkg/apperror"
	"github.com/fagundes/debt-ledger/pkg/events"
	"github.com/fagundes/debt-ledger/pkg/money"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettleNote is the observation posted with a full settlement.
const SettleNote = "Quitação total"

// Action slot messages.
const (
	MsgNoDebt        = "Este cliente não possui saldo pendente."
	MsgSlotOccupied  = "Já existe uma operação aguardando confirmação."
	MsgNothingToDo   = "Nenhuma operação aguardando confirmação."
	MsgInFlight      = "A operação já está sendo confirmada."
	MsgUnknownAction = "Operação inválida."
)

// ActionService gives every signed-in session its own confirmation slot.
// Sales, payments, settlements and soft deletes are only reachable through it.
type ActionService struct {
	customerRepo repository.CustomerRepository
	verifier     confirmation.Verifier
	mutator      confirmation.Mutator
	bus          *events.Bus[entity.LedgerEvent]
	log          zerolog.Logger

	verifyTimeout time.Duration
	now           func() time.Time

	mu    sync.Mutex
	slots map[uuid.UUID]*slot
}

// slot is a session's workflow, kept until logout or until the session
// expires.
type slot struct {
	wf        *confirmation.Workflow
	expiresAt time.Time
}

// NewActionService creates a new action service
func NewActionService(
	customerRepo repository.CustomerRepository,
	statementRepo repository.StatementRepository,
	trashRepo repository.TrashRepository,
	verifier confirmation.Verifier,
	bus *events.Bus[entity.LedgerEvent],
	verifyTimeout time.Duration,
	log zerolog.Logger,
) *ActionService {
	return &ActionService{
		customerRepo:  customerRepo,
		verifier:      verifier,
		mutator:       &ledgerMutator{statementRepo: statementRepo, trashRepo: trashRepo},
		bus:           bus,
		log:           log,
		verifyTimeout: verifyTimeout,
		now:           time.Now,
		slots:         make(map[uuid.UUID]*slot),
	}
}

// SlotView is the read-only picture of a session's confirmation slot.
type SlotView struct {
	State         string                `json:"state"`
	Action        *entity.PendingAction `json:"action,omitempty"`
	Error         *apperror.AppError    `json:"error,omitempty"`
	Focus         string                `json:"focus,omitempty"`
	HasCredential bool                  `json:"has_credential"`
}

// OpenActionInput represents the intent to start an action
type OpenActionInput struct {
	Kind       enum.ActionKind
	CustomerID int64
	Amount     string
	Note       string
}

// Open fills the session's slot with a new action. Settlements take the
// current balance as their amount.
func (s *ActionService) Open(ctx context.Context, session *entity.Session, input *OpenActionInput) (*SlotView, error) {
	if session == nil {
		return nil, apperror.ErrSessionExpired
	}
	if !input.Kind.Valid() {
		return nil, apperror.NewFieldError("kind", MsgUnknownAction)
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	action, err := buildAction(customer, input)
	if err != nil {
		return nil, err
	}

	wf := s.workflow(session)
	if !wf.Open(action) {
		return nil, apperror.NewConflictError(MsgSlotOccupied)
	}
	view := viewOf(wf.State())
	return &view, nil
}

func buildAction(c *entity.Customer, input *OpenActionInput) (entity.PendingAction, error) {
	action := entity.PendingAction{
		Kind:       input.Kind,
		CustomerID: c.ID,
		Note:       strings.TrimSpace(input.Note),
	}
	switch input.Kind {
	case enum.ActionPostSale:
		action.Description = fmt.Sprintf("Lançar venda para %s", c.DisplayName())
		action.AmountInput = strings.TrimSpace(input.Amount)
	case enum.ActionPostPayment:
		action.Description = fmt.Sprintf("Lançar pagamento de %s", c.DisplayName())
		action.AmountInput = strings.TrimSpace(input.Amount)
	case enum.ActionSettleInFull:
		if !c.HasDebt() {
			return action, apperror.NewBadRequestError(MsgNoDebt)
		}
		action.Description = fmt.Sprintf("Quitação total de %s no valor de %s", c.DisplayName(), money.Format(c.Balance()))
		action.AmountMinor = c.Balance()
		action.Note = SettleNote
	case enum.ActionSoftDelete:
		action.Description = fmt.Sprintf("Enviar o cliente \"%s\" para a lixeira.", c.DisplayName())
	}
	return action, nil
}

// ReviseActionInput carries the fields the operator may still edit.
type ReviseActionInput struct {
	Amount *string
	Note   *string
}

// Revise edits the pending action. Settlement amounts and notes are fixed.
func (s *ActionService) Revise(session *entity.Session, input *ReviseActionInput) (*SlotView, error) {
	wf, ok := s.lookup(session)
	if !ok {
		return nil, apperror.NewConflictError(MsgNothingToDo)
	}

	revised := wf.Revise(func(a *entity.PendingAction) {
		if a.Kind == enum.ActionSettleInFull {
			return
		}
		if input.Amount != nil && a.Kind.RequiresAmount() {
			a.AmountInput = strings.TrimSpace(*input.Amount)
			a.AmountMinor = 0
		}
		if input.Note != nil {
			a.Note = strings.TrimSpace(*input.Note)
		}
	})
	if !revised {
		return nil, slotConflict(wf.State())
	}
	view := viewOf(wf.State())
	return &view, nil
}

// Cancel empties the session's slot. A confirm in flight cannot be canceled.
func (s *ActionService) Cancel(session *entity.Session) (*SlotView, error) {
	wf, ok := s.lookup(session)
	if !ok {
		return nil, apperror.NewConflictError(MsgNothingToDo)
	}
	if !wf.Cancel() {
		return nil, slotConflict(wf.State())
	}
	view := viewOf(wf.State())
	return &view, nil
}

// Confirm runs the pending action. On failure the returned view still holds
// the action and the error is the one the operator should see.
func (s *ActionService) Confirm(ctx context.Context, session *entity.Session, credential string) (*SlotView, error) {
	wf, ok := s.lookup(session)
	if !ok {
		return nil, apperror.NewConflictError(MsgNothingToDo)
	}

	res := wf.Confirm(ctx, session, credential)
	view := viewOf(wf.State())
	switch res.Outcome {
	case confirmation.OutcomeCompleted:
		return &view, nil
	case confirmation.OutcomeIgnored:
		return &view, slotConflict(wf.State())
	default:
		return &view, res.Err
	}
}

// Slot returns the current state of the session's slot.
func (s *ActionService) Slot(session *entity.Session) SlotView {
	wf, ok := s.lookup(session)
	if !ok {
		return SlotView{State: confirmation.Idle{}.Name()}
	}
	return viewOf(wf.State())
}

// Drop forgets a session's slot, e.g. on logout.
func (s *ActionService) Drop(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, sessionID)
}

// Sessions returns how many live sessions hold a slot.
func (s *ActionService) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	return len(s.slots)
}

func (s *ActionService) lookup(session *entity.Session) (*confirmation.Workflow, bool) {
	if session == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	sl, ok := s.slots[session.ID]
	if !ok {
		return nil, false
	}
	return sl.wf, true
}

func (s *ActionService) workflow(session *entity.Session) *confirmation.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	if sl, ok := s.slots[session.ID]; ok {
		sl.expiresAt = session.ExpiresAt
		return sl.wf
	}
	sessionID, operatorID := session.ID.String(), session.OperatorID
	wf := confirmation.New(s.verifier, s.mutator,
		confirmation.WithVerifyTimeout(s.verifyTimeout),
		confirmation.WithLogger(s.log.With().Str("session_id", sessionID).Logger()),
		confirmation.WithNotifier(func(t confirmation.Transition) {
			s.publish(sessionID, operatorID, t)
		}),
	)
	s.slots[session.ID] = &slot{wf: wf, expiresAt: session.ExpiresAt}
	return wf
}

// pruneLocked forgets slots whose session expired without a logout. A slot
// in the middle of a confirmation is kept until it settles.
func (s *ActionService) pruneLocked() {
	now := s.now()
	for id, sl := range s.slots {
		if sl.expiresAt.IsZero() || !now.After(sl.expiresAt) {
			continue
		}
		if _, busy := sl.wf.State().(confirmation.Confirming); busy {
			continue
		}
		delete(s.slots, id)
	}
}

func (s *ActionService) publish(sessionID string, operatorID int64, t confirmation.Transition) {
	if s.bus == nil {
		return
	}
	ev := entity.LedgerEvent{
		Type:       transitionEvent(t),
		SessionID:  sessionID,
		OperatorID: operatorID,
		CustomerID: t.Action.CustomerID,
		State:      t.To,
		At:         s.now(),
	}
	if t.Err != nil {
		ev.Message = t.Err.Message
	}
	s.bus.Publish(ev)

	if t.Outcome != confirmation.OutcomeCompleted {
		return
	}
	changed := ev
	changed.Type, changed.Message = entity.EventLedgerChanged, ""
	if t.Action.Kind == enum.ActionSoftDelete {
		changed.Type = entity.EventCustomerTrashed
	}
	s.bus.Publish(changed)
}

func transitionEvent(t confirmation.Transition) string {
	switch {
	case t.Outcome == confirmation.OutcomeCompleted:
		return entity.EventActionCompleted
	case t.Err != nil:
		return entity.EventActionFailed
	case t.To == "confirming":
		return entity.EventActionConfirm
	case t.To == "idle":
		return entity.EventActionCanceled
	case t.From == "pending":
		return entity.EventActionRevised
	default:
		return entity.EventActionOpened
	}
}

func slotConflict(st confirmation.State) *apperror.AppError {
	if _, ok := st.(confirmation.Confirming); ok {
		return apperror.NewConflictError(MsgInFlight)
	}
	return apperror.NewConflictError(MsgNothingToDo)
}

func viewOf(st confirmation.State) SlotView {
	view := SlotView{State: st.Name()}
	switch v := st.(type) {
	case confirmation.Pending:
		action := v.Action
		view.Action = &action
		view.Error = v.Err
		view.Focus = string(v.Focus)
		view.HasCredential = v.HasCredential()
	case confirmation.Confirming:
		action := v.Action
		view.Action = &action
	}
	return view
}

// ledgerMutator applies confirmed actions to the remote ledger.
type ledgerMutator struct {
	statementRepo repository.StatementRepository
	trashRepo     repository.TrashRepository
}

func (m *ledgerMutator) Apply(ctx context.Context, a entity.PendingAction, operatorID int64) error {
	switch a.Kind {
	case enum.ActionPostSale:
		return m.statementRepo.PostSale(ctx, a.CustomerID, a.AmountMinor, a.Note, operatorID)
	case enum.ActionPostPayment, enum.ActionSettleInFull:
		return m.statementRepo.PostPayment(ctx, a.CustomerID, a.AmountMinor, a.Note, operatorID)
	case enum.ActionSoftDelete:
		var reason *string
		if r := strings.TrimSpace(a.Note); r != "" {
			reason = &r
		}
		return m.trashRepo.SoftDelete(ctx, a.CustomerID, operatorID, reason)
	}
	return apperror.NewBadRequestError(MsgUnknownAction)
}
