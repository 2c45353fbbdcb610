package service

import (
	"context"
	"strings"
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/repository"
	"github.com/fagundes/debt-ledger/pkg/apperror"
	"github.com/fagundes/debt-ledger/pkg/events"
)

// TrashService handles soft-deleted customers. Sending a customer to the
// trash goes through ActionService instead.
type TrashService struct {
	trashRepo repository.TrashRepository
	bus       *events.Bus[entity.LedgerEvent]
}

// NewTrashService creates a new trash service
func NewTrashService(trashRepo repository.TrashRepository, bus *events.Bus[entity.LedgerEvent]) *TrashService {
	return &TrashService{trashRepo: trashRepo, bus: bus}
}

// ListTrash returns trashed customers, most recently deleted first. A non
// blank search keeps names containing it, ignoring case.
func (s *TrashService) ListTrash(ctx context.Context, search string) ([]entity.TrashedCustomer, error) {
	rows, err := s.trashRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []entity.TrashedCustomer{}
	}

	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return rows, nil
	}
	filtered := make([]entity.TrashedCustomer, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), term) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Restore brings a customer back to the active list
func (s *TrashService) Restore(ctx context.Context, session *entity.Session, customerID int64) error {
	if customerID <= 0 {
		return apperror.NewFieldError("customer_id", "Cliente inválido.")
	}
	if err := s.trashRepo.Restore(ctx, customerID); err != nil {
		return err
	}
	s.notify(entity.EventCustomerRestore, session, customerID)
	return nil
}

// DeletePermanently erases a trashed customer and every movement it has.
// Only administrators may do this.
func (s *TrashService) DeletePermanently(ctx context.Context, session *entity.Session, customerID int64) error {
	if session == nil || !session.IsAdmin() {
		return apperror.ErrForbidden
	}
	if customerID <= 0 {
		return apperror.NewFieldError("customer_id", "Cliente inválido.")
	}
	if err := s.trashRepo.DeletePermanently(ctx, customerID); err != nil {
		return err
	}
	s.notify(entity.EventLedgerChanged, session, customerID)
	return nil
}

func (s *TrashService) notify(kind string, session *entity.Session, customerID int64) {
	if s.bus == nil {
		return
	}
	ev := entity.LedgerEvent{Type: kind, CustomerID: customerID, At: time.Now()}
	if session != nil {
		ev.SessionID, ev.OperatorID = session.ID.String(), session.OperatorID
	}
	s.bus.Publish(ev)
}
