package service

import (
	"context"
	"time"

	"github.com/fagundes/debt-ledger/internal/application/statement"
	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/repository"
	"github.com/fagundes/debt-ledger/internal/logger"
	"github.com/fagundes/debt-ledger/pkg/apperror"
	"golang.org/x/sync/errgroup"
)

// ErrCustomerNotFound is returned when a customer is missing or trashed.
var ErrCustomerNotFound = apperror.NewNotFoundError("Cliente não encontrado.")

// StatementService loads a customer ledger and derives its display views.
type StatementService struct {
	customerRepo  repository.CustomerRepository
	statementRepo repository.StatementRepository
	operatorRepo  repository.OperatorRepository
	builder       *statement.Builder
	now           func() time.Time
}

// NewStatementService creates a new statement service
func NewStatementService(
	customerRepo repository.CustomerRepository,
	statementRepo repository.StatementRepository,
	operatorRepo repository.OperatorRepository,
	builder *statement.Builder,
) *StatementService {
	return &StatementService{
		customerRepo:  customerRepo,
		statementRepo: statementRepo,
		operatorRepo:  operatorRepo,
		builder:       builder,
		now:           time.Now,
	}
}

// Builder returns the row builder, for callers that format timestamps.
func (s *StatementService) Builder() *statement.Builder {
	return s.builder
}

// Load fetches the customer and the statement in parallel and rebuilds every
// derived view. It never patches a previous load.
func (s *StatementService) Load(ctx context.Context, customerID int64) (*statement.Statement, error) {
	if customerID <= 0 {
		return nil, apperror.NewFieldError("customer_id", "Cliente inválido.")
	}

	var (
		customer *entity.Customer
		txs      []entity.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customer, err = s.customerRepo.GetByID(gctx, customerID)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.statementRepo.GetStatement(gctx, customerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	names := s.resolveNames(ctx, txs)
	rows := s.builder.BuildRows(txs, names)

	st := &statement.Statement{
		Customer:      customer,
		Rows:          rows,
		DebtRows:      statement.FilterDebtOnly(rows),
		Summary:       statement.Summarize(rows),
		Discrepancies: statement.CheckContinuity(rows),
		LoadedAt:      s.now(),
	}

	if len(st.Discrepancies) > 0 {
		log := logger.FromContext(ctx)
		for _, d := range st.Discrepancies {
			log.Warn().
				Int64("customer_id", customerID).
				Int64("transaction_id", d.RowID).
				Str("reason", d.Reason).
				Msg("statement balance chain is inconsistent")
		}
	}
	return st, nil
}

// resolveNames is best-effort: a failed lookup degrades to an empty mapping.
func (s *StatementService) resolveNames(ctx context.Context, txs []entity.Transaction) map[int64]string {
	ids := statement.OperatorIDs(txs)
	if len(ids) == 0 {
		return map[int64]string{}
	}

	names, err := s.operatorRepo.NamesByIDs(ctx, ids)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Int("operators", len(ids)).Msg("operator name lookup failed")
		return map[int64]string{}
	}
	if names == nil {
		names = map[int64]string{}
	}
	return names
}
