package repository

import (
	"context"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/pkg/pagination"
)

// CustomerRepository defines the interface for active customer data operations.
// Balances are always read from the backend views, never computed here.
type CustomerRepository interface {
	// List returns active customers ordered by name.
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	// GetByID returns nil, nil when the customer does not exist or is trashed.
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	Create(ctx context.Context, in *entity.CustomerInput) (int64, error)
	Update(ctx context.Context, id int64, in *entity.CustomerInput) error
	Summary(ctx context.Context) (*entity.DashboardSummary, error)
}

// StatementRepository reads a customer's movements and posts new ones.
type StatementRepository interface {
	// GetStatement returns the movements in the backend's display order.
	GetStatement(ctx context.Context, customerID int64) ([]entity.Transaction, error)
	PostSale(ctx context.Context, customerID, amountMinor int64, note string, operatorID int64) error
	PostPayment(ctx context.Context, customerID, amountMinor int64, note string, operatorID int64) error
}

// TrashRepository manages soft-deleted customers.
type TrashRepository interface {
	List(ctx context.Context) ([]entity.TrashedCustomer, error)
	SoftDelete(ctx context.Context, customerID, operatorID int64, reason *string) error
	Restore(ctx context.Context, customerID int64) error
	DeletePermanently(ctx context.Context, customerID int64) error
}

// OperatorRepository defines the interface for operator data operations
type OperatorRepository interface {
	// Authenticate checks a username/password pair remotely. It returns
	// nil, nil when the backend rejects the credentials.
	Authenticate(ctx context.Context, username, password string) (*entity.Operator, error)
	// NamesByIDs maps operator ids to their usernames.
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
	List(ctx context.Context) ([]entity.Operator, error)
	GetByID(ctx context.Context, id int64) (*entity.Operator, error)
	Create(ctx context.Context, username, password string, role enum.Role) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetRole(ctx context.Context, id int64, role enum.Role) error
	SetPassword(ctx context.Context, id int64, password string) error
	Count(ctx context.Context) (int64, error)
}
