package service

import (
	"context"
	"strings"
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/repository"
	"github.com/fagundes/debt-ledger/pkg/apperror"
	"github.com/fagundes/debt-ledger/pkg/events"
	"github.com/fagundes/debt-ledger/pkg/pagination"
)

// MsgCustomerNameRequired is shown when a customer form has no name.
const MsgCustomerNameRequired = "Informe o nome do cliente."

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	bus          *events.Bus[entity.LedgerEvent]
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, bus *events.Bus[entity.LedgerEvent]) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, bus: bus}
}

// CustomerInput represents the create/update customer input
type CustomerInput struct {
	Name    string
	Phone   string
	Address string
	CPF     string
	RG      string
}

func (in *CustomerInput) normalize() (*entity.CustomerInput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.NewFieldError("nome", MsgCustomerNameRequired)
	}
	return &entity.CustomerInput{
		Name:    name,
		Phone:   optional(in.Phone),
		Address: optional(in.Address),
		CPF:     optional(in.CPF),
		RG:      optional(in.RG),
	}, nil
}

// CreateCustomer registers a customer and returns it as the backend sees it
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	in, err := input.normalize()
	if err != nil {
		return nil, err
	}

	id, err := s.customerRepo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.notify(id)

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return &entity.Customer{ID: id, Name: in.Name, Phone: in.Phone, Address: in.Address, CPF: in.CPF, RG: in.RG}, nil
	}
	return customer, nil
}

// GetCustomer retrieves an active customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// ListCustomers lists active customers ordered by name
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customerRepo.List(ctx, params, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomer replaces a customer's editable fields
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, input *CustomerInput) (*entity.Customer, error) {
	in, err := input.normalize()
	if err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCustomerNotFound
	}

	if err := s.customerRepo.Update(ctx, id, in); err != nil {
		return nil, err
	}
	s.notify(id)

	existing.Name, existing.Phone, existing.Address, existing.CPF, existing.RG = in.Name, in.Phone, in.Address, in.CPF, in.RG
	return existing, nil
}

func (s *CustomerService) notify(id int64) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(entity.LedgerEvent{Type: entity.EventLedgerChanged, CustomerID: id, At: time.Now()})
}

// optional turns blank form fields into NULL.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
