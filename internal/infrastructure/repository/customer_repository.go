package repository

import (
	"context"
	"errors"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	domainRepo "github.com/fagundes/debt-ledger/internal/domain/repository"
	"github.com/fagundes/debt-ledger/internal/logger"
	"github.com/fagundes/debt-ledger/pkg/pagination"
	"gorm.io/gorm"
)

const (
	customerWideColumns   = "id, nome, telefone, endereco, cpf, rg, saldo_centavos"
	customerNarrowColumns = "id, nome, telefone, saldo_centavos"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var total int64

	base := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Scopes(SearchScope(search, "nome", "telefone"))

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	customers, err := r.list(base, customerWideColumns, params)
	if err != nil {
		// Older deployments expose the view without address/document columns.
		l := logger.FromContext(ctx)
		l.Warn().Err(err).Msg("wide customer listing failed, retrying with narrow columns")
		customers, err = r.list(base, customerNarrowColumns, params)
	}
	return customers, total, err
}

func (r *customerRepository) list(base *gorm.DB, columns string, params *pagination.PaginationParams) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := base.Session(&gorm.Session{}).
		Select(columns).
		Scopes(Paginate(params)).
		Order("nome ASC").
		Find(&customers).Error
	return customers, err
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, in *entity.CustomerInput) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).
		Raw("SELECT cadastrar_cliente(p_nome => ?, p_telefone => ?, p_endereco => ?, p_cpf => ?, p_rg => ?)",
			in.Name, in.Phone, in.Address, in.CPF, in.RG).
		Scan(&id).Error
	return id, err
}

func (r *customerRepository) Update(ctx context.Context, id int64, in *entity.CustomerInput) error {
	return r.db.WithContext(ctx).
		Exec("SELECT atualizar_cliente(p_id => ?, p_nome => ?, p_telefone => ?, p_endereco => ?, p_cpf => ?, p_rg => ?)",
			id, in.Name, in.Phone, in.Address, in.CPF, in.RG).
		Error
}

func (r *customerRepository) Summary(ctx context.Context) (*entity.DashboardSummary, error) {
	var summary entity.DashboardSummary
	err := r.db.WithContext(ctx).
		Select("total_a_receber_centavos, qtd_devedores").
		Take(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.DashboardSummary{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
