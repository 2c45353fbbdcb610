package repository

import (
	"context"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	domainRepo "github.com/fagundes/debt-ledger/internal/domain/repository"
	"gorm.io/gorm"
)

type trashRepository struct {
	db *gorm.DB
}

// NewTrashRepository creates a new trash repository
func NewTrashRepository(db *gorm.DB) domainRepo.TrashRepository {
	return &trashRepository{db: db}
}

func (r *trashRepository) List(ctx context.Context) ([]entity.TrashedCustomer, error) {
	var customers []entity.TrashedCustomer
	err := r.db.WithContext(ctx).
		Select("id, nome, telefone, saldo_centavos, deleted_at, deleted_reason").
		Order("deleted_at DESC").
		Find(&customers).Error
	return customers, err
}

func (r *trashRepository) SoftDelete(ctx context.Context, customerID, operatorID int64, reason *string) error {
	return r.db.WithContext(ctx).
		Exec("SELECT mandar_para_lixeira(p_cliente_id => ?, p_operador_id => ?, p_motivo => ?)",
			customerID, operatorID, reason).
		Error
}

func (r *trashRepository) Restore(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Exec("SELECT restaurar_cliente(p_cliente_id => ?)", customerID).
		Error
}

func (r *trashRepository) DeletePermanently(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Exec("SELECT excluir_cliente_permanente(p_cliente_id => ?)", customerID).
		Error
}
