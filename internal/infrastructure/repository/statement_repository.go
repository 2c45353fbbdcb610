package repository

import (
	"context"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	domainRepo "github.com/fagundes/debt-ledger/internal/domain/repository"
	"gorm.io/gorm"
)

type statementRepository struct {
	db *gorm.DB
}

// NewStatementRepository creates a repository backed by the ledger functions
func NewStatementRepository(db *gorm.DB) domainRepo.StatementRepository {
	return &statementRepository{db: db}
}

func (r *statementRepository) GetStatement(ctx context.Context, customerID int64) ([]entity.Transaction, error) {
	var txs []entity.Transaction
	err := r.db.WithContext(ctx).
		Raw("SELECT * FROM get_extrato_cliente_saldos(p_cliente_id => ?)", customerID).
		Scan(&txs).Error
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []entity.Transaction{}
	}
	return txs, nil
}

func (r *statementRepository) PostSale(ctx context.Context, customerID, amountMinor int64, note string, operatorID int64) error {
	return r.db.WithContext(ctx).
		Exec("SELECT lancar_venda(p_cliente_id => ?, p_valor_centavos => ?, p_obs => ?, p_operador_id => ?)",
			customerID, amountMinor, note, operatorID).
		Error
}

func (r *statementRepository) PostPayment(ctx context.Context, customerID, amountMinor int64, note string, operatorID int64) error {
	return r.db.WithContext(ctx).
		Exec("SELECT receber_pagamento(p_cliente_id => ?, p_valor_centavos => ?, p_obs => ?, p_operador_id => ?)",
			customerID, amountMinor, note, operatorID).
		Error
}
