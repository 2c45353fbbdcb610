package entity

import (
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/enum"
)

// Transaction is one immutable ledger movement as returned by
// get_extrato_cliente_saldos. Balances are computed by the backend.
type Transaction struct {
	ID                 int64                `gorm:"column:id" json:"id"`
	CreatedAt          time.Time            `gorm:"column:created_at" json:"created_at"`
	Kind               enum.TransactionKind `gorm:"column:type" json:"type"`
	SignedAmountMinor  int64                `gorm:"column:valor_assinado_centavos" json:"valor_assinado_centavos"`
	BalanceBeforeMinor int64                `gorm:"column:saldo_antes_centavos" json:"saldo_antes_centavos"`
	BalanceAfterMinor  int64                `gorm:"column:saldo_depois_centavos" json:"saldo_depois_centavos"`
	Note               *string              `gorm:"column:obs" json:"obs,omitempty"`
	OperatorID         *int64               `gorm:"column:operador_id" json:"operador_id,omitempty"`
	OperatorName       *string              `gorm:"column:operador_nome" json:"operador_nome,omitempty"`
	OperatorUsername   *string              `gorm:"column:operador_usuario" json:"operador_usuario,omitempty"`
	OperatorLogin      *string              `gorm:"column:operador_login" json:"operador_login,omitempty"`
}
