package entity

import (
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/enum"
)

// Operator is a store employee allowed to sign in and post movements
type Operator struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Username  string    `gorm:"column:usuario" json:"usuario"`
	Role      enum.Role `gorm:"column:role" json:"role"`
	Active    bool      `gorm:"column:active" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName returns the table name for the Operator model
func (Operator) TableName() string {
	return "operadores"
}

// IsAdmin checks if the operator can manage other operators
func (o *Operator) IsAdmin() bool {
	return o.Role == enum.RoleAdmin
}
