package entity

import (
	"strings"
	"time"
)

// Customer is an active customer with the balance computed by the backend.
// Balance is nil when the backend did not report one.
type Customer struct {
	ID           int64   `gorm:"column:id;primaryKey" json:"id"`
	Name         string  `gorm:"column:nome" json:"nome"`
	Phone        *string `gorm:"column:telefone" json:"telefone,omitempty"`
	Address      *string `gorm:"column:endereco" json:"endereco,omitempty"`
	CPF          *string `gorm:"column:cpf" json:"cpf,omitempty"`
	RG           *string `gorm:"column:rg" json:"rg,omitempty"`
	BalanceMinor *int64  `gorm:"column:saldo_centavos" json:"saldo_centavos"`
}

// TableName returns the view the Customer model is read from
func (Customer) TableName() string {
	return "vw_clientes_ativos_saldo"
}

// Balance returns the known balance or zero.
func (c *Customer) Balance() int64 {
	if c.BalanceMinor == nil {
		return 0
	}
	return *c.BalanceMinor
}

// HasDebt reports whether there is an outstanding balance to settle.
func (c *Customer) HasDebt() bool {
	return c.Balance() > 0
}

// DocumentLabel is the first filled identity document, or "-".
func (c *Customer) DocumentLabel() string {
	if v := nonBlank(c.CPF); v != "" {
		return v
	}
	if v := nonBlank(c.RG); v != "" {
		return v
	}
	return "-"
}

// PhoneLabel is the phone number or "-".
func (c *Customer) PhoneLabel() string {
	if c.Phone == nil {
		return "-"
	}
	return *c.Phone
}

// DisplayName falls back to a generic noun for unnamed records.
func (c *Customer) DisplayName() string {
	if strings.TrimSpace(c.Name) == "" {
		return "cliente"
	}
	return c.Name
}

// CustomerInput carries the editable fields of a customer. Blank optional
// fields are stored as NULL.
type CustomerInput struct {
	Name    string
	Phone   *string
	Address *string
	CPF     *string
	RG      *string
}

// TrashedCustomer is a soft-deleted customer awaiting restore or purge.
type TrashedCustomer struct {
	ID            int64      `gorm:"column:id" json:"id"`
	Name          string     `gorm:"column:nome" json:"nome"`
	Phone         *string    `gorm:"column:telefone" json:"telefone,omitempty"`
	BalanceMinor  int64      `gorm:"column:saldo_centavos" json:"saldo_centavos"`
	DeletedAt     *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	DeletedReason *string    `gorm:"column:deleted_reason" json:"deleted_reason,omitempty"`
}

// TableName returns the view trashed customers are read from
func (TrashedCustomer) TableName() string {
	return "vw_clientes_lixeira_saldo"
}

// DashboardSummary is the store-wide receivable overview.
type DashboardSummary struct {
	TotalReceivableMinor int64 `gorm:"column:total_a_receber_centavos" json:"total_a_receber_centavos"`
	DebtorCount          int64 `gorm:"column:qtd_devedores" json:"qtd_devedores"`
}

// TableName returns the view the summary is read from
func (DashboardSummary) TableName() string {
	return "vw_resumo_dashboard"
}

func nonBlank(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
