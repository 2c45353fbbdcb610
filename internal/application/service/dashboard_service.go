package service

import (
	"context"
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/repository"
	"github.com/fagundes/debt-ledger/pkg/money"
)

// DashboardService provides the store-wide receivable overview
type DashboardService struct {
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(customerRepo repository.CustomerRepository) *DashboardService {
	return &DashboardService{customerRepo: customerRepo, now: time.Now}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalReceivableMinor int64     `json:"total_a_receber_centavos"`
	TotalReceivableLabel string    `json:"total_a_receber"`
	DebtorCount          int64     `json:"qtd_devedores"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// GetStats returns the receivable total and the number of debtors
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	summary, err := s.customerRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{UpdatedAt: s.now()}
	if summary != nil {
		stats.TotalReceivableMinor = summary.TotalReceivableMinor
		stats.DebtorCount = summary.DebtorCount
	}
	stats.TotalReceivableLabel = money.Format(stats.TotalReceivableMinor)
	return stats, nil
}
