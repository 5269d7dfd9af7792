package service

import (
	"time"

	"go-resell-sync/internal/repository"
)

// DashboardStats is the admin overview block.
type DashboardStats struct {
	TotalProducts  int64 `json:"total_products"`
	LinkedProducts int64 `json:"linked_products"`
	OutOfStock     int64 `json:"out_of_stock"`
	TotalValuation int64 `json:"total_valuation"` // cents
}

type DashboardService interface {
	GetStats() (*DashboardStats, error)
	GetStockMovement(days int) ([]repository.StockMovementData, error)
}

type dashboardService struct {
	productRepo    repository.ProductRepository
	adjustmentRepo repository.AdjustmentRepository
}

func NewDashboardService(pRepo repository.ProductRepository, aRepo repository.AdjustmentRepository) DashboardService {
	return &dashboardService{productRepo: pRepo, adjustmentRepo: aRepo}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalProducts, err = s.productRepo.CountAll(); err != nil {
		return nil, err
	}
	if stats.LinkedProducts, err = s.productRepo.CountLinked(); err != nil {
		return nil, err
	}
	if stats.OutOfStock, err = s.productRepo.CountOutOfStock(); err != nil {
		return nil, err
	}
	if stats.TotalValuation, err = s.productRepo.TotalValuation(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.adjustmentRepo.GetStockMovement(startDate, endDate)
}
