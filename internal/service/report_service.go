package service

import (
	"time"

	"go-coffee-ops/internal/repository"

	"github.com/google/uuid"
)

type ReportService interface {
	GetOverview(tenantID uuid.UUID) (*OverviewReport, error)
	GetSalesReport(tenantID uuid.UUID, startDate, endDate time.Time) (*SalesReport, error)
}

type OverviewReport struct {
	repository.OverviewStats
	TopProducts  []repository.TopProduct   `json:"top_products"`
	DailyRevenue []repository.DailyRevenue `json:"daily_revenue"`
}

type SalesReport struct {
	Revenue         float64                         `json:"revenue"`
	PreviousRevenue float64                         `json:"previous_revenue"`
	RevenueGrowth   float64                         `json:"revenue_growth"`
	ByPaymentMethod []repository.PaymentMethodSales `json:"by_payment_method"`
	TopProducts     []repository.TopProduct         `json:"top_products"`
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) GetOverview(tenantID uuid.UUID) (*OverviewReport, error) {
	stats, err := s.reportRepo.GetOverviewStats(tenantID)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.reportRepo.GetTopProducts(tenantID, 5)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	daily, err := s.reportRepo.GetDailyRevenue(tenantID, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}

	return &OverviewReport{
		OverviewStats: *stats,
		TopProducts:   topProducts,
		DailyRevenue:  daily,
	}, nil
}

// GetSalesReport compares the requested period with the equally long
// period immediately before it.
func (s *reportService) GetSalesReport(tenantID uuid.UUID, startDate, endDate time.Time) (*SalesReport, error) {
	revenue, err := s.reportRepo.GetRevenueBetween(tenantID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	periodLength := endDate.Sub(startDate)
	previousRevenue, err := s.reportRepo.GetRevenueBetween(tenantID, startDate.Add(-periodLength), startDate)
	if err != nil {
		return nil, err
	}

	growth := 0.0
	if previousRevenue > 0 {
		growth = (revenue - previousRevenue) / previousRevenue * 100
	}

	byMethod, err := s.reportRepo.GetSalesByPaymentMethod(tenantID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.reportRepo.GetTopProducts(tenantID, 5)
	if err != nil {
		return nil, err
	}

	return &SalesReport{
		Revenue:         revenue,
		PreviousRevenue: previousRevenue,
		RevenueGrowth:   growth,
		ByPaymentMethod: byMethod,
		TopProducts:     topProducts,
	}, nil
}
