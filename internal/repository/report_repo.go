package repository

import (
	"time"

	"go-coffee-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	GetOverviewStats(tenantID uuid.UUID) (*OverviewStats, error)
	GetDailyRevenue(tenantID uuid.UUID, startDate, endDate time.Time) ([]DailyRevenue, error)
	GetRevenueBetween(tenantID uuid.UUID, startDate, endDate time.Time) (float64, error)
	GetSalesByPaymentMethod(tenantID uuid.UUID, startDate, endDate time.Time) ([]PaymentMethodSales, error)
	GetTopProducts(tenantID uuid.UUID, limit int) ([]TopProduct, error)
}

// OverviewStats is the dashboard headline row
type OverviewStats struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalOrders    int64   `json:"total_orders"`
	TotalCustomers int64   `json:"total_customers"`
	TotalProducts  int64   `json:"total_products"`
}

// DailyRevenue for the revenue chart
type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type PaymentMethodSales struct {
	PaymentMethod string  `json:"payment_method"`
	Total         float64 `json:"total"`
	OrderCount    int64   `json:"order_count"`
}

type TopProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	TotalSold int64     `json:"total_sold"`
	Revenue   float64   `json:"revenue"`
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) GetOverviewStats(tenantID uuid.UUID) (*OverviewStats, error) {
	var stats OverviewStats

	if err := r.db.Model(&model.Order{}).
		Scopes(TenantScope(tenantID)).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Order{}).Scopes(TenantScope(tenantID)).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Customer{}).Scopes(TenantScope(tenantID)).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Scopes(TenantScope(tenantID)).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *reportRepo) GetDailyRevenue(tenantID uuid.UUID, startDate, endDate time.Time) ([]DailyRevenue, error) {
	var results []DailyRevenue

	rows, err := r.db.Model(&model.Order{}).
		Scopes(TenantScope(tenantID)).
		Select("DATE(order_date) as date, COALESCE(SUM(total), 0) as revenue").
		Where("order_date BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(order_date)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyRevenue
		if err := rows.Scan(&data.Date, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *reportRepo) GetRevenueBetween(tenantID uuid.UUID, startDate, endDate time.Time) (float64, error) {
	var revenue float64
	err := r.db.Model(&model.Order{}).
		Scopes(TenantScope(tenantID)).
		Where("order_date BETWEEN ? AND ?", startDate, endDate).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	return revenue, err
}

func (r *reportRepo) GetSalesByPaymentMethod(tenantID uuid.UUID, startDate, endDate time.Time) ([]PaymentMethodSales, error) {
	var results []PaymentMethodSales

	rows, err := r.db.Model(&model.Order{}).
		Scopes(TenantScope(tenantID)).
		Select("payment_method, COALESCE(SUM(total), 0) as total, COUNT(*) as order_count").
		Where("order_date BETWEEN ? AND ?", startDate, endDate).
		Group("payment_method").
		Order("total DESC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data PaymentMethodSales
		if err := rows.Scan(&data.PaymentMethod, &data.Total, &data.OrderCount); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *reportRepo) GetTopProducts(tenantID uuid.UUID, limit int) ([]TopProduct, error) {
	var results []TopProduct

	rows, err := r.db.Model(&model.OrderItem{}).
		Select(`
			order_items.product_id,
			products.name,
			products.category,
			COALESCE(SUM(order_items.quantity), 0) as total_sold,
			COALESCE(SUM(order_items.price * order_items.quantity), 0) as revenue
		`).
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.deleted_at IS NULL").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.tenant_id = ?", tenantID).
		Group("order_items.product_id, products.name, products.category").
		Order("total_sold DESC").
		Limit(limit).
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data TopProduct
		if err := rows.Scan(&data.ProductID, &data.Name, &data.Category, &data.TotalSold, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
