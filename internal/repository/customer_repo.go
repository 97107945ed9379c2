package repository

import (
	"math"
	"time"

	"go-coffee-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll(tenantID uuid.UUID, sortBy string) ([]model.CustomerWithStats, error)
	FindByID(tenantID, id uuid.UUID) (*model.Customer, error)
	FindByEmail(tenantID uuid.UUID, email string) (*model.Customer, error)
	Update(customer *model.Customer) error
	Delete(tenantID, id uuid.UUID) error
	CountOrders(tenantID, id uuid.UUID) (int64, error)
	ApplyOrderCreated(tx *gorm.DB, id uuid.UUID, orderTotal float64, at time.Time) error
	ApplyOrderDeleted(tx *gorm.DB, id uuid.UUID, orderTotal float64) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindAll(tenantID uuid.UUID, sortBy string) ([]model.CustomerWithStats, error) {
	order := "name ASC"
	if sortBy == "totalSpent" {
		order = "total_spent DESC"
	}

	var customers []model.CustomerWithStats
	err := r.db.Model(&model.Customer{}).
		Scopes(TenantScope(tenantID)).
		Select("customers.*, (SELECT COUNT(*) FROM orders WHERE orders.customer_id = customers.id AND orders.deleted_at IS NULL) AS order_count").
		Order(order).
		Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(tenantID, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.Scopes(TenantScope(tenantID)).First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindByEmail(tenantID uuid.UUID, email string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.Scopes(TenantScope(tenantID)).First(&customer, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) Delete(tenantID, id uuid.UUID) error {
	return r.db.Scopes(TenantScope(tenantID)).Delete(&model.Customer{}, "id = ?", id).Error
}

func (r *customerRepo) CountOrders(tenantID, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).
		Scopes(TenantScope(tenantID)).
		Where("customer_id = ?", id).
		Count(&count).Error
	return count, err
}

// ApplyOrderCreated bumps the lifetime aggregates for one new order.
// Loyalty accrues floor(total): fractional currency never grants points.
func (r *customerRepo) ApplyOrderCreated(tx *gorm.DB, id uuid.UUID, orderTotal float64, at time.Time) error {
	return tx.Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_spent":    gorm.Expr("total_spent + ?", orderTotal),
			"visit_count":    gorm.Expr("visit_count + 1"),
			"loyalty_points": gorm.Expr("loyalty_points + ?", int(math.Floor(orderTotal))),
			"last_visit":     at,
		}).Error
}

// ApplyOrderDeleted is the inverse of ApplyOrderCreated, except last_visit
// which has no history to restore and is left as-is.
func (r *customerRepo) ApplyOrderDeleted(tx *gorm.DB, id uuid.UUID, orderTotal float64) error {
	return tx.Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_spent":    gorm.Expr("total_spent - ?", orderTotal),
			"visit_count":    gorm.Expr("visit_count - 1"),
			"loyalty_points": gorm.Expr("loyalty_points - ?", int(math.Floor(orderTotal))),
		}).Error
}
