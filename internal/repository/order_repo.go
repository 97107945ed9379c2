package repository

import (
	"go-coffee-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderFilter struct {
	CustomerID *uuid.UUID
	Status     model.OrderStatus
}

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindAll(tenantID uuid.UUID, filter OrderFilter) ([]model.Order, error)
	FindByID(tenantID, id uuid.UUID) (*model.Order, error)
	FindByIDWithItems(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Order, error)
	UpdateStatus(tenantID, id uuid.UUID, status model.OrderStatus) error
	Delete(tx *gorm.DB, order *model.Order) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

// Create persists the order together with its items (gorm saves the
// association in the same statement batch) inside the caller's tx.
func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindAll(tenantID uuid.UUID, filter OrderFilter) ([]model.Order, error) {
	q := r.db.Scopes(TenantScope(tenantID)).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Order("order_date DESC")

	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var orders []model.Order
	err := q.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(tenantID, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Scopes(TenantScope(tenantID)).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByIDWithItems(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := tx.Scopes(TenantScope(tenantID)).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) UpdateStatus(tenantID, id uuid.UUID, status model.OrderStatus) error {
	return r.db.Model(&model.Order{}).
		Scopes(TenantScope(tenantID)).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete removes the order and its items inside the caller's tx. Items go
// first; cascade constraints do not fire on soft deletes.
func (r *orderRepo) Delete(tx *gorm.DB, order *model.Order) error {
	if err := tx.Where("order_id = ?", order.ID).Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(order).Error
}
