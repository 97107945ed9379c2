package repository

import (
	"go-coffee-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(tenantID uuid.UUID) ([]model.Product, error)
	FindByID(tenantID, id uuid.UUID) (*model.Product, error)
	FindByName(tenantID uuid.UUID, name string) (*model.Product, error)
	FindByIDForUpdate(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	Delete(tenantID, id uuid.UUID) error
	AdjustStock(tx *gorm.DB, id uuid.UUID, delta int) error
	CountOrderItems(tenantID, id uuid.UUID) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(tenantID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Scopes(TenantScope(tenantID)).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(tenantID, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Scopes(TenantScope(tenantID)).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByName(tenantID uuid.UUID, name string) (*model.Product, error) {
	var product model.Product
	err := r.db.Scopes(TenantScope(tenantID)).First(&product, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDForUpdate reads the product inside tx holding a row lock, so
// concurrent order creations against the same product serialize their
// stock check.
func (r *productRepo) FindByIDForUpdate(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := lockForUpdate(tx).Scopes(TenantScope(tenantID)).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(tenantID, id uuid.UUID) error {
	return r.db.Scopes(TenantScope(tenantID)).Delete(&model.Product{}, "id = ?", id).Error
}

// AdjustStock applies a relative stock change inside the caller's
// transaction, so it commits or rolls back together with the order rows
// and repeated adjustments accumulate instead of overwriting.
func (r *productRepo) AdjustStock(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *productRepo) CountOrderItems(tenantID, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.deleted_at IS NULL").
		Where("order_items.product_id = ? AND orders.tenant_id = ?", id, tenantID).
		Count(&count).Error
	return count, err
}
