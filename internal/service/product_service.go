package service

import (
	"errors"
	"fmt"

	"go-coffee-ops/internal/model"
	"go-coffee-ops/internal/repository"
	"go-coffee-ops/internal/ws"
	"go-coffee-ops/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(tenantID uuid.UUID, req *CreateProductRequest) (*model.Product, error)
	UpdateProduct(tenantID uuid.UUID, req *UpdateProductRequest) (*model.Product, error)
	DeleteProduct(tenantID, productID uuid.UUID) error
	GetAllProducts(tenantID uuid.UUID) ([]model.Product, error)
	GetProductByID(tenantID, productID uuid.UUID) (*model.Product, error)
	ClearProducts(tenantID uuid.UUID) (int64, error)
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Cost        float64 `json:"cost" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	ID          uuid.UUID `json:"id" validate:"uuid_required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category" validate:"required"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Cost        float64   `json:"cost" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	IsActive    *bool     `json:"is_active"`
}

type productService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewProductService(productRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) ProductService {
	return &productService{
		productRepo: productRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *productService) CreateProduct(tenantID uuid.UUID, req *CreateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	product := &model.Product{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		IsActive:    true,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	go s.wsHub.Publish(tenantID, map[string]interface{}{
		"type":   "catalog_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":    product.ID,
			"name":  product.Name,
			"stock": product.Stock,
			"price": product.Price,
		},
	})

	return product, nil
}

// UpdateProduct edits catalog fields. Stock edits here set the on-hand
// value directly; only the order lifecycle adjusts stock incrementally.
func (s *productService) UpdateProduct(tenantID uuid.UUID, req *UpdateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	product, err := s.productRepo.FindByID(tenantID, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	oldStock := product.Stock

	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Price = req.Price
	product.Cost = req.Cost
	product.Stock = req.Stock
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	go s.wsHub.Publish(tenantID, map[string]interface{}{
		"type":   "catalog_update",
		"action": "product_updated",
		"product": map[string]interface{}{
			"id":        product.ID,
			"name":      product.Name,
			"old_stock": oldStock,
			"new_stock": product.Stock,
			"price":     product.Price,
		},
	})

	return product, nil
}

// DeleteProduct refuses while order items still reference the product,
// matching the customer-side deletion guard.
func (s *productService) DeleteProduct(tenantID, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(tenantID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	count, err := s.productRepo.CountOrderItems(tenantID, productID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProductHasOrders
	}

	return s.productRepo.Delete(tenantID, productID)
}

func (s *productService) GetAllProducts(tenantID uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindAll(tenantID)
}

func (s *productService) GetProductByID(tenantID, productID uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(tenantID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// ClearProducts wipes this tenant's order items, orders and products in
// one transaction.
func (s *productService) ClearProducts(tenantID uuid.UUID) (int64, error) {
	var deleted int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		orderIDs := tx.Model(&model.Order{}).Select("id").Where("tenant_id = ?", tenantID)
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", tenantID).Delete(&model.Order{}).Error; err != nil {
			return err
		}

		res := tx.Where("tenant_id = ?", tenantID).Delete(&model.Product{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})

	return deleted, err
}
