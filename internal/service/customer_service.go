package service

import (
	"errors"
	"fmt"

	"go-coffee-ops/internal/model"
	"go-coffee-ops/internal/repository"
	"go-coffee-ops/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerService interface {
	CreateCustomer(tenantID uuid.UUID, req *CreateCustomerRequest) (*model.Customer, error)
	UpdateCustomer(tenantID uuid.UUID, req *UpdateCustomerRequest) (*model.Customer, error)
	DeleteCustomer(tenantID, customerID uuid.UUID) error
	GetAllCustomers(tenantID uuid.UUID, sortBy string) ([]model.CustomerWithStats, error)
	GetCustomerByID(tenantID, customerID uuid.UUID) (*model.Customer, error)
	ClearCustomers(tenantID uuid.UUID) (int64, error)
}

type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateCustomerRequest struct {
	ID      uuid.UUID `json:"id" validate:"uuid_required"`
	Name    string    `json:"name" validate:"required"`
	Email   string    `json:"email" validate:"required,email"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`
}

type customerService struct {
	customerRepo repository.CustomerRepository
	db           *gorm.DB
}

func NewCustomerService(customerRepo repository.CustomerRepository, db *gorm.DB) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		db:           db,
	}
}

func (s *customerService) CreateCustomer(tenantID uuid.UUID, req *CreateCustomerRequest) (*model.Customer, error) {
	// 1. Validate request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Check email uniqueness within this tenant only
	existing, _ := s.customerRepo.FindByEmail(tenantID, req.Email)
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	// 3. New customers start at zero aggregates
	customer := &model.Customer{
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// UpdateCustomer touches identity fields only. The aggregates belong to
// the order lifecycle and are never written here.
func (s *customerService) UpdateCustomer(tenantID uuid.UUID, req *UpdateCustomerRequest) (*model.Customer, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	customer, err := s.customerRepo.FindByID(tenantID, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if req.Email != customer.Email {
		existing, _ := s.customerRepo.FindByEmail(tenantID, req.Email)
		if existing != nil && existing.ID != customer.ID {
			return nil, ErrDuplicateEmail
		}
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer only succeeds for customers with no historical orders,
// so the aggregate ledger never has to reconcile a deleted customer.
func (s *customerService) DeleteCustomer(tenantID, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(tenantID, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}

	count, err := s.customerRepo.CountOrders(tenantID, customerID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCustomerHasOrders
	}

	return s.customerRepo.Delete(tenantID, customerID)
}

func (s *customerService) GetAllCustomers(tenantID uuid.UUID, sortBy string) ([]model.CustomerWithStats, error) {
	return s.customerRepo.FindAll(tenantID, sortBy)
}

func (s *customerService) GetCustomerByID(tenantID, customerID uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(tenantID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// ClearCustomers wipes this tenant's order items, orders and customers in
// one transaction. Other tenants' rows are untouched.
func (s *customerService) ClearCustomers(tenantID uuid.UUID) (int64, error) {
	var deleted int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		orderIDs := tx.Model(&model.Order{}).Select("id").Where("tenant_id = ?", tenantID)
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", tenantID).Delete(&model.Order{}).Error; err != nil {
			return err
		}

		res := tx.Where("tenant_id = ?", tenantID).Delete(&model.Customer{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})

	return deleted, err
}
