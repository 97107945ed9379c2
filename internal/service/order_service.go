package service

import (
	"errors"
	"fmt"
	"time"

	"go-coffee-ops/internal/model"
	"go-coffee-ops/internal/repository"
	"go-coffee-ops/internal/ws"
	"go-coffee-ops/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(tenantID uuid.UUID, req *CreateOrderRequest) (*model.Order, error)
	UpdateOrderStatus(tenantID, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(tenantID, orderID uuid.UUID) error
	GetAllOrders(tenantID uuid.UUID, filter repository.OrderFilter) ([]model.Order, error)
	GetOrderByID(tenantID, orderID uuid.UUID) (*model.Order, error)
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	CustomerID    uuid.UUID          `json:"customer_id" validate:"uuid_required"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method"`
	Status        model.OrderStatus  `json:"status" validate:"order_status"`
	OrderDate     *time.Time         `json:"order_date"`
}

type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	db *gorm.DB,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		db:           db,
		wsHub:        hub,
	}
}

// CreateOrder persists the order with its items, decrements stock and
// applies the customer aggregates as one transaction. Every item's stock
// is checked under a row lock before any stock is mutated, so a late
// failure can never leave a partial decrement behind.
func (s *orderService) CreateOrder(tenantID uuid.UUID, req *CreateOrderRequest) (*model.Order, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	status := req.Status
	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	if _, err := s.customerRepo.FindByID(tenantID, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	// Quantities are summed per product so an order listing the same
	// product on several lines is checked, and later decremented,
	// against the combined demand.
	demand := make(map[uuid.UUID]int, len(req.Items))
	productIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		if _, seen := demand[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		demand[item.ProductID] += item.Quantity
	}

	var order *model.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Phase 1: lock and check every product before touching anything
		products := make(map[uuid.UUID]*model.Product, len(productIDs))
		total := 0.0
		for _, productID := range productIDs {
			product, err := s.productRepo.FindByIDForUpdate(tx, tenantID, productID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, productID)
				}
				return err
			}
			if product.Stock < demand[productID] {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
			}
			products[productID] = product
			total += product.Price * float64(demand[productID])
		}

		// Phase 2: persist order and items with the price snapshot
		items := make([]model.OrderItem, len(req.Items))
		for i, item := range req.Items {
			items[i] = model.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     products[item.ProductID].Price,
			}
		}
		order = &model.Order{
			TenantID:      tenantID,
			CustomerID:    req.CustomerID,
			Status:        status,
			PaymentMethod: paymentMethod,
			OrderDate:     orderDate,
			Total:         total,
			Items:         items,
		}
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}

		// Phase 3: decrement stock once per product
		for _, productID := range productIDs {
			if err := s.productRepo.AdjustStock(tx, productID, -demand[productID]); err != nil {
				return err
			}
		}

		// Phase 4: customer lifetime aggregates
		return s.customerRepo.ApplyOrderCreated(tx, req.CustomerID, total, orderDate)
	})

	if err != nil {
		return nil, err
	}

	go s.wsHub.Publish(tenantID, map[string]interface{}{
		"type":   "order_update",
		"action": "order_created",
		"order": map[string]interface{}{
			"id":          order.ID,
			"customer_id": order.CustomerID,
			"total":       order.Total,
			"status":      order.Status,
		},
	})

	return s.orderRepo.FindByID(tenantID, order.ID)
}

// UpdateOrderStatus mutates status only. Totals, stock and customer
// aggregates are frozen at creation and untouched here. The status set is
// closed; transitions between its members are unrestricted.
func (s *orderService) UpdateOrderStatus(tenantID, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	if _, err := s.orderRepo.FindByID(tenantID, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(tenantID, orderID, status); err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(tenantID, orderID)
}

// DeleteOrder is the inverse of CreateOrder under one transaction: stock
// is restored per item and the customer aggregates reversed with the
// order's frozen total. last_visit stays where it is.
func (s *orderService) DeleteOrder(tenantID, orderID uuid.UUID) error {
	var customerID uuid.UUID
	var total float64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDWithItems(tx, tenantID, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		customerID = order.CustomerID
		total = order.Total

		for _, item := range order.Items {
			// A product removed from the catalog since has nothing to
			// restore onto; the update then matches no rows.
			if err := s.productRepo.AdjustStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.customerRepo.ApplyOrderDeleted(tx, order.CustomerID, order.Total); err != nil {
			return err
		}

		return s.orderRepo.Delete(tx, order)
	})

	if err != nil {
		return err
	}

	go s.wsHub.Publish(tenantID, map[string]interface{}{
		"type":   "order_update",
		"action": "order_deleted",
		"order": map[string]interface{}{
			"id":          orderID,
			"customer_id": customerID,
			"total":       total,
		},
	})

	return nil
}

func (s *orderService) GetAllOrders(tenantID uuid.UUID, filter repository.OrderFilter) ([]model.Order, error) {
	return s.orderRepo.FindAll(tenantID, filter)
}

func (s *orderService) GetOrderByID(tenantID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(tenantID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}
