package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go-coffee-ops/internal/model"
	"go-coffee-ops/internal/repository"

	"github.com/google/uuid"
)

// ImportService is the bulk ingestion path. Rows are applied one at a
// time with the same creation logic as the interactive endpoints, and a
// failed row never aborts the batch: the outcome is counted per row.
type ImportService interface {
	ImportCustomers(tenantID uuid.UUID, rows []CustomerImportRow) *ImportResult
	ImportProducts(tenantID uuid.UUID, rows []ProductImportRow) *ImportResult
	ImportOrders(tenantID uuid.UUID, rows []OrderImportRow) *ImportResult
}

type CustomerImportRow struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Address       string   `json:"address"`
	TotalSpent    *float64 `json:"total_spent"`
	VisitCount    *int     `json:"visit_count"`
	LoyaltyPoints *int     `json:"loyalty_points"`
	LastVisit     string   `json:"last_visit"`
}

type ProductImportRow struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Stock       int     `json:"stock"`
}

type OrderImportRow struct {
	CustomerEmail string            `json:"customer_email"`
	ProductName   string            `json:"product_name"`
	Quantity      int               `json:"quantity"`
	OrderDate     string            `json:"order_date"`
	PaymentMethod string            `json:"payment_method"`
	Status        model.OrderStatus `json:"status"`
}

type ImportResult struct {
	Message      string   `json:"message"`
	SuccessCount int      `json:"successCount"`
	FailureCount int      `json:"failureCount"`
	Errors       []string `json:"errors"`
}

func (r *ImportResult) ok() {
	r.SuccessCount++
}

func (r *ImportResult) fail(key, msg string) {
	r.FailureCount++
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %s", key, msg))
}

func (r *ImportResult) summarize(noun string) *ImportResult {
	r.Message = fmt.Sprintf("Imported %d %s. %d failed.", r.SuccessCount, noun, r.FailureCount)
	if r.Errors == nil {
		r.Errors = []string{}
	}
	return r
}

type importService struct {
	customerRepo   repository.CustomerRepository
	productRepo    repository.ProductRepository
	productService ProductService
	orderService   OrderService
}

func NewImportService(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	productService ProductService,
	orderService OrderService,
) ImportService {
	return &importService{
		customerRepo:   customerRepo,
		productRepo:    productRepo,
		productService: productService,
		orderService:   orderService,
	}
}

// ImportCustomers creates customers with optional historical aggregates
// carried over from a previous system. Missing loyalty points default to
// floor(total spent), the same accrual rate live orders earn at.
func (s *importService) ImportCustomers(tenantID uuid.UUID, rows []CustomerImportRow) *ImportResult {
	result := &ImportResult{}

	for _, row := range rows {
		key := row.Email
		if key == "" {
			key = row.Name
		}

		if row.Name == "" || row.Email == "" {
			result.fail(key, "Name and email are required")
			continue
		}

		existing, _ := s.customerRepo.FindByEmail(tenantID, row.Email)
		if existing != nil {
			result.fail(row.Email, "Email already exists")
			continue
		}

		totalSpent := 0.0
		if row.TotalSpent != nil {
			totalSpent = *row.TotalSpent
		}
		loyaltyPoints := int(math.Floor(totalSpent))
		if row.LoyaltyPoints != nil {
			loyaltyPoints = *row.LoyaltyPoints
		}
		visitCount := 0
		if row.VisitCount != nil {
			visitCount = *row.VisitCount
		}

		var lastVisit *time.Time
		if row.LastVisit != "" && !strings.EqualFold(row.LastVisit, "never") {
			parsed, err := parseImportTime(row.LastVisit)
			if err != nil {
				result.fail(row.Email, "Invalid last visit date")
				continue
			}
			lastVisit = &parsed
		}

		customer := &model.Customer{
			TenantID:      tenantID,
			Name:          row.Name,
			Email:         row.Email,
			Phone:         row.Phone,
			Address:       row.Address,
			TotalSpent:    totalSpent,
			VisitCount:    visitCount,
			LoyaltyPoints: loyaltyPoints,
			LastVisit:     lastVisit,
		}

		if err := s.customerRepo.Create(customer); err != nil {
			result.fail(row.Email, err.Error())
			continue
		}

		result.ok()
	}

	return result.summarize("customers")
}

func (s *importService) ImportProducts(tenantID uuid.UUID, rows []ProductImportRow) *ImportResult {
	result := &ImportResult{}

	for _, row := range rows {
		key := row.Name
		if key == "" {
			key = "(unnamed product)"
		}

		_, err := s.productService.CreateProduct(tenantID, &CreateProductRequest{
			Name:        row.Name,
			Description: row.Description,
			Category:    row.Category,
			Price:       row.Price,
			Cost:        row.Cost,
			Stock:       row.Stock,
		})
		if err != nil {
			result.fail(key, err.Error())
			continue
		}

		result.ok()
	}

	return result.summarize("products")
}

// ImportOrders resolves each row's customer by email and product by name
// within the tenant, then runs the exact transactional creation the
// interactive endpoint uses. Each row commits or rolls back on its own.
func (s *importService) ImportOrders(tenantID uuid.UUID, rows []OrderImportRow) *ImportResult {
	result := &ImportResult{}

	for _, row := range rows {
		customer, err := s.customerRepo.FindByEmail(tenantID, row.CustomerEmail)
		if err != nil {
			result.fail(row.CustomerEmail, "Customer not found")
			continue
		}

		product, err := s.productRepo.FindByName(tenantID, row.ProductName)
		if err != nil {
			result.fail(row.ProductName, "Product not found")
			continue
		}

		if row.Quantity < 1 {
			result.fail(row.ProductName, "Quantity must be at least 1")
			continue
		}

		var orderDate *time.Time
		if row.OrderDate != "" {
			parsed, err := parseImportTime(row.OrderDate)
			if err != nil {
				result.fail(row.CustomerEmail, "Invalid order date")
				continue
			}
			orderDate = &parsed
		}

		status := row.Status
		if status == "" {
			status = model.StatusCompleted // historical rows default to completed
		}

		_, err = s.orderService.CreateOrder(tenantID, &CreateOrderRequest{
			CustomerID:    customer.ID,
			Items:         []OrderItemRequest{{ProductID: product.ID, Quantity: row.Quantity}},
			PaymentMethod: row.PaymentMethod,
			Status:        status,
			OrderDate:     orderDate,
		})
		if err != nil {
			result.fail(row.CustomerEmail, err.Error())
			continue
		}

		result.ok()
	}

	return result.summarize("orders")
}

func parseImportTime(value string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
