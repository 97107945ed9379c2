package service

import (
	"fmt"
	"strings"
	"testing"

	"go-coffee-ops/internal/model"
	"go-coffee-ops/internal/repository"
	"go-coffee-ops/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixture wires the full service stack onto an in-memory SQLite database.
// Two tenant ids are pre-generated for isolation tests.
type fixture struct {
	db *gorm.DB

	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository

	customers CustomerService
	products  ProductService
	orders    OrderService
	imports   ImportService

	tenantID      uuid.UUID
	otherTenantID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	// A named shared-cache DB keeps the schema visible across pooled
	// connections while staying private to this test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Tenant{}, &model.Customer{}, &model.Product{}, &model.Order{}, &model.OrderItem{},
	))

	hub := ws.NewHub()
	go hub.Run()

	customerRepo := repository.NewCustomerRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	customers := NewCustomerService(customerRepo, db)
	products := NewProductService(productRepo, db, hub)
	orders := NewOrderService(orderRepo, productRepo, customerRepo, db, hub)
	imports := NewImportService(customerRepo, productRepo, products, orders)

	return &fixture{
		db:            db,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		customers:     customers,
		products:      products,
		orders:        orders,
		imports:       imports,
		tenantID:      uuid.New(),
		otherTenantID: uuid.New(),
	}
}

func (f *fixture) createCustomer(t *testing.T, tenantID uuid.UUID, name, email string) *model.Customer {
	t.Helper()
	customer, err := f.customers.CreateCustomer(tenantID, &CreateCustomerRequest{
		Name:  name,
		Email: email,
	})
	require.NoError(t, err)
	return customer
}

func (f *fixture) createProduct(t *testing.T, tenantID uuid.UUID, name string, price float64, stock int) *model.Product {
	t.Helper()
	product, err := f.products.CreateProduct(tenantID, &CreateProductRequest{
		Name:     name,
		Category: "Coffee",
		Price:    price,
		Cost:     price / 4,
		Stock:    stock,
	})
	require.NoError(t, err)
	return product
}

func (f *fixture) createOrder(t *testing.T, tenantID, customerID, productID uuid.UUID, quantity int) *model.Order {
	t.Helper()
	order, err := f.orders.CreateOrder(tenantID, &CreateOrderRequest{
		CustomerID: customerID,
		Items:      []OrderItemRequest{{ProductID: productID, Quantity: quantity}},
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) reloadCustomer(t *testing.T, tenantID, id uuid.UUID) *model.Customer {
	t.Helper()
	customer, err := f.customerRepo.FindByID(tenantID, id)
	require.NoError(t, err)
	return customer
}

func (f *fixture) reloadProduct(t *testing.T, tenantID, id uuid.UUID) *model.Product {
	t.Helper()
	product, err := f.productRepo.FindByID(tenantID, id)
	require.NoError(t, err)
	return product
}
