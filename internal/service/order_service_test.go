package service

import (
	"testing"

	"go-coffee-ops/internal/model"
	"go-coffee-ops/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderAppliesLedgers(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")
	latte := f.createProduct(t, f.tenantID, "Latte", 4.75, 10)

	order, err := f.orders.CreateOrder(f.tenantID, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []OrderItemRequest{{ProductID: latte.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, "cash", order.PaymentMethod)
	assert.InDelta(t, 9.50, order.Total, 1e-9)
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 4.75, order.Items[0].Price, 1e-9) // price snapshot

	assert.Equal(t, 8, f.reloadProduct(t, f.tenantID, latte.ID).Stock)

	reloaded := f.reloadCustomer(t, f.tenantID, customer.ID)
	assert.InDelta(t, 9.50, reloaded.TotalSpent, 1e-9)
	assert.Equal(t, 1, reloaded.VisitCount)
	assert.Equal(t, 9, reloaded.LoyaltyPoints) // floor(9.50)
	assert.NotNil(t, reloaded.LastVisit)
}

func TestCreateOrderSnapshotsPriceAgainstLaterEdits(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.tenantID, "Keziah", "keziah@email.com")
	espresso := f.createProduct(t, f.tenantID, "Espresso", 3.50, 20)

	order := f.createOrder(t, f.tenantID, customer.ID, espresso.ID, 1)

	_, err := f.products.UpdateProduct(f.tenantID, &UpdateProductRequest{
		ID:       espresso.ID,
		Name:     "Espresso",
		Category: "Coffee",
		Price:    5.00,
		Cost:     1.00,
		Stock:    19,
	})
	require.NoError(t, err)

	reloaded, err := f.orders.GetOrderByID(f.tenantID, order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.50, reloaded.Total, 1e-9)
	assert.InDelta(t, 3.50, reloaded.Items[0].Price, 1e-9)
}

func TestCreateOrderInsufficientStockRejectsWholeOrder(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")
	scarce := f.createProduct(t, f.tenantID, "Cold Brew", 5.00, 1)
	plenty := f.createProduct(t, f.tenantID, "Cappuccino", 4.50, 5)

	_, err := f.orders.CreateOrder(f.tenantID, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemRequest{
			{ProductID: scarce.ID, Quantity: 1},
			{ProductID: plenty.ID, Quantity: 999},
		},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Cappuccino")

	// Nothing was decremented and nothing was persisted
	assert.Equal(t, 1, f.reloadProduct(t, f.tenantID, scarce.ID).Stock)
	assert.Equal(t, 5, f.reloadProduct(t, f.tenantID, plenty.ID).Stock)

	orders, err := f.orders.GetAllOrders(f.tenantID, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)

	reloaded := f.reloadCustomer(t, f.tenantID, customer.ID)
	assert.Zero(t, reloaded.VisitCount)
	assert.Zero(t, reloaded.TotalSpent)
}

func TestCreateOrderRepeatedProductLinesConserveStock(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")
	latte := f.createProduct(t, f.tenantID, "Latte", 4.00, 10)

	order, err := f.orders.CreateOrder(f.tenantID, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemRequest{
			{ProductID: latte.ID, Quantity: 3},
			{ProductID: latte.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)

	// Both lines billed and both decremented
	assert.InDelta(t, 28.00, order.Total, 1e-9)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 3, f.reloadProduct(t, f.tenantID, latte.ID).Stock)

	// Deleting restores exactly what creation consumed
	require.NoError(t, f.orders.DeleteOrder(f.tenantID, order.ID))
	assert.Equal(t, 10, f.reloadProduct(t, f.tenantID, latte.ID).Stock)
}

func TestCreateOrderRepeatedProductLinesCheckCombinedQuantity(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")
	coldBrew := f.createProduct(t, f.tenantID, "Cold Brew", 5.00, 5)

	// Each line fits the stock on its own; together they do not
	_, err := f.orders.CreateOrder(f.tenantID, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemRequest{
			{ProductID: coldBrew.ID, Quantity: 3},
			{ProductID: coldBrew.ID, Quantity: 4},
		},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Cold Brew")

	assert.Equal(t, 5, f.reloadProduct(t, f.tenantID, coldBrew.ID).Stock)

	orders, err := f.orders.GetAllOrders(f.tenantID, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	f := newFixture(t)
	latte := f.createProduct(t, f.tenantID, "Latte", 4.75, 10)

	_, err := f.orders.CreateOrder(f.tenantID, &CreateOrderRequest{
		CustomerID: uuid.New(),
		Items:      []OrderItemRequest{{ProductID: latte.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCreateOrderForeignTenantReferencesAreNotFound(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")
	foreignProduct := f.createProduct(t, f.otherTenantID, "Latte", 4.75, 10)
	foreignCustomer := f.createCustomer(t, f.otherTenantID, "Mallory", "mallory@email.com")

	// Product owned by another tenant
	_, err := f.orders.CreateOrder(f.tenantID, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []OrderItemRequest{{ProductID: foreignProduct.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	// Customer owned by another tenant
	ownProduct := f.createProduct(t, f.tenantID, "Espresso", 3.50, 10)
	_, err = f.orders.CreateOrder(f.tenantID, &CreateOrderRequest{
		CustomerID: foreignCustomer.ID,
		Items:      []OrderItemRequest{{ProductID: ownProduct.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestDeleteOrderRestoresStockAndAggregates(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")
	latte := f.createProduct(t, f.tenantID, "Latte", 4.75, 10)

	order := f.createOrder(t, f.tenantID, customer.ID, latte.ID, 3)
	require.Equal(t, 7, f.reloadProduct(t, f.tenantID, latte.ID).Stock)

	require.NoError(t, f.orders.DeleteOrder(f.tenantID, order.ID))

	// Stock conservation: back to the pre-order value
	assert.Equal(t, 10, f.reloadProduct(t, f.tenantID, latte.ID).Stock)

	reloaded := f.reloadCustomer(t, f.tenantID, customer.ID)
	assert.Zero(t, reloaded.TotalSpent)
	assert.Zero(t, reloaded.VisitCount)
	assert.Zero(t, reloaded.LoyaltyPoints)
	// last_visit is not rolled back; the ledger keeps no history for it
	assert.NotNil(t, reloaded.LastVisit)

	_, err := f.orders.GetOrderByID(f.tenantID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeleteOrderAggregateConsistency(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.tenantID, "Keziah", "keziah@email.com")

	p1 := f.createProduct(t, f.tenantID, "Espresso", 3.50, 100)
	p2 := f.createProduct(t, f.tenantID, "Cappuccino", 4.99, 100)
	p3 := f.createProduct(t, f.tenantID, "Latte", 4.75, 100)

	f.createOrder(t, f.tenantID, customer.ID, p1.ID, 1)                // 3.50
	middle := f.createOrder(t, f.tenantID, customer.ID, p2.ID, 1)      // 4.99
	f.createOrder(t, f.tenantID, customer.ID, p3.ID, 2)                // 9.50
	require.NoError(t, f.orders.DeleteOrder(f.tenantID, middle.ID))

	reloaded := f.reloadCustomer(t, f.tenantID, customer.ID)
	assert.InDelta(t, 13.00, reloaded.TotalSpent, 1e-9)
	assert.Equal(t, 2, reloaded.VisitCount)
	assert.Equal(t, 12, reloaded.LoyaltyPoints) // floor(3.50) + floor(9.50)
}

func TestLoyaltyRoundingFloors(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")
	product := f.createProduct(t, f.tenantID, "Mocha", 4.99, 10)

	f.createOrder(t, f.tenantID, customer.ID, product.ID, 1)

	reloaded := f.reloadCustomer(t, f.tenantID, customer.ID)
	assert.Equal(t, 4, reloaded.LoyaltyPoints)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")
	product := f.createProduct(t, f.tenantID, "Latte", 4.75, 10)
	order := f.createOrder(t, f.tenantID, customer.ID, product.ID, 1)

	updated, err := f.orders.UpdateOrderStatus(f.tenantID, order.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, updated.Status)

	// Status change never touches stock or aggregates
	assert.Equal(t, 9, f.reloadProduct(t, f.tenantID, product.ID).Stock)
	assert.InDelta(t, 4.75, f.reloadCustomer(t, f.tenantID, customer.ID).TotalSpent, 1e-9)

	_, err = f.orders.UpdateOrderStatus(f.tenantID, order.ID, model.OrderStatus("shipped"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrderOperationsScopedToTenant(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.otherTenantID, "Mallory", "mallory@email.com")
	product := f.createProduct(t, f.otherTenantID, "Latte", 4.75, 10)
	order := f.createOrder(t, f.otherTenantID, customer.ID, product.ID, 1)

	_, err := f.orders.GetOrderByID(f.tenantID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.orders.UpdateOrderStatus(f.tenantID, order.ID, model.StatusCancelled)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	err = f.orders.DeleteOrder(f.tenantID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// Owner still sees the order untouched
	reloaded, err := f.orders.GetOrderByID(f.otherTenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, reloaded.Status)
}

func TestUpdateOrderStatusStorageFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Exec("DROP TABLE orders").Error)

	// A broken store must not masquerade as a missing order
	_, err := f.orders.UpdateOrderStatus(f.tenantID, uuid.New(), model.StatusCompleted)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrOrderNotFound)
}

func TestGetAllOrdersFilters(t *testing.T) {
	f := newFixture(t)
	alice := f.createCustomer(t, f.tenantID, "Alice", "alice@email.com")
	bob := f.createCustomer(t, f.tenantID, "Bob", "bob@email.com")
	product := f.createProduct(t, f.tenantID, "Latte", 4.75, 100)

	f.createOrder(t, f.tenantID, alice.ID, product.ID, 1)
	second := f.createOrder(t, f.tenantID, bob.ID, product.ID, 1)
	_, err := f.orders.UpdateOrderStatus(f.tenantID, second.ID, model.StatusCompleted)
	require.NoError(t, err)

	byCustomer, err := f.orders.GetAllOrders(f.tenantID, repository.OrderFilter{CustomerID: &alice.ID})
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, alice.ID, byCustomer[0].CustomerID)
	require.NotNil(t, byCustomer[0].Customer)
	assert.Equal(t, "Alice", byCustomer[0].Customer.Name)

	byStatus, err := f.orders.GetAllOrders(f.tenantID, repository.OrderFilter{Status: model.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, second.ID, byStatus[0].ID)
}
