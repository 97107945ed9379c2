package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.products.CreateProduct(f.tenantID, &CreateProductRequest{
		Name:     "Freebie",
		Category: "Coffee",
		Price:    0, // price must be > 0
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, err = f.products.CreateProduct(f.tenantID, &CreateProductRequest{
		Category: "Coffee",
		Price:    3.50,
	})
	require.Error(t, err) // name required
}

func TestDeleteProductGuardedByOrderItems(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")
	product := f.createProduct(t, f.tenantID, "Latte", 4.75, 10)
	order := f.createOrder(t, f.tenantID, customer.ID, product.ID, 1)

	err := f.products.DeleteProduct(f.tenantID, product.ID)
	assert.ErrorIs(t, err, ErrProductHasOrders)

	// Once the referencing order is gone the product can be removed
	require.NoError(t, f.orders.DeleteOrder(f.tenantID, order.ID))
	require.NoError(t, f.products.DeleteProduct(f.tenantID, product.ID))

	_, err = f.products.GetProductByID(f.tenantID, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductLookupsScopedToTenant(t *testing.T) {
	f := newFixture(t)
	foreign := f.createProduct(t, f.otherTenantID, "Latte", 4.75, 10)

	_, err := f.products.GetProductByID(f.tenantID, foreign.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = f.products.UpdateProduct(f.tenantID, &UpdateProductRequest{
		ID:       foreign.ID,
		Name:     "Latte",
		Category: "Coffee",
		Price:    1.00,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	err = f.products.DeleteProduct(f.tenantID, foreign.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProductStorageFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Exec("DROP TABLE products").Error)

	// A broken store must not masquerade as a missing product
	err := f.products.DeleteProduct(f.tenantID, uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateProductEditsCatalogFields(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, f.tenantID, "Latte", 4.75, 10)

	inactive := false
	updated, err := f.products.UpdateProduct(f.tenantID, &UpdateProductRequest{
		ID:       product.ID,
		Name:     "Oat Latte",
		Category: "Coffee",
		Price:    5.25,
		Cost:     1.40,
		Stock:    25,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Oat Latte", updated.Name)
	assert.InDelta(t, 5.25, updated.Price, 1e-9)
	assert.Equal(t, 25, updated.Stock)
	assert.False(t, updated.IsActive)
}

func TestClearProductsScopedToTenant(t *testing.T) {
	f := newFixture(t)
	f.createProduct(t, f.tenantID, "Latte", 4.75, 10)
	f.createProduct(t, f.tenantID, "Espresso", 3.50, 10)
	f.createProduct(t, f.otherTenantID, "Latte", 4.75, 10)

	count, err := f.products.ClearProducts(f.tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	others, err := f.products.GetAllProducts(f.otherTenantID)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
