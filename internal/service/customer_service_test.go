package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerStartsAtZeroAggregates(t *testing.T) {
	f := newFixture(t)

	customer := f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")

	assert.Zero(t, customer.TotalSpent)
	assert.Zero(t, customer.VisitCount)
	assert.Zero(t, customer.LoyaltyPoints)
	assert.Nil(t, customer.LastVisit)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")

	_, err := f.customers.CreateCustomer(f.tenantID, &CreateCustomerRequest{
		Name:  "Someone Else",
		Email: "rheynel@email.com",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestEmailUniquenessIsPerTenant(t *testing.T) {
	f := newFixture(t)
	f.createCustomer(t, f.tenantID, "Rheynel", "a@b.com")

	// Same email under another tenant does not collide
	customer, err := f.customers.CreateCustomer(f.otherTenantID, &CreateCustomerRequest{
		Name:  "Other Rheynel",
		Email: "a@b.com",
	})
	require.NoError(t, err)
	assert.Equal(t, f.otherTenantID, customer.TenantID)
}

func TestUpdateCustomerIdentityOnly(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")
	product := f.createProduct(t, f.tenantID, "Latte", 4.75, 10)
	f.createOrder(t, f.tenantID, customer.ID, product.ID, 1)

	updated, err := f.customers.UpdateCustomer(f.tenantID, &UpdateCustomerRequest{
		ID:    customer.ID,
		Name:  "Rheynel R.",
		Email: "rheynel@newmail.com",
		Phone: "+1-555-0101",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rheynel R.", updated.Name)
	assert.Equal(t, "rheynel@newmail.com", updated.Email)

	// Aggregates were not touched by the identity edit
	assert.InDelta(t, 4.75, updated.TotalSpent, 1e-9)
	assert.Equal(t, 1, updated.VisitCount)
}

func TestUpdateCustomerDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")
	keziah := f.createCustomer(t, f.tenantID, "Keziah", "keziah@email.com")

	_, err := f.customers.UpdateCustomer(f.tenantID, &UpdateCustomerRequest{
		ID:    keziah.ID,
		Name:  "Keziah",
		Email: "rheynel@email.com",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestDeleteCustomerGuardedByOrderHistory(t *testing.T) {
	f := newFixture(t)
	withOrders := f.createCustomer(t, f.tenantID, "Rheynel", "rheynel@email.com")
	fresh := f.createCustomer(t, f.tenantID, "Keziah", "keziah@email.com")
	product := f.createProduct(t, f.tenantID, "Latte", 4.75, 10)
	f.createOrder(t, f.tenantID, withOrders.ID, product.ID, 1)

	err := f.customers.DeleteCustomer(f.tenantID, withOrders.ID)
	assert.ErrorIs(t, err, ErrCustomerHasOrders)

	require.NoError(t, f.customers.DeleteCustomer(f.tenantID, fresh.ID))
	_, err = f.customers.GetCustomerByID(f.tenantID, fresh.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerLookupsScopedToTenant(t *testing.T) {
	f := newFixture(t)
	foreign := f.createCustomer(t, f.otherTenantID, "Mallory", "mallory@email.com")

	_, err := f.customers.GetCustomerByID(f.tenantID, foreign.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	err = f.customers.DeleteCustomer(f.tenantID, foreign.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestUpdateCustomerStorageFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Exec("DROP TABLE customers").Error)

	// A broken store must not masquerade as a missing customer
	_, err := f.customers.UpdateCustomer(f.tenantID, &UpdateCustomerRequest{
		ID:    uuid.New(),
		Name:  "Rheynel",
		Email: "rheynel@email.com",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCustomerNotFound)
}

func TestGetAllCustomersIncludesOrderCountAndSort(t *testing.T) {
	f := newFixture(t)
	alice := f.createCustomer(t, f.tenantID, "Alice", "alice@email.com")
	f.createCustomer(t, f.tenantID, "Bob", "bob@email.com")
	product := f.createProduct(t, f.tenantID, "Latte", 4.75, 100)
	f.createOrder(t, f.tenantID, alice.ID, product.ID, 2)

	byName, err := f.customers.GetAllCustomers(f.tenantID, "name")
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, "Alice", byName[0].Name)
	assert.Equal(t, int64(1), byName[0].OrderCount)
	assert.Equal(t, int64(0), byName[1].OrderCount)

	bySpend, err := f.customers.GetAllCustomers(f.tenantID, "totalSpent")
	require.NoError(t, err)
	require.Len(t, bySpend, 2)
	assert.Equal(t, "Alice", bySpend[0].Name) // highest spender first
}

func TestClearCustomersScopedToTenant(t *testing.T) {
	f := newFixture(t)
	mine := f.createCustomer(t, f.tenantID, "Alice", "alice@email.com")
	product := f.createProduct(t, f.tenantID, "Latte", 4.75, 100)
	f.createOrder(t, f.tenantID, mine.ID, product.ID, 1)
	f.createCustomer(t, f.otherTenantID, "Mallory", "mallory@email.com")

	count, err := f.customers.ClearCustomers(f.tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Other tenant's data is untouched
	others, err := f.customers.GetAllCustomers(f.otherTenantID, "name")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
