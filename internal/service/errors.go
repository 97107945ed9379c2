package service

import "errors"

// Business-rule errors. Handlers map these to HTTP status codes with
// errors.Is; anything else is treated as a storage failure and hidden
// behind a generic 500.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")

	ErrDuplicateEmail    = errors.New("a customer with this email already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCustomerHasOrders = errors.New("cannot delete customer with existing orders")
	ErrProductHasOrders  = errors.New("cannot delete product referenced by existing orders")
	ErrInvalidStatus     = errors.New("invalid order status")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTenantInactive     = errors.New("tenant account is inactive")
	ErrEmailTaken         = errors.New("email already registered")
)

// IsNotFound reports whether err maps to a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}
