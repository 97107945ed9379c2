package handler

import (
	"go-coffee-ops/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	customerService service.CustomerService
	importService   service.ImportService
}

func NewCustomerHandler(customerService service.CustomerService, importService service.ImportService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		importService:   importService,
	}
}

// GetCustomers lists the tenant's customers with their order counts
// GET /api/v1/customers?sort=name|totalSpent
func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	customers, err := h.customerService.GetAllCustomers(getTenantID(c), c.Query("sort", "name"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(customers)
}

// CreateCustomer creates a customer with zero aggregates
// POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req service.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	customer, err := h.customerService.CreateCustomer(getTenantID(c), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(customer)
}

// UpdateCustomer updates identity fields only
// PUT /api/v1/customers
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	var req service.UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	customer, err := h.customerService.UpdateCustomer(getTenantID(c), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(customer)
}

// DeleteCustomer removes a customer with no order history
// DELETE /api/v1/customers?id=
func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Customer ID is required"})
	}

	customerID, err := parseUUID(id)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	if err := h.customerService.DeleteCustomer(getTenantID(c), customerID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ImportCustomers bulk-creates customers, continuing past failed rows
// POST /api/v1/customers/import
func (h *CustomerHandler) ImportCustomers(c *fiber.Ctx) error {
	var req struct {
		Customers []service.CustomerImportRow `json:"customers"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req.Customers) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No customer data provided"})
	}

	return c.JSON(h.importService.ImportCustomers(getTenantID(c), req.Customers))
}

// ClearCustomers wipes the tenant's customers and their orders
// DELETE /api/v1/customers/clear
func (h *CustomerHandler) ClearCustomers(c *fiber.Ctx) error {
	count, err := h.customerService.ClearCustomers(getTenantID(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "count": count})
}
