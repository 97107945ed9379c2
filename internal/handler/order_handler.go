package handler

import (
	"go-coffee-ops/internal/model"
	"go-coffee-ops/internal/repository"
	"go-coffee-ops/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orderService  service.OrderService
	importService service.ImportService
}

func NewOrderHandler(orderService service.OrderService, importService service.ImportService) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		importService: importService,
	}
}

// GetOrders lists the tenant's orders, newest first, with nested
// customer/items/products
// GET /api/v1/orders?customerId=&status=
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	var filter repository.OrderFilter

	if customerID := c.Query("customerId"); customerID != "" {
		id, err := parseUUID(customerID)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
		}
		filter.CustomerID = &id
	}
	if status := c.Query("status"); status != "" {
		filter.Status = model.OrderStatus(status)
	}

	orders, err := h.orderService.GetAllOrders(getTenantID(c), filter)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(orders)
}

// GetOrder returns a single order
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.orderService.GetOrderByID(getTenantID(c), orderID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(order)
}

// CreateOrder runs the full order-creation transaction
// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req.Items) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Customer and items are required"})
	}

	order, err := h.orderService.CreateOrder(getTenantID(c), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(order)
}

// UpdateOrder changes an order's status and nothing else
// PUT /api/v1/orders
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	var req struct {
		ID     string            `json:"id"`
		Status model.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.ID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Order ID is required"})
	}

	orderID, err := parseUUID(req.ID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.orderService.UpdateOrderStatus(getTenantID(c), orderID, req.Status)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(order)
}

// DeleteOrder reverses an order's ledger effects and removes it
// DELETE /api/v1/orders?id=
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Order ID is required"})
	}

	orderID, err := parseUUID(id)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	if err := h.orderService.DeleteOrder(getTenantID(c), orderID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ImportOrders bulk-creates historical orders row by row
// POST /api/v1/orders/import
func (h *OrderHandler) ImportOrders(c *fiber.Ctx) error {
	var req struct {
		Orders []service.OrderImportRow `json:"orders"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req.Orders) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No order data provided"})
	}

	return c.JSON(h.importService.ImportOrders(getTenantID(c), req.Orders))
}
