package handler

import (
	"go-coffee-ops/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	productService service.ProductService
	importService  service.ImportService
}

func NewProductHandler(productService service.ProductService, importService service.ImportService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		importService:  importService,
	}
}

// GetProducts lists the tenant's catalog
// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts(getTenantID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(products)
}

// CreateProduct adds a catalog entry
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.productService.CreateProduct(getTenantID(c), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(product)
}

// UpdateProduct edits catalog fields
// PUT /api/v1/products
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.productService.UpdateProduct(getTenantID(c), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(product)
}

// DeleteProduct removes a product not referenced by any order
// DELETE /api/v1/products?id=
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Product ID is required"})
	}

	productID, err := parseUUID(id)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.productService.DeleteProduct(getTenantID(c), productID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ImportProducts bulk-creates catalog entries, continuing past failed rows
// POST /api/v1/products/import
func (h *ProductHandler) ImportProducts(c *fiber.Ctx) error {
	var req struct {
		Products []service.ProductImportRow `json:"products"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req.Products) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No product data provided"})
	}

	return c.JSON(h.importService.ImportProducts(getTenantID(c), req.Products))
}

// ClearProducts wipes the tenant's products and their orders
// DELETE /api/v1/products/clear
func (h *ProductHandler) ClearProducts(c *fiber.Ctx) error {
	count, err := h.productService.ClearProducts(getTenantID(c))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "count": count})
}
