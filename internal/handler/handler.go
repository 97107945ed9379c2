package handler

import (
	"errors"
	"log"
	"strings"

	"go-coffee-ops/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper to read the acting tenant from the context (set by RequireAuth)
func getTenantID(c *fiber.Ctx) uuid.UUID {
	tenantID, ok := c.Locals("tenant_id").(uuid.UUID)
	if !ok {
		return uuid.Nil // shouldn't happen behind RequireAuth
	}
	return tenantID
}

// Helper to parse UUID from a string
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// serviceError maps business-rule errors to status codes. Anything not in
// the taxonomy is a storage failure: logged server-side, generic 500 body.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case service.IsNotFound(err):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case isBusinessError(err):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

func isBusinessError(err error) bool {
	for _, target := range []error{
		service.ErrDuplicateEmail,
		service.ErrInsufficientStock,
		service.ErrCustomerHasOrders,
		service.ErrProductHasOrders,
		service.ErrInvalidStatus,
		service.ErrEmailTaken,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	// Request validation errors are formatted upstream
	return strings.HasPrefix(err.Error(), "validation failed")
}
