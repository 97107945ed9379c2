package middleware

import (
	"strings"

	"go-coffee-ops/internal/repository"
	"go-coffee-ops/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and injects the tenant id into
// the request context. Every scoped handler reads the tenant id from here
// and nowhere else, so no request can act outside its own tenant.
func RequireAuth(tenantRepo repository.TenantRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		tokenString := parts[1]

		// Validate token
		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Check the tenant still exists and is active
		tenant, err := tenantRepo.FindByID(claims.TenantID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Tenant not found"})
		}
		if !tenant.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "Tenant account is inactive"})
		}

		// Set tenant info in context for downstream handlers
		c.Locals("tenant_id", claims.TenantID)
		c.Locals("tenant_email", claims.Email)

		return c.Next()
	}
}
