package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bimbelku_backend/internals/constants"
)

// RequireAction checks the capability table once per request. Authentication
// errors (no role in context) and authorization errors (role lacks the
// action) are reported with different status codes.
func RequireAction(action string, feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocUserRole).(string)
		if !ok || role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}
		if !constants.Can(role, action) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": constants.RoleError(role, feature),
			})
		}
		return c.Next()
	}
}

// RequireOwner gates the global (cross-tenant) route group.
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocUserRole).(string)
		if !ok || role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}
		if role != constants.RoleOwner {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": constants.RoleError(role, "owner area"),
			})
		}
		return c.Next()
	}
}

// EnsureCenterScope enforces tenant isolation: the owner role bypasses it,
// everyone else must match the center exactly.
func EnsureCenterScope(c *fiber.Ctx, centerID uuid.UUID) error {
	role := GetUserRole(c)
	if role == constants.RoleOwner {
		return nil
	}
	own, err := GetCenterID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing center information")
	}
	if own != centerID {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden: resource belongs to another center")
	}
	return nil
}
