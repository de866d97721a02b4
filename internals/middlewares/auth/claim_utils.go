package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Locals keys (MUST be consistent across middleware & controllers)
const (
	LocUserID    = "user_id"
	LocUserRole  = "user_role"
	LocUserEmail = "user_email"
	LocCenterID  = "center_id"
)

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New("missing user id in context")
	}
	return uuid.Parse(raw)
}

func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocUserRole).(string)
	return role
}

func GetCenterID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocCenterID).(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New("missing center id in context")
	}
	return uuid.Parse(raw)
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["sub"].(string)
	if !ok || raw == "" {
		// legacy claim name
		raw, ok = claims["user_id"].(string)
		if !ok || raw == "" {
			return uuid.Nil, errors.New("missing sub claim")
		}
	}
	return uuid.Parse(raw)
}
