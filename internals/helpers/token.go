package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Raw JWT stored in Locals by the auth middleware, handy for reuse.
const LocRawToken = "raw_token"

// GetRawAccessToken returns the access token from:
// 1) cookie "access_token"
// 2) Locals("raw_token") set by middleware
// 3) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

func GetRefreshTokenFromCookie(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Cookies("refresh_token"))
}

func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}
