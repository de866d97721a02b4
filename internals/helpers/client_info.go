package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientIP resolves the caller IP, honouring X-Forwarded-For when the app
// sits behind a proxy (ProxyHeader is set in main).
func ClientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	return c.IP()
}

func UserAgent(c *fiber.Ctx) string {
	ua := c.Get("User-Agent")
	if len(ua) > 512 {
		ua = ua[:512]
	}
	return ua
}
