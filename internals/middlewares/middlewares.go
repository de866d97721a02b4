package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"bimbelku_backend/internals/middlewares/logger"
)

// SetupMiddlewares registers the base middleware chain. Auth/role guards are
// attached per route group in internals/route.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
