package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "bimbelku_backend/internals/features/users/auth/controller"
	rateLimiter "bimbelku_backend/internals/middlewares"
)

// Base: /api/auth
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")

	baseAuth.Post("/register", authController.Register)
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Post("/refresh-token", authController.Refresh)
	baseAuth.Post("/logout", authController.Logout)
}
