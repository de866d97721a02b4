package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingRoute "bimbelku_backend/internals/features/billing/subscriptions/route"
)

func BillingPublicRoutes(app *fiber.App, db *gorm.DB) {
	billingRoute.BillingPublicRoutes(app, db)
}

func BillingAdminRoutes(r fiber.Router, db *gorm.DB) {
	billingRoute.BillingAdminRoutes(r, db)
}
