package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	controller "bimbelku_backend/internals/features/billing/subscriptions/controller"
	"bimbelku_backend/internals/features/billing/subscriptions/service"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

// Mounted on the app root: the gateway posts status updates here, so the
// path has to stay outside every auth group (it is also on the auth
// middleware skip list).
func BillingPublicRoutes(app *fiber.App, db *gorm.DB) {
	subscriptionController := controller.NewSubscriptionController(db, service.NewMidtransFetcher())

	app.Post("/api/billing/midtrans/notification", subscriptionController.MidtransNotification)
}

// Mounted under /api/a
func BillingAdminRoutes(r fiber.Router, db *gorm.DB) {
	subscriptionController := controller.NewSubscriptionController(db, service.NewMidtransFetcher())

	billing := r.Group("/billing")
	billing.Get("/subscription", authMw.RequireAction(constants.ActionManageBilling, "billing"), subscriptionController.GetSubscription)
	billing.Post("/sync", authMw.RequireAction(constants.ActionManageBilling, "billing"), subscriptionController.SyncSubscription)
	billing.Post("/downgrade", authMw.RequireAction(constants.ActionManageBilling, "billing"), subscriptionController.Downgrade)
	billing.Post("/invoice", authMw.RequireAction(constants.ActionManageBilling, "billing"), subscriptionController.CreateInvoice)
}
