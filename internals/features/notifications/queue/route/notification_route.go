package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	controller "bimbelku_backend/internals/features/notifications/queue/controller"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

// Mounted under /api/a
func NotificationAdminRoutes(r fiber.Router, db *gorm.DB) {
	notificationController := controller.NewNotificationController(db)

	notifications := r.Group("/notifications")
	notifications.Post("/send", authMw.RequireAction(constants.ActionSendNotifications, "notification dispatch"), notificationController.Send)
	notifications.Get("/", authMw.RequireAction(constants.ActionViewNotifications, "notification list"), notificationController.List)
}

// Mounted under /api/cron — the handler checks the bearer secret itself.
func NotificationCronRoutes(r fiber.Router, db *gorm.DB) {
	notificationController := controller.NewNotificationController(db)

	r.Post("/notifications", notificationController.ProcessCron)
}
