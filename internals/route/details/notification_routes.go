package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationRoute "bimbelku_backend/internals/features/notifications/queue/route"
)

func NotificationAdminRoutes(r fiber.Router, db *gorm.DB) {
	notificationRoute.NotificationAdminRoutes(r, db)
}

func NotificationCronRoutes(r fiber.Router, db *gorm.DB) {
	notificationRoute.NotificationCronRoutes(r, db)
}
