package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	portalRoute "bimbelku_backend/internals/features/portal/tokens/route"
)

func PortalPublicRoutes(r fiber.Router, db *gorm.DB) {
	portalRoute.PortalPublicRoutes(r, db)
}

func PortalAdminRoutes(r fiber.Router, db *gorm.DB) {
	portalRoute.PortalAdminRoutes(r, db)
}
