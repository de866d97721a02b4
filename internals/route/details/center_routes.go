package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	centerRoute "bimbelku_backend/internals/features/tenants/centers/route"
	userRoute "bimbelku_backend/internals/features/users/user/route"
)

func CenterPublicRoutes(r fiber.Router, db *gorm.DB) {
	centerRoute.CenterPublicRoutes(r, db)
}

func CenterUserRoutes(r fiber.Router, db *gorm.DB) {
	centerRoute.CenterUserRoutes(r, db)
	userRoute.UserRoutes(r, db)
}

func CenterAdminRoutes(r fiber.Router, db *gorm.DB) {
	centerRoute.CenterAdminRoutes(r, db)
	userRoute.UserAdminRoutes(r, db)
}

func CenterOwnerRoutes(r fiber.Router, db *gorm.DB) {
	centerRoute.CenterOwnerRoutes(r, db)
}
