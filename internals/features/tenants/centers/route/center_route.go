package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	controller "bimbelku_backend/internals/features/tenants/centers/controller"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

// Mounted under /api/public
func CenterPublicRoutes(r fiber.Router, db *gorm.DB) {
	centerController := controller.NewCenterController(db)

	r.Get("/centers/:slug", centerController.GetBySlug)
}

// Mounted under /api/u
func CenterUserRoutes(r fiber.Router, db *gorm.DB) {
	centerController := controller.NewCenterController(db)

	r.Get("/center", authMw.RequireAction(constants.ActionViewCenter, "center profile"), centerController.GetMyCenter)
}

// Mounted under /api/a
func CenterAdminRoutes(r fiber.Router, db *gorm.DB) {
	centerController := controller.NewCenterController(db)

	r.Get("/center", authMw.RequireAction(constants.ActionViewCenter, "center profile"), centerController.GetMyCenter)
	r.Patch("/center", authMw.RequireAction(constants.ActionManageCenter, "center settings"), centerController.UpdateMyCenter)
}

// Mounted under /api/o
func CenterOwnerRoutes(r fiber.Router, db *gorm.DB) {
	centerController := controller.NewCenterController(db)

	r.Get("/centers", centerController.ListCenters)
}
