package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	controller "bimbelku_backend/internals/features/school/parents/controller"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

// Mounted under /api/a
func ParentAdminRoutes(r fiber.Router, db *gorm.DB) {
	parentController := controller.NewParentController(db)

	parents := r.Group("/parents")
	parents.Post("/", authMw.RequireAction(constants.ActionManageStudents, "parent management"), parentController.CreateParent)
	parents.Get("/", authMw.RequireAction(constants.ActionViewStudents, "parent list"), parentController.ListParents)
	parents.Patch("/:id", authMw.RequireAction(constants.ActionManageStudents, "parent management"), parentController.UpdateParent)
}
