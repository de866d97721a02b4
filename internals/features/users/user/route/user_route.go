package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	controller "bimbelku_backend/internals/features/users/user/controller"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

// Mounted under /api/u
func UserRoutes(r fiber.Router, db *gorm.DB) {
	userController := controller.NewUserController(db)

	r.Get("/me", userController.GetMe)
}

// Mounted under /api/a
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	userController := controller.NewUserController(db)

	staff := r.Group("/staff")
	staff.Post("/", authMw.RequireAction(constants.ActionManageStaff, "staff management"), userController.CreateStaff)
	staff.Get("/", authMw.RequireAction(constants.ActionManageStaff, "staff management"), userController.ListStaff)
	staff.Patch("/:id", authMw.RequireAction(constants.ActionManageStaff, "staff management"), userController.UpdateStaff)
}
