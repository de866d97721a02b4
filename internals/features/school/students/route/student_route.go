package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	controller "bimbelku_backend/internals/features/school/students/controller"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

// Mounted under /api/a
func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	studentController := controller.NewStudentController(db)

	students := r.Group("/students")
	students.Post("/", authMw.RequireAction(constants.ActionManageStudents, "student management"), studentController.CreateStudent)
	students.Get("/", authMw.RequireAction(constants.ActionViewStudents, "student list"), studentController.ListStudents)
	students.Get("/:id", authMw.RequireAction(constants.ActionViewStudents, "student detail"), studentController.GetStudent)
	students.Patch("/:id", authMw.RequireAction(constants.ActionManageStudents, "student management"), studentController.UpdateStudent)
	students.Delete("/:id", authMw.RequireAction(constants.ActionManageStudents, "student management"), studentController.DeleteStudent)
}
