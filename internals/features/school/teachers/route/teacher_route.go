package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	controller "bimbelku_backend/internals/features/school/teachers/controller"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

// Mounted under /api/a
func TeacherAdminRoutes(r fiber.Router, db *gorm.DB) {
	teacherController := controller.NewTeacherController(db)

	teachers := r.Group("/teachers")
	teachers.Post("/", authMw.RequireAction(constants.ActionManageStudents, "teacher management"), teacherController.CreateTeacher)
	teachers.Get("/", authMw.RequireAction(constants.ActionViewStudents, "teacher list"), teacherController.ListTeachers)
	teachers.Patch("/:id", authMw.RequireAction(constants.ActionManageStudents, "teacher management"), teacherController.UpdateTeacher)
}
