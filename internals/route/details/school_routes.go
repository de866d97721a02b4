package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	parentRoute "bimbelku_backend/internals/features/school/parents/route"
	studentRoute "bimbelku_backend/internals/features/school/students/route"
	teacherRoute "bimbelku_backend/internals/features/school/teachers/route"
)

func SchoolAdminRoutes(r fiber.Router, db *gorm.DB) {
	studentRoute.StudentAdminRoutes(r, db)
	teacherRoute.TeacherAdminRoutes(r, db)
	parentRoute.ParentAdminRoutes(r, db)
}
