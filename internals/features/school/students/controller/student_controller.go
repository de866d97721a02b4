package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	billingService "bimbelku_backend/internals/features/billing/subscriptions/service"
	"bimbelku_backend/internals/features/school/students/dto"
	"bimbelku_backend/internals/features/school/students/model"
	helper "bimbelku_backend/internals/helpers"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validate: validator.New()}
}

// 🟢 POST /api/a/students — tier student ceiling is enforced before insert
func (ctrl *StudentController) CreateStudent(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := billingService.EnsureStudentCapacity(c.UserContext(), ctrl.DB, centerID); err != nil {
		return helper.JsonErrorWithCode(c, fiber.StatusConflict, "TIER_LIMIT", err.Error())
	}

	student := req.ToModel(centerID)
	if err := ctrl.DB.Create(student).Error; err != nil {
		log.Printf("[ERROR] create student: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create student")
	}
	return helper.JsonCreated(c, "Student created", dto.ToStudentResponse(student))
}

// 🟢 GET /api/a/students (+ pagination, optional ?class_name= filter)
func (ctrl *StudentController) ListStudents(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.StudentModel{}).Where("student_center_id = ?", centerID)
	if cls := c.Query("class_name"); cls != "" {
		q = q.Where("student_class_name = ?", cls)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	var students []model.StudentModel
	if err := q.
		Order("student_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list students")
	}

	return helper.JsonList(c, "ok", dto.ToStudentResponseList(students),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/a/students/:id
func (ctrl *StudentController) GetStudent(c *fiber.Ctx) error {
	student, err := ctrl.loadScoped(c)
	if student == nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.ToStudentResponse(student))
}

// 🟢 PATCH /api/a/students/:id
func (ctrl *StudentController) UpdateStudent(c *fiber.Ctx) error {
	student, err := ctrl.loadScoped(c)
	if student == nil {
		return err
	}

	var req dto.StudentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.StudentName != nil {
		updates["student_name"] = *req.StudentName
	}
	if req.Email != nil {
		updates["student_email"] = *req.Email
	}
	if req.Phone != nil {
		updates["student_phone"] = *req.Phone
	}
	if req.ClassName != nil {
		updates["student_class_name"] = *req.ClassName
	}
	if req.ParentID != nil {
		updates["student_parent_id"] = *req.ParentID
	}
	if req.IsActive != nil {
		updates["student_is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "nothing to update", dto.ToStudentResponse(student))
	}

	if err := ctrl.DB.Model(student).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] update student: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}
	return helper.JsonUpdated(c, "Student updated", dto.ToStudentResponse(student))
}

// 🟢 DELETE /api/a/students/:id — soft delete
func (ctrl *StudentController) DeleteStudent(c *fiber.Ctx) error {
	student, err := ctrl.loadScoped(c)
	if student == nil {
		return err
	}
	if err := ctrl.DB.Delete(student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete student")
	}
	return helper.JsonDeleted(c, "Student deleted", fiber.Map{"student_id": student.StudentID})
}

func (ctrl *StudentController) loadScoped(c *fiber.Ctx) (*model.StudentModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var student model.StudentModel
	if err := ctrl.DB.Where("student_id = ?", id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}
	if err := authMw.EnsureCenterScope(c, student.StudentCenterID); err != nil {
		fe := err.(*fiber.Error)
		return nil, helper.JsonError(c, fe.Code, fe.Message)
	}
	return &student, nil
}
