package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/features/school/teachers/dto"
	"bimbelku_backend/internals/features/school/teachers/model"
	helper "bimbelku_backend/internals/helpers"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

type TeacherController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db, Validate: validator.New()}
}

// 🟢 POST /api/a/teachers
func (ctrl *TeacherController) CreateTeacher(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.TeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	teacher := req.ToModel(centerID)
	if err := ctrl.DB.Create(teacher).Error; err != nil {
		log.Printf("[ERROR] create teacher: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create teacher")
	}
	return helper.JsonCreated(c, "Teacher created", dto.ToTeacherResponse(teacher))
}

// 🟢 GET /api/a/teachers (+ pagination)
func (ctrl *TeacherController) ListTeachers(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.TeacherModel{}).
		Where("teacher_center_id = ?", centerID).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count teachers")
	}

	var teachers []model.TeacherModel
	if err := ctrl.DB.
		Where("teacher_center_id = ?", centerID).
		Order("teacher_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&teachers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list teachers")
	}

	return helper.JsonList(c, "ok", dto.ToTeacherResponseList(teachers),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 PATCH /api/a/teachers/:id
func (ctrl *TeacherController) UpdateTeacher(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}

	var teacher model.TeacherModel
	if err := ctrl.DB.Where("teacher_id = ?", id).First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Teacher not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load teacher")
	}
	if err := authMw.EnsureCenterScope(c, teacher.TeacherCenterID); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var req dto.TeacherUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.TeacherName != nil {
		updates["teacher_name"] = *req.TeacherName
	}
	if req.Email != nil {
		updates["teacher_email"] = *req.Email
	}
	if req.Phone != nil {
		updates["teacher_phone"] = *req.Phone
	}
	if req.Subjects != nil {
		updates["teacher_subjects"] = *req.Subjects
	}
	if req.IsActive != nil {
		updates["teacher_is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "nothing to update", dto.ToTeacherResponse(&teacher))
	}

	if err := ctrl.DB.Model(&teacher).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] update teacher: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update teacher")
	}
	return helper.JsonUpdated(c, "Teacher updated", dto.ToTeacherResponse(&teacher))
}
