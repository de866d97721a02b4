package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/features/school/parents/dto"
	"bimbelku_backend/internals/features/school/parents/model"
	helper "bimbelku_backend/internals/helpers"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

type ParentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewParentController(db *gorm.DB) *ParentController {
	return &ParentController{DB: db, Validate: validator.New()}
}

// 🟢 POST /api/a/parents
func (ctrl *ParentController) CreateParent(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ParentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	parent := req.ToModel(centerID)
	if err := ctrl.DB.Create(parent).Error; err != nil {
		log.Printf("[ERROR] create parent: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create parent")
	}
	return helper.JsonCreated(c, "Parent created", dto.ToParentResponse(parent))
}

// 🟢 GET /api/a/parents (+ pagination)
func (ctrl *ParentController) ListParents(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.ParentModel{}).
		Where("parent_center_id = ?", centerID).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count parents")
	}

	var parents []model.ParentModel
	if err := ctrl.DB.
		Where("parent_center_id = ?", centerID).
		Order("parent_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&parents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list parents")
	}

	return helper.JsonList(c, "ok", dto.ToParentResponseList(parents),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 PATCH /api/a/parents/:id
func (ctrl *ParentController) UpdateParent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid parent id")
	}

	var parent model.ParentModel
	if err := ctrl.DB.Where("parent_id = ?", id).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Parent not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load parent")
	}
	if err := authMw.EnsureCenterScope(c, parent.ParentCenterID); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var req dto.ParentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.ParentName != nil {
		updates["parent_name"] = *req.ParentName
	}
	if req.Email != nil {
		updates["parent_email"] = *req.Email
	}
	if req.Phone != nil {
		updates["parent_phone"] = *req.Phone
	}
	if req.IsActive != nil {
		updates["parent_is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "nothing to update", dto.ToParentResponse(&parent))
	}

	if err := ctrl.DB.Model(&parent).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] update parent: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update parent")
	}
	return helper.JsonUpdated(c, "Parent updated", dto.ToParentResponse(&parent))
}
