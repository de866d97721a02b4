package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/features/tenants/centers/dto"
	"bimbelku_backend/internals/features/tenants/centers/model"
	helper "bimbelku_backend/internals/helpers"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

type CenterController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCenterController(db *gorm.DB) *CenterController {
	return &CenterController{DB: db, Validate: validator.New()}
}

// 🟢 GET /api/a/center — the caller's own center
func (ctrl *CenterController) GetMyCenter(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var center model.CenterModel
	if err := ctrl.DB.Where("center_id = ?", centerID).First(&center).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Center not found")
	}
	return helper.JsonOK(c, "ok", dto.ToCenterResponse(&center))
}

// 🟢 GET /api/public/centers/:slug — public profile lookup
func (ctrl *CenterController) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var center model.CenterModel
	if err := ctrl.DB.Where("center_slug = ?", slug).First(&center).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Center not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load center")
	}
	return helper.JsonOK(c, "ok", dto.ToCenterResponse(&center))
}

// 🟢 PATCH /api/a/center
func (ctrl *CenterController) UpdateMyCenter(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.UpdateCenterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var center model.CenterModel
	if err := ctrl.DB.Where("center_id = ?", centerID).First(&center).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Center not found")
	}

	updates := map[string]interface{}{}
	if req.CenterName != nil {
		updates["center_name"] = *req.CenterName
	}
	if req.Email != nil {
		updates["center_email"] = *req.Email
	}
	if req.Phone != nil {
		updates["center_phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["center_address"] = *req.Address
	}
	if req.Modules != nil {
		updates["center_modules"] = *req.Modules
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "nothing to update", dto.ToCenterResponse(&center))
	}

	if err := ctrl.DB.Model(&center).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] update center: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update center")
	}
	return helper.JsonUpdated(c, "Center updated", dto.ToCenterResponse(&center))
}

// 🟢 GET /api/o/centers — owner-only, all tenants (+ pagination)
func (ctrl *CenterController) ListCenters(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.CenterModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count centers")
	}

	var centers []model.CenterModel
	if err := ctrl.DB.
		Order("center_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&centers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list centers")
	}

	out := make([]dto.CenterResponse, 0, len(centers))
	for i := range centers {
		out = append(out, *dto.ToCenterResponse(&centers[i]))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
