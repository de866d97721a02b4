package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	billingService "bimbelku_backend/internals/features/billing/subscriptions/service"
	"bimbelku_backend/internals/features/users/user/dto"
	"bimbelku_backend/internals/features/users/user/model"
	helper "bimbelku_backend/internals/helpers"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validate: validator.New()}
}

// 🟢 GET /api/u/me
func (ctrl *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := authMw.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var usr model.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).First(&usr).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(&usr))
}

// 🟢 POST /api/a/staff — tier staff ceiling is enforced before the insert
func (ctrl *UserController) CreateStaff(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := billingService.EnsureStaffCapacity(c.UserContext(), ctrl.DB, centerID); err != nil {
		return helper.JsonErrorWithCode(c, fiber.StatusConflict, "TIER_LIMIT", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[ERROR] bcrypt: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create staff")
	}

	usr := model.UserModel{
		UserCenterID: centerID,
		UserName:     req.UserName,
		UserEmail:    req.Email,
		UserPassword: string(hash),
		UserRole:     req.Role,
		UserIsActive: true,
		UserPhone:    req.Phone,
	}
	if err := ctrl.DB.Create(&usr).Error; err != nil {
		log.Printf("[ERROR] create staff: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create staff")
	}
	return helper.JsonCreated(c, "Staff created", dto.ToUserResponse(&usr))
}

// 🟢 GET /api/a/staff (+ pagination)
func (ctrl *UserController) ListStaff(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.UserModel{}).
		Where("user_center_id = ?", centerID).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count staff")
	}

	var users []model.UserModel
	if err := ctrl.DB.
		Where("user_center_id = ?", centerID).
		Order("user_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list staff")
	}

	return helper.JsonList(c, "ok", dto.ToUserResponseList(users),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 PATCH /api/a/staff/:id
func (ctrl *UserController) UpdateStaff(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid staff id")
	}

	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var usr model.UserModel
	if err := ctrl.DB.Where("user_id = ?", id).First(&usr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load staff")
	}
	if err := authMw.EnsureCenterScope(c, usr.UserCenterID); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	updates := map[string]interface{}{}
	if req.UserName != nil {
		updates["user_name"] = *req.UserName
	}
	if req.Role != nil {
		updates["user_role"] = *req.Role
	}
	if req.Phone != nil {
		updates["user_phone"] = *req.Phone
	}
	if req.IsActive != nil {
		updates["user_is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "nothing to update", dto.ToUserResponse(&usr))
	}

	if err := ctrl.DB.Model(&usr).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] update staff: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update staff")
	}
	return helper.JsonUpdated(c, "Staff updated", dto.ToUserResponse(&usr))
}
