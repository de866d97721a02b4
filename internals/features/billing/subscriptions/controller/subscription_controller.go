package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/features/billing/subscriptions/dto"
	"bimbelku_backend/internals/features/billing/subscriptions/service"
	centerModel "bimbelku_backend/internals/features/tenants/centers/model"
	helper "bimbelku_backend/internals/helpers"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

type SubscriptionController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Sync     *service.SyncService
}

func NewSubscriptionController(db *gorm.DB, fetcher service.SubscriptionFetcher) *SubscriptionController {
	return &SubscriptionController{
		DB:       db,
		Validate: validator.New(),
		Sync:     service.NewSyncService(db, fetcher),
	}
}

// 🟢 GET /api/a/billing/subscription — current tier, status and usage
func (ctrl *SubscriptionController) GetSubscription(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	center, err := centerModel.FindCenterByID(ctrl.DB, centerID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Center not found")
	}

	staff, err := service.CountActiveStaff(c.UserContext(), ctrl.DB, centerID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count staff")
	}
	students, err := service.CountActiveStudents(c.UserContext(), ctrl.DB, centerID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	limits := service.LimitsForTier(center.CenterSubscriptionTier)
	return helper.JsonOK(c, "ok",
		dto.ToSubscriptionResponse(center, limits.MaxStaff, limits.MaxStudents, staff, students))
}

// 🟢 POST /api/a/billing/sync — pull subscription state from the gateway
func (ctrl *SubscriptionController) SyncSubscription(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	center, err := ctrl.Sync.SyncCenterSubscription(c.UserContext(), centerID)
	if err != nil {
		if errors.Is(err, service.ErrNoSubscription) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Center has no linked subscription")
		}
		log.Printf("[ERROR] subscription sync: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to sync subscription")
	}

	limits := service.LimitsForTier(center.CenterSubscriptionTier)
	return helper.JsonUpdated(c, "Subscription synced",
		dto.ToSubscriptionResponse(center, limits.MaxStaff, limits.MaxStudents, 0, 0))
}

// 🟢 POST /api/a/billing/downgrade — validate only, nothing is deactivated
func (ctrl *SubscriptionController) Downgrade(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.DowngradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := service.ValidateDowngrade(c.UserContext(), ctrl.DB, centerID, req.TargetTier); err != nil {
		return helper.JsonErrorWithCode(c, fiber.StatusConflict, "TIER_LIMIT", err.Error())
	}

	if err := ctrl.DB.Model(&centerModel.CenterModel{}).
		Where("center_id = ?", centerID).
		Update("center_subscription_tier", req.TargetTier).Error; err != nil {
		log.Printf("[ERROR] downgrade tier: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to change tier")
	}
	return helper.JsonUpdated(c, "Tier changed", fiber.Map{"tier": req.TargetTier})
}

// 🟢 POST /api/a/billing/invoice — one-off Snap invoice (setup fee, top-up)
func (ctrl *SubscriptionController) CreateInvoice(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	orderID := fmt.Sprintf("INV-%s-%s", centerID.String()[:8], uuid.NewString()[:8])
	token, redirectURL, err := service.GenerateInvoiceSnapToken(service.InvoiceInput{
		OrderID:       orderID,
		AmountIDR:     req.AmountIDR,
		Description:   req.Description,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		log.Printf("[ERROR] create snap invoice: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to create invoice")
	}

	return helper.JsonCreated(c, "Invoice created", &dto.InvoiceResponse{
		OrderID:     orderID,
		SnapToken:   token,
		RedirectURL: redirectURL,
	})
}

// 🟢 POST /api/billing/midtrans/notification — gateway status push, unauthenticated
func (ctrl *SubscriptionController) MidtransNotification(c *fiber.Ctx) error {
	var payload struct {
		SubscriptionID string `json:"subscription_id"`
		Status         string `json:"status"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification payload")
	}

	if err := ctrl.Sync.ApplyGatewayStatus(c.UserContext(), payload.SubscriptionID, payload.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown subscription ids are acknowledged so the gateway stops retrying.
			log.Printf("[ERROR] notification for unknown subscription %q", payload.SubscriptionID)
			return helper.JsonOK(c, "ignored", fiber.Map{"subscription_id": payload.SubscriptionID})
		}
		log.Printf("[ERROR] apply gateway status: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to apply notification")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"subscription_id": payload.SubscriptionID})
}
