package controller

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	"bimbelku_backend/internals/constants"
	notifController "bimbelku_backend/internals/features/notifications/queue/controller"
	notifService "bimbelku_backend/internals/features/notifications/queue/service"
	"bimbelku_backend/internals/features/portal/tokens/dto"
	"bimbelku_backend/internals/features/portal/tokens/model"
	"bimbelku_backend/internals/features/portal/tokens/repository"
	"bimbelku_backend/internals/features/portal/tokens/service"
	helper "bimbelku_backend/internals/helpers"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

type PortalTokenController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *service.TokenService
	Queue    *notifService.QueueService
}

func NewPortalTokenController(db *gorm.DB) *PortalTokenController {
	return &PortalTokenController{
		DB:       db,
		Validate: validator.New(),
		Service: service.NewTokenService(
			repository.NewPortalTokenRepository(db),
			repository.NewPortalEntityRepository(db),
			repository.NewPortalLogRepository(db),
			configs.PortalJWTSecret,
			configs.PortalBaseURL,
			configs.PortalCompatUntrackedTokens,
		),
		Queue: notifController.BuildQueueService(db),
	}
}

// 🟢 POST /api/a/portal/tokens — issue a portal token for an entity
func (ctrl *PortalTokenController) IssueToken(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	userID, _ := authMw.GetUserID(c)

	var req dto.IssueTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid entity id")
	}

	ip := helper.ClientIP(c)
	res, err := ctrl.Service.Issue(c.UserContext(), service.IssueInput{
		CenterID:      centerID,
		EntityType:    req.EntityType,
		EntityID:      entityID,
		ExpiresInDays: req.ExpiresInDays,
		CreatedBy:     &userID,
		CreatedIP:     &ip,
	})
	if err != nil {
		switch err {
		case service.ErrShortSecret:
			log.Printf("[ERROR] portal token config: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Portal tokens are not configured")
		case service.ErrEntityMissing:
			return helper.JsonError(c, fiber.StatusNotFound, "Entity not found")
		case service.ErrEntityFrozen:
			return helper.JsonError(c, fiber.StatusConflict, "Entity is inactive")
		default:
			log.Printf("[ERROR] issue portal token: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue portal token")
		}
	}

	if req.SendNotification {
		ctrl.notifyEntity(c, centerID, req, res)
	}

	return helper.JsonCreated(c, "Portal token issued", dto.IssueTokenResponse{
		Token:         res.Token,
		PortalURL:     res.PortalURL,
		ExpiresAt:     res.ExpiresAt,
		ExpiresInDays: res.ExpiresInDays,
		RevokedPrior:  res.RevokedPrior,
	})
}

func (ctrl *PortalTokenController) notifyEntity(c *fiber.Ctx, centerID uuid.UUID, req dto.IssueTokenRequest, res *service.IssueResult) {
	channel := constants.ChannelEmail
	if req.NotificationChannel != nil {
		channel = *req.NotificationChannel
	}
	message := fmt.Sprintf(
		"Halo %s, akses portal Anda sudah siap. Buka tautan berikut (berlaku %d hari): %s",
		res.Entity.Name, res.ExpiresInDays, res.PortalURL,
	)
	enq, err := ctrl.Queue.Enqueue(c.UserContext(), notifService.EnqueueInput{
		CenterID:      centerID,
		RecipientType: req.EntityType,
		RecipientIDs:  []string{req.EntityID},
		Type:          "portal_access",
		Title:         "Link akses portal",
		Message:       message,
		Channel:       channel,
	})
	if err != nil || enq.Queued == 0 {
		log.Printf("[ERROR] queue portal link notification for %s: %v", req.EntityID, err)
		return
	}
	if _, err := ctrl.Queue.ProcessBatch(c.UserContext(), enq.Queued); err != nil {
		log.Printf("[ERROR] dispatch portal link notification: %v", err)
	}
}

// 🟢 POST /api/public/portal/validate — portal clients call this with the
// bearer token from the link. Validation failures are still HTTP 200; only
// transport-level problems get an error status.
func (ctrl *PortalTokenController) ValidateToken(c *fiber.Ctx) error {
	var req dto.ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	ip := helper.ClientIP(c)
	ua := helper.UserAgent(c)
	expected := ""
	if req.EntityType != nil {
		expected = *req.EntityType
	}

	res := ctrl.Service.Validate(c.UserContext(), service.ValidateInput{
		Token:              req.Token,
		ExpectedEntityType: expected,
		IP:                 &ip,
		UserAgent:          &ua,
		PagePath:           req.PagePath,
	})
	if !res.Valid {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"valid": false,
			"error": res.Reason,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"valid":       true,
		"entityType":  res.Claims.EntityType,
		"entityId":    res.Claims.EntityID,
		"centerId":    res.Claims.CenterID,
		"entityName":  res.Entity.Name,
		"entityEmail": res.Entity.Email,
		"entity":      res.Entity.Record,
		"expiresAt":   res.Claims.ExpiresAt,
	})
}

// 🟢 POST /api/a/portal/tokens/revoke
func (ctrl *PortalTokenController) RevokeToken(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.RevokeTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid entity id")
	}

	in := service.RevokeInput{
		CenterID:   centerID,
		EntityType: req.EntityType,
		EntityID:   entityID,
		RevokeAll:  req.RevokeAll,
	}
	if req.TokenID != nil {
		tokenID, err := uuid.Parse(*req.TokenID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid token id")
		}
		in.TokenID = &tokenID
	}

	count, err := ctrl.Service.Revoke(c.UserContext(), in)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonOK(c, "ok", fiber.Map{"revokedCount": count})
}

// 🟢 GET /api/a/portal/logs (+ pagination, optional ?granted= filter)
func (ctrl *PortalTokenController) ListAccessLogs(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PortalAccessLogModel{}).Where("portal_log_center_id = ?", centerID)
	if granted := c.Query("granted"); granted != "" {
		q = q.Where("portal_log_access_granted = ?", granted == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count access logs")
	}

	var rows []model.PortalAccessLogModel
	if err := q.
		Order("portal_log_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list access logs")
	}

	return helper.JsonList(c, "ok", dto.ToAccessLogResponseList(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
