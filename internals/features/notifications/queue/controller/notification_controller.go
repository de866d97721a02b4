package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	"bimbelku_backend/internals/features/notifications/queue/dto"
	"bimbelku_backend/internals/features/notifications/queue/model"
	"bimbelku_backend/internals/features/notifications/queue/repository"
	"bimbelku_backend/internals/features/notifications/queue/service"
	"bimbelku_backend/internals/features/notifications/sender"
	helper "bimbelku_backend/internals/helpers"
	authMw "bimbelku_backend/internals/middlewares/auth"
)

type NotificationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Queue    *service.QueueService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{
		DB:       db,
		Validate: validator.New(),
		Queue:    BuildQueueService(db),
	}
}

// BuildQueueService wires the gorm stores with whichever senders are
// configured. Without provider keys everything goes to the console, which is
// what you want in development.
func BuildQueueService(db *gorm.DB) *service.QueueService {
	var email sender.EmailSender = sender.NewConsoleSender()
	if configs.SendgridAPIKey != "" {
		email = sender.NewSendgridSender(configs.SendgridAPIKey, configs.EmailFromName, configs.EmailFrom)
	}
	var sms sender.SMSSender = sender.NewConsoleSender()
	if configs.SMSGatewayURL != "" {
		sms = sender.NewGatewaySMSSender(configs.SMSGatewayURL, configs.SMSGatewayKey, configs.SMSSenderID)
	}
	return service.NewQueueService(
		repository.NewNotificationRepository(db),
		repository.NewContactRepository(db),
		email, sms,
	)
}

// 🟢 POST /api/a/notifications/send
func (ctrl *NotificationController) Send(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.SendNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	ids := req.AllRecipientIDs()
	if len(ids) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "recipientId or recipientIds is required")
	}

	res, err := ctrl.Queue.Enqueue(c.UserContext(), service.EnqueueInput{
		CenterID:      centerID,
		RecipientType: req.RecipientType,
		RecipientIDs:  ids,
		Type:          req.NotificationType,
		Title:         req.Title,
		Message:       req.Message,
		Channel:       req.Channel,
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	out := fiber.Map{
		"queued": res.Queued,
		"failed": res.Failed,
	}
	if len(res.Errors) > 0 {
		out["errors"] = res.Errors
	}

	if req.ProcessImmediately && res.Queued > 0 {
		batch, err := ctrl.Queue.ProcessBatch(c.UserContext(), res.Queued)
		if err != nil {
			log.Printf("[ERROR] immediate notification dispatch: %v", err)
		} else {
			out["processedImmediately"] = batch.Processed
		}
	}

	return helper.JsonCreated(c, "Notifications queued", out)
}

// 🟢 GET /api/a/notifications (+ pagination, optional ?status= filter)
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	centerID, err := authMw.GetCenterID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.NotificationModel{}).Where("notification_center_id = ?", centerID)
	if status := c.Query("status"); status != "" {
		q = q.Where("notification_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}

	var rows []model.NotificationModel
	if err := q.
		Order("notification_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list notifications")
	}

	return helper.JsonList(c, "ok", dto.ToNotificationResponseList(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 POST /api/cron/notifications — external scheduler hits this. Guarded by
// a bearer secret when CRON_SECRET is set; otherwise open.
func (ctrl *NotificationController) ProcessCron(c *fiber.Ctx) error {
	if configs.CronSecret != "" {
		got := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		if got != configs.CronSecret {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid cron secret")
		}
	}

	limit := c.QueryInt("limit", 50)
	res, err := ctrl.Queue.ProcessBatch(c.UserContext(), limit)
	if err != nil {
		log.Printf("[ERROR] cron notification batch: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process notifications")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"processed": res.Processed,
		"failed":    res.Failed,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
