package dto

import (
	"time"

	"github.com/google/uuid"

	"bimbelku_backend/internals/features/notifications/queue/model"
)

type SendNotificationRequest struct {
	RecipientType      string   `json:"recipientType" validate:"required,oneof=student teacher parent"`
	RecipientID        *string  `json:"recipientId,omitempty"`
	RecipientIDs       []string `json:"recipientIds,omitempty"`
	NotificationType   string   `json:"notificationType" validate:"required,max=50"`
	Title              string   `json:"title" validate:"required,max=200"`
	Message            string   `json:"message" validate:"required"`
	Channel            string   `json:"channel" validate:"required,oneof=email sms both"`
	ProcessImmediately bool     `json:"processImmediately"`
}

// AllRecipientIDs merges the single and plural forms of the request.
func (r *SendNotificationRequest) AllRecipientIDs() []string {
	ids := make([]string, 0, len(r.RecipientIDs)+1)
	if r.RecipientID != nil && *r.RecipientID != "" {
		ids = append(ids, *r.RecipientID)
	}
	ids = append(ids, r.RecipientIDs...)
	return ids
}

type NotificationResponse struct {
	NotificationID uuid.UUID  `json:"notification_id"`
	RecipientType  string     `json:"recipient_type"`
	RecipientID    uuid.UUID  `json:"recipient_id"`
	Type           string     `json:"type"`
	Title          string     `json:"title"`
	Channel        string     `json:"channel"`
	Status         string     `json:"status"`
	AttemptCount   int        `json:"attempt_count"`
	LastError      *string    `json:"last_error,omitempty"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToNotificationResponse(m *model.NotificationModel) *NotificationResponse {
	return &NotificationResponse{
		NotificationID: m.NotificationID,
		RecipientType:  m.NotificationRecipientType,
		RecipientID:    m.NotificationRecipientID,
		Type:           m.NotificationType,
		Title:          m.NotificationTitle,
		Channel:        m.NotificationChannel,
		Status:         m.NotificationStatus,
		AttemptCount:   m.NotificationAttemptCount,
		LastError:      m.NotificationLastError,
		ProcessedAt:    m.NotificationProcessedAt,
		CreatedAt:      m.NotificationCreatedAt,
	}
}

func ToNotificationResponseList(models []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToNotificationResponse(&models[i]))
	}
	return out
}
