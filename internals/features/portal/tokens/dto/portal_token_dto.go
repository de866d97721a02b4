package dto

import (
	"time"

	"github.com/google/uuid"

	"bimbelku_backend/internals/features/portal/tokens/model"
)

/* ===== Requests ===== */

type IssueTokenRequest struct {
	EntityType          string  `json:"entityType" validate:"required,oneof=student teacher parent"`
	EntityID            string  `json:"entityId" validate:"required,uuid"`
	ExpiresInDays       int     `json:"expiresInDays" validate:"omitempty,min=1,max=365"`
	SendNotification    bool    `json:"sendNotification"`
	NotificationChannel *string `json:"notificationChannel,omitempty" validate:"omitempty,oneof=email sms both"`
}

type ValidateTokenRequest struct {
	Token      string  `json:"token" validate:"required"`
	EntityType *string `json:"entityType,omitempty" validate:"omitempty,oneof=student teacher parent"`
	PagePath   *string `json:"pagePath,omitempty"`
}

type RevokeTokenRequest struct {
	EntityType string  `json:"entityType" validate:"required,oneof=student teacher parent"`
	EntityID   string  `json:"entityId" validate:"required,uuid"`
	RevokeAll  bool    `json:"revokeAll"`
	TokenID    *string `json:"tokenId,omitempty" validate:"omitempty,uuid"`
}

/* ===== Responses ===== */

type IssueTokenResponse struct {
	Token         string    `json:"token"`
	PortalURL     string    `json:"portalUrl"`
	ExpiresAt     time.Time `json:"expiresAt"`
	ExpiresInDays int       `json:"expiresInDays"`
	RevokedPrior  int64     `json:"revokedPrior"`
}

type AccessLogResponse struct {
	PortalLogID   uuid.UUID  `json:"portal_log_id"`
	EntityType    *string    `json:"entity_type,omitempty"`
	EntityID      *uuid.UUID `json:"entity_id,omitempty"`
	IPAddress     *string    `json:"ip_address,omitempty"`
	UserAgent     *string    `json:"user_agent,omitempty"`
	PagePath      *string    `json:"page_path,omitempty"`
	AccessGranted bool       `json:"access_granted"`
	FailureReason *string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ToAccessLogResponse(m *model.PortalAccessLogModel) *AccessLogResponse {
	return &AccessLogResponse{
		PortalLogID:   m.PortalLogID,
		EntityType:    m.PortalLogEntityType,
		EntityID:      m.PortalLogEntityID,
		IPAddress:     m.PortalLogIPAddress,
		UserAgent:     m.PortalLogUserAgent,
		PagePath:      m.PortalLogPagePath,
		AccessGranted: m.PortalLogAccessGranted,
		FailureReason: m.PortalLogFailureReason,
		CreatedAt:     m.PortalLogCreatedAt,
	}
}

func ToAccessLogResponseList(models []model.PortalAccessLogModel) []AccessLogResponse {
	out := make([]AccessLogResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToAccessLogResponse(&models[i]))
	}
	return out
}
