package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"bimbelku_backend/internals/features/tenants/centers/model"
)

// ================== REQUEST ==================
type UpdateCenterRequest struct {
	CenterName *string         `json:"center_name,omitempty" validate:"omitempty,min=3,max=100"`
	Email      *string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string         `json:"phone,omitempty"`
	Address    *string         `json:"address,omitempty"`
	Modules    *datatypes.JSON `json:"modules,omitempty"`
}

// ================== RESPONSE ==================
type CenterResponse struct {
	CenterID           uuid.UUID      `json:"center_id"`
	CenterName         string         `json:"center_name"`
	CenterSlug         string         `json:"center_slug"`
	Email              *string        `json:"email,omitempty"`
	Phone              *string        `json:"phone,omitempty"`
	Address            *string        `json:"address,omitempty"`
	SubscriptionTier   string         `json:"subscription_tier"`
	SubscriptionStatus string         `json:"subscription_status"`
	SubscriptionEndsAt *string        `json:"subscription_ends_at,omitempty"`
	CancelAtPeriodEnd  bool           `json:"cancel_at_period_end"`
	Modules            datatypes.JSON `json:"modules,omitempty"`
	CreatedAt          string         `json:"created_at"`
}

// ================ CONVERSION =================
func ToCenterResponse(m *model.CenterModel) *CenterResponse {
	var endsAt *string
	if m.CenterSubscriptionEndsAt != nil {
		v := m.CenterSubscriptionEndsAt.Format(time.RFC3339)
		endsAt = &v
	}
	return &CenterResponse{
		CenterID:           m.CenterID,
		CenterName:         m.CenterName,
		CenterSlug:         m.CenterSlug,
		Email:              m.CenterEmail,
		Phone:              m.CenterPhone,
		Address:            m.CenterAddress,
		SubscriptionTier:   m.CenterSubscriptionTier,
		SubscriptionStatus: m.CenterSubscriptionStatus,
		SubscriptionEndsAt: endsAt,
		CancelAtPeriodEnd:  m.CenterCancelAtPeriodEnd,
		Modules:            m.CenterModules,
		CreatedAt:          m.CenterCreatedAt.Format(time.RFC3339),
	}
}
