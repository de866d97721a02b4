package dto

import (
	"time"

	centerModel "bimbelku_backend/internals/features/tenants/centers/model"
)

type DowngradeRequest struct {
	TargetTier string `json:"target_tier" validate:"required,oneof=free basic premium"`
}

type CreateInvoiceRequest struct {
	AmountIDR     int64  `json:"amount_idr" validate:"required,gt=0"`
	Description   string `json:"description" validate:"omitempty,max=120"`
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,max=20"`
}

type InvoiceResponse struct {
	OrderID     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
}

type SubscriptionResponse struct {
	Tier            string     `json:"tier"`
	Status          string     `json:"status"`
	SubscriptionID  *string    `json:"subscription_id,omitempty"`
	PeriodEndsAt    *time.Time `json:"period_ends_at,omitempty"`
	CancelAtEnd     bool       `json:"cancel_at_period_end"`
	MaxStaff        int        `json:"max_staff"`
	MaxStudents     int        `json:"max_students"`
	ActiveStaff     int64      `json:"active_staff"`
	ActiveStudents  int64      `json:"active_students"`
}

func ToSubscriptionResponse(center *centerModel.CenterModel, maxStaff, maxStudents int, staff, students int64) *SubscriptionResponse {
	return &SubscriptionResponse{
		Tier:           center.CenterSubscriptionTier,
		Status:         center.CenterSubscriptionStatus,
		SubscriptionID: center.CenterSubscriptionID,
		PeriodEndsAt:   center.CenterSubscriptionEndsAt,
		CancelAtEnd:    center.CenterCancelAtPeriodEnd,
		MaxStaff:       maxStaff,
		MaxStudents:    maxStudents,
		ActiveStaff:    staff,
		ActiveStudents: students,
	}
}
