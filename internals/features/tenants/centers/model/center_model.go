package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CenterModel struct {
	CenterID   uuid.UUID `gorm:"column:center_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"center_id"`
	CenterName string    `gorm:"column:center_name;type:varchar(100);not null" json:"center_name"`
	CenterSlug string    `gorm:"column:center_slug;type:varchar(120);not null;uniqueIndex" json:"center_slug"`

	CenterEmail   *string `gorm:"column:center_email;type:varchar(255)" json:"center_email,omitempty"`
	CenterPhone   *string `gorm:"column:center_phone;type:varchar(30)" json:"center_phone,omitempty"`
	CenterAddress *string `gorm:"column:center_address;type:text" json:"center_address,omitempty"`

	// Billing sync writes these; see features/billing/subscriptions.
	CenterSubscriptionTier   string     `gorm:"column:center_subscription_tier;type:varchar(20);not null;default:'free'" json:"center_subscription_tier"`
	CenterSubscriptionStatus string     `gorm:"column:center_subscription_status;type:varchar(20);not null;default:'inactive'" json:"center_subscription_status"`
	CenterMidtransCustomerID *string    `gorm:"column:center_midtrans_customer_id;type:varchar(100)" json:"center_midtrans_customer_id,omitempty"`
	CenterSubscriptionID     *string    `gorm:"column:center_subscription_id;type:varchar(100)" json:"center_subscription_id,omitempty"`
	CenterSubscriptionEndsAt *time.Time `gorm:"column:center_subscription_ends_at;type:timestamptz" json:"center_subscription_ends_at,omitempty"`
	CenterCancelAtPeriodEnd  bool       `gorm:"column:center_cancel_at_period_end;not null;default:false" json:"center_cancel_at_period_end"`

	// Per-tenant module switches, e.g. {"portal":true,"notifications":true,"hostel":false}
	CenterModules datatypes.JSON `gorm:"column:center_modules;type:jsonb" json:"center_modules,omitempty"`

	CenterCreatedAt time.Time      `gorm:"column:center_created_at;autoCreateTime" json:"center_created_at"`
	CenterUpdatedAt time.Time      `gorm:"column:center_updated_at;autoUpdateTime" json:"center_updated_at"`
	CenterDeletedAt gorm.DeletedAt `gorm:"column:center_deleted_at;index" json:"center_deleted_at,omitempty"`
}

func (CenterModel) TableName() string {
	return "centers"
}

// FindCenterByID is shared by handlers and the billing capacity checks.
func FindCenterByID(db *gorm.DB, id uuid.UUID) (*CenterModel, error) {
	var center CenterModel
	if err := db.Where("center_id = ?", id).First(&center).Error; err != nil {
		return nil, err
	}
	return &center, nil
}

var slugCleanRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a center name into a URL-safe slug.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugCleanRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "center"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	// short random suffix keeps the unique index happy for duplicate names
	return s + "-" + uuid.NewString()[:8]
}
