package model

import (
	"time"

	"github.com/google/uuid"
)

// PortalAccessLogModel is append-only: one row per validation attempt,
// success or failure, never mutated afterwards.
type PortalAccessLogModel struct {
	PortalLogID       uuid.UUID  `gorm:"column:portal_log_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"portal_log_id"`
	PortalLogCenterID *uuid.UUID `gorm:"column:portal_log_center_id;type:uuid;index" json:"portal_log_center_id,omitempty"`

	PortalLogEntityType *string    `gorm:"column:portal_log_entity_type;type:varchar(20)" json:"portal_log_entity_type,omitempty"`
	PortalLogEntityID   *uuid.UUID `gorm:"column:portal_log_entity_id;type:uuid" json:"portal_log_entity_id,omitempty"`

	PortalLogIPAddress *string `gorm:"column:portal_log_ip_address;type:inet" json:"portal_log_ip_address,omitempty"`
	PortalLogUserAgent *string `gorm:"column:portal_log_user_agent;type:varchar(512)" json:"portal_log_user_agent,omitempty"`
	PortalLogPagePath  *string `gorm:"column:portal_log_page_path;type:varchar(255)" json:"portal_log_page_path,omitempty"`

	PortalLogAccessGranted bool    `gorm:"column:portal_log_access_granted;not null" json:"portal_log_access_granted"`
	PortalLogFailureReason *string `gorm:"column:portal_log_failure_reason;type:varchar(100)" json:"portal_log_failure_reason,omitempty"`

	PortalLogCreatedAt time.Time `gorm:"column:portal_log_created_at;autoCreateTime;index" json:"portal_log_created_at"`
}

func (PortalAccessLogModel) TableName() string {
	return "portal_access_logs"
}
