package model

import (
	"time"

	"github.com/google/uuid"
)

// Queue statuses. "failed" means all attempts are exhausted or the sender
// reported a terminal error; rows that were never attempted stay "pending".
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusSent       = "sent"
	StatusFailed     = "failed"
)

const MaxAttempts = 3

type NotificationModel struct {
	NotificationID       uuid.UUID `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationCenterID uuid.UUID `gorm:"column:notification_center_id;type:uuid;not null;index" json:"notification_center_id"`

	NotificationRecipientType string    `gorm:"column:notification_recipient_type;type:varchar(20);not null" json:"notification_recipient_type"`
	NotificationRecipientID   uuid.UUID `gorm:"column:notification_recipient_id;type:uuid;not null" json:"notification_recipient_id"`

	NotificationType    string `gorm:"column:notification_type;type:varchar(50);not null" json:"notification_type"`
	NotificationTitle   string `gorm:"column:notification_title;type:varchar(200);not null" json:"notification_title"`
	NotificationMessage string `gorm:"column:notification_message;type:text;not null" json:"notification_message"`
	NotificationChannel string `gorm:"column:notification_channel;type:varchar(10);not null" json:"notification_channel"`

	NotificationStatus       string     `gorm:"column:notification_status;type:varchar(15);not null;default:'pending';index" json:"notification_status"`
	NotificationAttemptCount int        `gorm:"column:notification_attempt_count;not null;default:0" json:"notification_attempt_count"`
	NotificationLastError    *string    `gorm:"column:notification_last_error;type:text" json:"notification_last_error,omitempty"`
	NotificationProcessedAt  *time.Time `gorm:"column:notification_processed_at;type:timestamptz" json:"notification_processed_at,omitempty"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;autoCreateTime;index" json:"notification_created_at"`
	NotificationUpdatedAt time.Time `gorm:"column:notification_updated_at;autoUpdateTime" json:"notification_updated_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
