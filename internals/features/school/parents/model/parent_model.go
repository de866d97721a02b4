package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParentModel struct {
	ParentID       uuid.UUID `gorm:"column:parent_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"parent_id"`
	ParentCenterID uuid.UUID `gorm:"column:parent_center_id;type:uuid;not null;index" json:"parent_center_id"`

	ParentName  string  `gorm:"column:parent_name;type:varchar(100);not null" json:"parent_name"`
	ParentEmail *string `gorm:"column:parent_email;type:varchar(255)" json:"parent_email,omitempty"`
	ParentPhone *string `gorm:"column:parent_phone;type:varchar(30)" json:"parent_phone,omitempty"`

	ParentIsActive bool `gorm:"column:parent_is_active;not null;default:true" json:"parent_is_active"`

	ParentCreatedAt time.Time      `gorm:"column:parent_created_at;autoCreateTime" json:"parent_created_at"`
	ParentUpdatedAt time.Time      `gorm:"column:parent_updated_at;autoUpdateTime" json:"parent_updated_at"`
	ParentDeletedAt gorm.DeletedAt `gorm:"column:parent_deleted_at;index" json:"parent_deleted_at,omitempty"`
}

func (ParentModel) TableName() string {
	return "parents"
}
