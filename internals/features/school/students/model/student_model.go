package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID       uuid.UUID `gorm:"column:student_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"student_id"`
	StudentCenterID uuid.UUID `gorm:"column:student_center_id;type:uuid;not null;index" json:"student_center_id"`

	StudentName  string  `gorm:"column:student_name;type:varchar(100);not null" json:"student_name"`
	StudentEmail *string `gorm:"column:student_email;type:varchar(255)" json:"student_email,omitempty"`
	StudentPhone *string `gorm:"column:student_phone;type:varchar(30)" json:"student_phone,omitempty"`

	StudentClassName *string    `gorm:"column:student_class_name;type:varchar(50)" json:"student_class_name,omitempty"`
	StudentParentID  *uuid.UUID `gorm:"column:student_parent_id;type:uuid" json:"student_parent_id,omitempty"`

	StudentIsActive bool `gorm:"column:student_is_active;not null;default:true" json:"student_is_active"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string {
	return "students"
}
