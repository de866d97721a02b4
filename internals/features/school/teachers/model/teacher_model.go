package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type TeacherModel struct {
	TeacherID       uuid.UUID `gorm:"column:teacher_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"teacher_id"`
	TeacherCenterID uuid.UUID `gorm:"column:teacher_center_id;type:uuid;not null;index" json:"teacher_center_id"`

	TeacherName  string  `gorm:"column:teacher_name;type:varchar(100);not null" json:"teacher_name"`
	TeacherEmail *string `gorm:"column:teacher_email;type:varchar(255)" json:"teacher_email,omitempty"`
	TeacherPhone *string `gorm:"column:teacher_phone;type:varchar(30)" json:"teacher_phone,omitempty"`

	TeacherSubjects pq.StringArray `gorm:"column:teacher_subjects;type:text[]" json:"teacher_subjects"`

	TeacherIsActive bool `gorm:"column:teacher_is_active;not null;default:true" json:"teacher_is_active"`

	TeacherCreatedAt time.Time      `gorm:"column:teacher_created_at;autoCreateTime" json:"teacher_created_at"`
	TeacherUpdatedAt time.Time      `gorm:"column:teacher_updated_at;autoUpdateTime" json:"teacher_updated_at"`
	TeacherDeletedAt gorm.DeletedAt `gorm:"column:teacher_deleted_at;index" json:"teacher_deleted_at,omitempty"`
}

func (TeacherModel) TableName() string {
	return "teachers"
}
