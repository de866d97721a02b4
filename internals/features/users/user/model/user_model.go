package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID       uuid.UUID `gorm:"column:user_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"user_id"`
	UserCenterID uuid.UUID `gorm:"column:user_center_id;type:uuid;not null;index" json:"user_center_id"`

	UserName  string `gorm:"column:user_name;type:varchar(100);not null" json:"user_name"`
	UserEmail string `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex:ux_users_center_email,priority:2" json:"user_email"`

	// bcrypt hash, never serialized
	UserPassword string `gorm:"column:user_password;type:varchar(255)" json:"-"`

	UserRole     string `gorm:"column:user_role;type:varchar(20);not null;default:'user'" json:"user_role"`
	UserIsActive bool   `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserPhone *string `gorm:"column:user_phone;type:varchar(30)" json:"user_phone,omitempty"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}
