package dto

import (
	"time"

	"github.com/google/uuid"

	"bimbelku_backend/internals/features/users/user/model"
)

// ================== REQUEST ==================
type CreateStaffRequest struct {
	UserName string  `json:"user_name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required,oneof=admin teacher accountant"`
	Phone    *string `json:"phone,omitempty"`
}

type UpdateStaffRequest struct {
	UserName *string `json:"user_name,omitempty" validate:"omitempty,min=2,max=100"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin teacher accountant"`
	Phone    *string `json:"phone,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ================== RESPONSE ==================
type UserResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	CenterID  uuid.UUID `json:"center_id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt string    `json:"created_at"`
}

// ================ CONVERSION =================
func ToUserResponse(m *model.UserModel) *UserResponse {
	return &UserResponse{
		UserID:    m.UserID,
		CenterID:  m.UserCenterID,
		UserName:  m.UserName,
		Email:     m.UserEmail,
		Role:      m.UserRole,
		IsActive:  m.UserIsActive,
		Phone:     m.UserPhone,
		CreatedAt: m.UserCreatedAt.Format(time.RFC3339),
	}
}

func ToUserResponseList(models []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToUserResponse(&models[i]))
	}
	return out
}
