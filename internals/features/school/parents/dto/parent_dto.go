package dto

import (
	"time"

	"github.com/google/uuid"

	"bimbelku_backend/internals/features/school/parents/model"
)

type ParentRequest struct {
	ParentName string  `json:"parent_name" validate:"required,min=2,max=100"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
}

type ParentUpdateRequest struct {
	ParentName *string `json:"parent_name,omitempty" validate:"omitempty,min=2,max=100"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

type ParentResponse struct {
	ParentID  uuid.UUID `json:"parent_id"`
	CenterID  uuid.UUID `json:"center_id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt string    `json:"created_at"`
}

func (r *ParentRequest) ToModel(centerID uuid.UUID) *model.ParentModel {
	return &model.ParentModel{
		ParentCenterID: centerID,
		ParentName:     r.ParentName,
		ParentEmail:    r.Email,
		ParentPhone:    r.Phone,
		ParentIsActive: true,
	}
}

func ToParentResponse(m *model.ParentModel) *ParentResponse {
	return &ParentResponse{
		ParentID:  m.ParentID,
		CenterID:  m.ParentCenterID,
		Name:      m.ParentName,
		Email:     m.ParentEmail,
		Phone:     m.ParentPhone,
		IsActive:  m.ParentIsActive,
		CreatedAt: m.ParentCreatedAt.Format(time.RFC3339),
	}
}

func ToParentResponseList(models []model.ParentModel) []ParentResponse {
	out := make([]ParentResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToParentResponse(&models[i]))
	}
	return out
}
