package dto

import (
	"time"

	"github.com/google/uuid"

	"bimbelku_backend/internals/features/school/teachers/model"
)

type TeacherRequest struct {
	TeacherName string   `json:"teacher_name" validate:"required,min=2,max=100"`
	Email       *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string  `json:"phone,omitempty"`
	Subjects    []string `json:"subjects,omitempty"`
}

type TeacherUpdateRequest struct {
	TeacherName *string   `json:"teacher_name,omitempty" validate:"omitempty,min=2,max=100"`
	Email       *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string   `json:"phone,omitempty"`
	Subjects    *[]string `json:"subjects,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

type TeacherResponse struct {
	TeacherID uuid.UUID `json:"teacher_id"`
	CenterID  uuid.UUID `json:"center_id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Subjects  []string  `json:"subjects"`
	IsActive  bool      `json:"is_active"`
	CreatedAt string    `json:"created_at"`
}

func (r *TeacherRequest) ToModel(centerID uuid.UUID) *model.TeacherModel {
	return &model.TeacherModel{
		TeacherCenterID: centerID,
		TeacherName:     r.TeacherName,
		TeacherEmail:    r.Email,
		TeacherPhone:    r.Phone,
		TeacherSubjects: r.Subjects,
		TeacherIsActive: true,
	}
}

func ToTeacherResponse(m *model.TeacherModel) *TeacherResponse {
	return &TeacherResponse{
		TeacherID: m.TeacherID,
		CenterID:  m.TeacherCenterID,
		Name:      m.TeacherName,
		Email:     m.TeacherEmail,
		Phone:     m.TeacherPhone,
		Subjects:  m.TeacherSubjects,
		IsActive:  m.TeacherIsActive,
		CreatedAt: m.TeacherCreatedAt.Format(time.RFC3339),
	}
}

func ToTeacherResponseList(models []model.TeacherModel) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToTeacherResponse(&models[i]))
	}
	return out
}
