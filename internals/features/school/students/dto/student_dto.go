package dto

import (
	"time"

	"github.com/google/uuid"

	"bimbelku_backend/internals/features/school/students/model"
)

// ================== REQUEST ==================
type StudentRequest struct {
	StudentName string     `json:"student_name" validate:"required,min=2,max=100"`
	Email       *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string    `json:"phone,omitempty"`
	ClassName   *string    `json:"class_name,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
}

type StudentUpdateRequest struct {
	StudentName *string    `json:"student_name,omitempty" validate:"omitempty,min=2,max=100"`
	Email       *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string    `json:"phone,omitempty"`
	ClassName   *string    `json:"class_name,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// ================== RESPONSE ==================
type StudentResponse struct {
	StudentID uuid.UUID  `json:"student_id"`
	CenterID  uuid.UUID  `json:"center_id"`
	Name      string     `json:"name"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	ClassName *string    `json:"class_name,omitempty"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt string     `json:"created_at"`
}

// ================ CONVERSION =================
func (r *StudentRequest) ToModel(centerID uuid.UUID) *model.StudentModel {
	return &model.StudentModel{
		StudentCenterID:  centerID,
		StudentName:      r.StudentName,
		StudentEmail:     r.Email,
		StudentPhone:     r.Phone,
		StudentClassName: r.ClassName,
		StudentParentID:  r.ParentID,
		StudentIsActive:  true,
	}
}

func ToStudentResponse(m *model.StudentModel) *StudentResponse {
	return &StudentResponse{
		StudentID: m.StudentID,
		CenterID:  m.StudentCenterID,
		Name:      m.StudentName,
		Email:     m.StudentEmail,
		Phone:     m.StudentPhone,
		ClassName: m.StudentClassName,
		ParentID:  m.StudentParentID,
		IsActive:  m.StudentIsActive,
		CreatedAt: m.StudentCreatedAt.Format(time.RFC3339),
	}
}

func ToStudentResponseList(models []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToStudentResponse(&models[i]))
	}
	return out
}
