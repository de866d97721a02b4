package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	"bimbelku_backend/internals/features/notifications/queue/model"
	"bimbelku_backend/internals/features/notifications/queue/service"
	parentModel "bimbelku_backend/internals/features/school/parents/model"
	studentModel "bimbelku_backend/internals/features/school/students/model"
	teacherModel "bimbelku_backend/internals/features/school/teachers/model"
)

/* =========================================================
   Notification store (gorm)
========================================================= */

type NotificationRepository struct {
	DB *gorm.DB
}

var _ service.Store = (*NotificationRepository)(nil)

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *model.NotificationModel) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListPendingOldest(ctx context.Context, limit int) ([]model.NotificationModel, error) {
	var rows []model.NotificationModel
	err := r.DB.WithContext(ctx).
		Where("notification_status = ?", model.StatusPending).
		Order("notification_created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// Claim relies on the conditional update being a single statement: only one
// caller sees RowsAffected == 1 for a given row.
func (r *NotificationRepository) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_status = ?", id, model.StatusPending).
		Update("notification_status", model.StatusProcessing)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.DB.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("notification_id = ?", id).
		Updates(map[string]interface{}{
			"notification_status":        model.StatusSent,
			"notification_processed_at":  now,
			"notification_attempt_count": gorm.Expr("notification_attempt_count + 1"),
			"notification_last_error":    nil,
		}).Error
}

func (r *NotificationRepository) MarkRetry(ctx context.Context, id uuid.UUID, attempt int, lastErr string) error {
	return r.DB.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("notification_id = ?", id).
		Updates(map[string]interface{}{
			"notification_status":        model.StatusPending,
			"notification_attempt_count": attempt,
			"notification_last_error":    lastErr,
		}).Error
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, attempt int, lastErr string) error {
	now := time.Now()
	return r.DB.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("notification_id = ?", id).
		Updates(map[string]interface{}{
			"notification_status":        model.StatusFailed,
			"notification_attempt_count": attempt,
			"notification_last_error":    lastErr,
			"notification_processed_at":  now,
		}).Error
}

/* =========================================================
   Contact resolver (gorm)
========================================================= */

type ContactRepository struct {
	DB *gorm.DB
}

var _ service.ContactResolver = (*ContactRepository)(nil)

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Resolve(ctx context.Context, recipientType string, recipientID uuid.UUID) (*service.Contact, error) {
	db := r.DB.WithContext(ctx)

	switch recipientType {
	case constants.EntityStudent:
		var m studentModel.StudentModel
		if err := db.Where("student_id = ?", recipientID).First(&m).Error; err != nil {
			return nil, wrapNotFound(err, recipientID)
		}
		return &service.Contact{Name: m.StudentName, Email: m.StudentEmail, Phone: m.StudentPhone, IsActive: m.StudentIsActive}, nil
	case constants.EntityTeacher:
		var m teacherModel.TeacherModel
		if err := db.Where("teacher_id = ?", recipientID).First(&m).Error; err != nil {
			return nil, wrapNotFound(err, recipientID)
		}
		return &service.Contact{Name: m.TeacherName, Email: m.TeacherEmail, Phone: m.TeacherPhone, IsActive: m.TeacherIsActive}, nil
	case constants.EntityParent:
		var m parentModel.ParentModel
		if err := db.Where("parent_id = ?", recipientID).First(&m).Error; err != nil {
			return nil, wrapNotFound(err, recipientID)
		}
		return &service.Contact{Name: m.ParentName, Email: m.ParentEmail, Phone: m.ParentPhone, IsActive: m.ParentIsActive}, nil
	default:
		return nil, fmt.Errorf("unknown recipient type %q", recipientType)
	}
}

func wrapNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("recipient %s not found", id)
	}
	return err
}
