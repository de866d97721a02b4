package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	"bimbelku_backend/internals/features/portal/tokens/model"
	"bimbelku_backend/internals/features/portal/tokens/service"
	parentModel "bimbelku_backend/internals/features/school/parents/model"
	studentModel "bimbelku_backend/internals/features/school/students/model"
	teacherModel "bimbelku_backend/internals/features/school/teachers/model"
)

/* =========================================================
   Token store (gorm)
========================================================= */

type PortalTokenRepository struct {
	DB *gorm.DB
}

var _ service.TokenStore = (*PortalTokenRepository)(nil)

func NewPortalTokenRepository(db *gorm.DB) *PortalTokenRepository {
	return &PortalTokenRepository{DB: db}
}

// ReplaceActive runs revoke-then-insert inside one transaction so a failure
// can never leave the entity with a half-applied reissue.
func (r *PortalTokenRepository) ReplaceActive(ctx context.Context, row *model.PortalAccessTokenModel) (int64, error) {
	var revoked int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&model.PortalAccessTokenModel{}).
			Where("portal_token_center_id = ? AND portal_token_entity_type = ? AND portal_token_entity_id = ? AND portal_token_is_revoked = FALSE",
				row.PortalTokenCenterID, row.PortalTokenEntityType, row.PortalTokenEntityID).
			Updates(map[string]interface{}{
				"portal_token_is_revoked": true,
				"portal_token_revoked_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		revoked = res.RowsAffected
		return tx.Create(row).Error
	})
	return revoked, err
}

func (r *PortalTokenRepository) FindByHash(ctx context.Context, hash string) (*model.PortalAccessTokenModel, error) {
	var row model.PortalAccessTokenModel
	err := r.DB.WithContext(ctx).Where("portal_token_hash = ?", hash).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *PortalTokenRepository) Revoke(ctx context.Context, centerID uuid.UUID, entityType string, entityID uuid.UUID, tokenID *uuid.UUID) (int64, error) {
	q := r.DB.WithContext(ctx).
		Model(&model.PortalAccessTokenModel{}).
		Where("portal_token_center_id = ? AND portal_token_entity_type = ? AND portal_token_entity_id = ? AND portal_token_is_revoked = FALSE",
			centerID, entityType, entityID)
	if tokenID != nil {
		q = q.Where("portal_token_id = ?", *tokenID)
	}
	res := q.Updates(map[string]interface{}{
		"portal_token_is_revoked": true,
		"portal_token_revoked_at": time.Now(),
	})
	return res.RowsAffected, res.Error
}

func (r *PortalTokenRepository) TouchUsage(ctx context.Context, tokenID uuid.UUID, at time.Time, ip *string) error {
	return r.DB.WithContext(ctx).
		Model(&model.PortalAccessTokenModel{}).
		Where("portal_token_id = ?", tokenID).
		Updates(map[string]interface{}{
			"portal_token_last_used_at": at,
			"portal_token_last_ip":      ip,
		}).Error
}

/* =========================================================
   Entity store (gorm)
========================================================= */

type PortalEntityRepository struct {
	DB *gorm.DB
}

var _ service.EntityStore = (*PortalEntityRepository)(nil)

func NewPortalEntityRepository(db *gorm.DB) *PortalEntityRepository {
	return &PortalEntityRepository{DB: db}
}

func (r *PortalEntityRepository) Find(ctx context.Context, entityType string, entityID uuid.UUID) (*service.Entity, error) {
	db := r.DB.WithContext(ctx)

	switch entityType {
	case constants.EntityStudent:
		var m studentModel.StudentModel
		if err := db.Where("student_id = ?", entityID).First(&m).Error; err != nil {
			return nil, ignoreNotFound(err)
		}
		return &service.Entity{
			ID: m.StudentID, CenterID: m.StudentCenterID, Name: m.StudentName,
			Email: m.StudentEmail, Phone: m.StudentPhone, IsActive: m.StudentIsActive, Record: m,
		}, nil
	case constants.EntityTeacher:
		var m teacherModel.TeacherModel
		if err := db.Where("teacher_id = ?", entityID).First(&m).Error; err != nil {
			return nil, ignoreNotFound(err)
		}
		return &service.Entity{
			ID: m.TeacherID, CenterID: m.TeacherCenterID, Name: m.TeacherName,
			Email: m.TeacherEmail, Phone: m.TeacherPhone, IsActive: m.TeacherIsActive, Record: m,
		}, nil
	case constants.EntityParent:
		var m parentModel.ParentModel
		if err := db.Where("parent_id = ?", entityID).First(&m).Error; err != nil {
			return nil, ignoreNotFound(err)
		}
		return &service.Entity{
			ID: m.ParentID, CenterID: m.ParentCenterID, Name: m.ParentName,
			Email: m.ParentEmail, Phone: m.ParentPhone, IsActive: m.ParentIsActive, Record: m,
		}, nil
	default:
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}
}

func ignoreNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

/* =========================================================
   Access log store (gorm)
========================================================= */

type PortalLogRepository struct {
	DB *gorm.DB
}

var _ service.AccessLogStore = (*PortalLogRepository)(nil)

func NewPortalLogRepository(db *gorm.DB) *PortalLogRepository {
	return &PortalLogRepository{DB: db}
}

func (r *PortalLogRepository) Append(ctx context.Context, entry *model.PortalAccessLogModel) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}
