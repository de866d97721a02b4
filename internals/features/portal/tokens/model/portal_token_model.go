package model

import (
	"time"

	"github.com/google/uuid"
)

// PortalAccessTokenModel rows are never physically deleted; a token either
// expires (derived from portal_token_expires_at at read time) or is revoked.
// Revocation is terminal.
type PortalAccessTokenModel struct {
	PortalTokenID       uuid.UUID `gorm:"column:portal_token_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"portal_token_id"`
	PortalTokenCenterID uuid.UUID `gorm:"column:portal_token_center_id;type:uuid;not null;index" json:"portal_token_center_id"`

	PortalTokenEntityType string    `gorm:"column:portal_token_entity_type;type:varchar(20);not null;index:ix_portal_tokens_entity" json:"portal_token_entity_type"`
	PortalTokenEntityID   uuid.UUID `gorm:"column:portal_token_entity_id;type:uuid;not null;index:ix_portal_tokens_entity" json:"portal_token_entity_id"`

	// sha256 hex digest of the encoded token string
	PortalTokenHash string `gorm:"column:portal_token_hash;type:char(64);not null;uniqueIndex" json:"-"`

	PortalTokenExpiresAt time.Time  `gorm:"column:portal_token_expires_at;type:timestamptz;not null" json:"portal_token_expires_at"`
	PortalTokenIsRevoked bool       `gorm:"column:portal_token_is_revoked;not null;default:false" json:"portal_token_is_revoked"`
	PortalTokenRevokedAt *time.Time `gorm:"column:portal_token_revoked_at;type:timestamptz" json:"portal_token_revoked_at,omitempty"`

	PortalTokenCreatedBy *uuid.UUID `gorm:"column:portal_token_created_by;type:uuid" json:"portal_token_created_by,omitempty"`
	PortalTokenCreatedIP *string    `gorm:"column:portal_token_created_ip;type:inet" json:"portal_token_created_ip,omitempty"`

	PortalTokenLastUsedAt *time.Time `gorm:"column:portal_token_last_used_at;type:timestamptz" json:"portal_token_last_used_at,omitempty"`
	PortalTokenLastIP     *string    `gorm:"column:portal_token_last_ip;type:inet" json:"portal_token_last_ip,omitempty"`

	PortalTokenCreatedAt time.Time `gorm:"column:portal_token_created_at;autoCreateTime" json:"portal_token_created_at"`
}

func (PortalAccessTokenModel) TableName() string {
	return "portal_access_tokens"
}

// IsActive reports whether the row still grants access at the given instant.
func (m *PortalAccessTokenModel) IsActive(now time.Time) bool {
	return !m.PortalTokenIsRevoked && m.PortalTokenExpiresAt.After(now)
}
