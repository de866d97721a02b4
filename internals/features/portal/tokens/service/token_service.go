package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"bimbelku_backend/internals/constants"
	"bimbelku_backend/internals/features/portal/tokens/model"
)

const (
	minSecretLen      = 32
	defaultExpiryDays = 30
	maxExpiryDays     = 365
)

// Cheap structural rejection before any crypto work.
var tokenShapeRe = regexp.MustCompile(`^[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+$`)

var (
	ErrShortSecret   = errors.New("portal signing secret must be at least 32 characters")
	ErrMalformed     = errors.New("Malformed token")
	ErrExpired       = errors.New("Token expired")
	ErrBadSignature  = errors.New("Invalid token")
	ErrRevoked       = errors.New("Token revoked")
	ErrUntracked     = errors.New("Token not recognized")
	ErrTypeMismatch  = errors.New("Token type mismatch")
	ErrEntityMissing = errors.New("Account not found")
	ErrEntityFrozen  = errors.New("Account is inactive")
)

/* =========================================================
   Store contracts
========================================================= */

type TokenStore interface {
	// ReplaceActive revokes all active rows for the new row's entity and
	// inserts the new row in one transaction, returning the revoked count.
	ReplaceActive(ctx context.Context, row *model.PortalAccessTokenModel) (int64, error)
	// FindByHash returns (nil, nil) when no row carries the hash.
	FindByHash(ctx context.Context, hash string) (*model.PortalAccessTokenModel, error)
	// Revoke flips matching non-revoked rows; already-revoked rows don't count.
	Revoke(ctx context.Context, centerID uuid.UUID, entityType string, entityID uuid.UUID, tokenID *uuid.UUID) (int64, error)
	TouchUsage(ctx context.Context, tokenID uuid.UUID, at time.Time, ip *string) error
}

// Entity is the portal-facing slice of a student/teacher/parent row.
type Entity struct {
	ID       uuid.UUID
	CenterID uuid.UUID
	Name     string
	Email    *string
	Phone    *string
	IsActive bool
	// Record is the full underlying row, returned to the portal as-is.
	Record interface{}
}

type EntityStore interface {
	// Find returns (nil, nil) when the entity does not exist.
	Find(ctx context.Context, entityType string, entityID uuid.UUID) (*Entity, error)
}

type AccessLogStore interface {
	Append(ctx context.Context, entry *model.PortalAccessLogModel) error
}

/* =========================================================
   Token service
========================================================= */

type TokenService struct {
	Tokens   TokenStore
	Entities EntityStore
	Logs     AccessLogStore

	Secret  string
	BaseURL string
	// CompatUntracked keeps validation fail-open for tokens issued before
	// hash tracking existed. Every such acceptance is audited; flip the flag
	// off once pre-tracking tokens have aged out.
	CompatUntracked bool

	Now func() time.Time
}

func NewTokenService(tokens TokenStore, entities EntityStore, logs AccessLogStore, secret, baseURL string, compatUntracked bool) *TokenService {
	return &TokenService{
		Tokens:          tokens,
		Entities:        entities,
		Logs:            logs,
		Secret:          secret,
		BaseURL:         baseURL,
		CompatUntracked: compatUntracked,
		Now:             time.Now,
	}
}

func (s *TokenService) checkSecret() error {
	if len(s.Secret) < minSecretLen {
		return ErrShortSecret
	}
	return nil
}

/* =========================================================
   Issue
========================================================= */

type IssueInput struct {
	CenterID      uuid.UUID
	EntityType    string
	EntityID      uuid.UUID
	ExpiresInDays int
	CreatedBy     *uuid.UUID
	CreatedIP     *string
}

type IssueResult struct {
	Token         string
	PortalURL     string
	ExpiresAt     time.Time
	ExpiresInDays int
	RevokedPrior  int64
	Entity        *Entity
}

// Issue signs a new portal token for the entity and atomically supersedes
// any previously active token rows for it.
func (s *TokenService) Issue(ctx context.Context, in IssueInput) (*IssueResult, error) {
	if err := s.checkSecret(); err != nil {
		return nil, err
	}
	if !constants.IsValidEntityType(in.EntityType) {
		return nil, fmt.Errorf("unknown entity type %q", in.EntityType)
	}

	entity, err := s.Entities.Find(ctx, in.EntityType, in.EntityID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, ErrEntityMissing
	}
	if entity.CenterID != in.CenterID {
		return nil, ErrEntityMissing
	}
	if !entity.IsActive {
		return nil, ErrEntityFrozen
	}

	days := in.ExpiresInDays
	if days <= 0 {
		days = defaultExpiryDays
	}
	if days > maxExpiryDays {
		days = maxExpiryDays
	}

	now := s.Now()
	expiresAt := now.Add(time.Duration(days) * 24 * time.Hour)

	claims := jwt.MapClaims{
		"type":     in.EntityType,
		"entityId": in.EntityID.String(),
		"centerId": in.CenterID.String(),
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign portal token: %w", err)
	}

	row := &model.PortalAccessTokenModel{
		PortalTokenCenterID:   in.CenterID,
		PortalTokenEntityType: in.EntityType,
		PortalTokenEntityID:   in.EntityID,
		PortalTokenHash:       HashToken(token),
		PortalTokenExpiresAt:  expiresAt,
		PortalTokenCreatedBy:  in.CreatedBy,
		PortalTokenCreatedIP:  in.CreatedIP,
	}
	revoked, err := s.Tokens.ReplaceActive(ctx, row)
	if err != nil {
		return nil, err
	}

	return &IssueResult{
		Token:         token,
		PortalURL:     fmt.Sprintf("%s/portal/%s?token=%s", s.BaseURL, in.EntityType, token),
		ExpiresAt:     expiresAt,
		ExpiresInDays: days,
		RevokedPrior:  revoked,
		Entity:        entity,
	}, nil
}

/* =========================================================
   Verify (pure, no storage)
========================================================= */

type TokenClaims struct {
	EntityType string
	EntityID   uuid.UUID
	CenterID   uuid.UUID
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Verify checks structure, signature and expiry. It never touches storage.
func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	if err := s.checkSecret(); err != nil {
		return nil, err
	}
	if !tokenShapeRe.MatchString(tokenString) {
		return nil, ErrMalformed
	}

	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.Secret), nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrExpired
		}
		return nil, ErrBadSignature
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrBadSignature
	}
	return claimsFromMap(mapClaims)
}

func claimsFromMap(m jwt.MapClaims) (*TokenClaims, error) {
	entityType, _ := m["type"].(string)
	if !constants.IsValidEntityType(entityType) {
		return nil, ErrMalformed
	}
	rawEntity, _ := m["entityId"].(string)
	entityID, err := uuid.Parse(rawEntity)
	if err != nil {
		return nil, ErrMalformed
	}
	rawCenter, _ := m["centerId"].(string)
	centerID, err := uuid.Parse(rawCenter)
	if err != nil {
		return nil, ErrMalformed
	}
	iat, _ := m["iat"].(float64)
	exp, ok := m["exp"].(float64)
	if !ok {
		return nil, ErrMalformed
	}
	return &TokenClaims{
		EntityType: entityType,
		EntityID:   entityID,
		CenterID:   centerID,
		IssuedAt:   time.Unix(int64(iat), 0),
		ExpiresAt:  time.Unix(int64(exp), 0),
	}, nil
}

// decodeUnverified reads claims without checking the signature. Validation
// needs this so expiry and revocation can be decided in the documented order.
func decodeUnverified(tokenString string) (*TokenClaims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, ErrMalformed
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformed
	}
	return claimsFromMap(mapClaims)
}

/* =========================================================
   Validate
========================================================= */

type ValidateInput struct {
	Token              string
	ExpectedEntityType string
	IP                 *string
	UserAgent          *string
	PagePath           *string
}

type ValidationResult struct {
	Valid      bool
	Reason     string
	Claims     *TokenClaims
	Entity     *Entity
	Compat     bool
	TokenRowID *uuid.UUID
}

// Validate decides portal access for a presented token. Ordering matters:
// malformed and expired tokens are rejected before any storage read, and a
// revoked row rejects the token before the signature is even checked. Every
// attempt appends one audit log row.
func (s *TokenService) Validate(ctx context.Context, in ValidateInput) *ValidationResult {
	if err := s.checkSecret(); err != nil {
		return s.deny(ctx, in, nil, err.Error())
	}

	if !tokenShapeRe.MatchString(in.Token) {
		return s.deny(ctx, in, nil, ErrMalformed.Error())
	}

	claims, err := decodeUnverified(in.Token)
	if err != nil {
		return s.deny(ctx, in, nil, ErrMalformed.Error())
	}

	now := s.Now()
	if !claims.ExpiresAt.After(now) {
		return s.deny(ctx, in, claims, ErrExpired.Error())
	}

	row, err := s.Tokens.FindByHash(ctx, HashToken(in.Token))
	if err != nil {
		return s.deny(ctx, in, claims, "lookup failed")
	}
	if row != nil {
		if row.PortalTokenIsRevoked {
			return s.deny(ctx, in, claims, ErrRevoked.Error())
		}
		if !row.PortalTokenExpiresAt.After(now) {
			return s.deny(ctx, in, claims, ErrExpired.Error())
		}
	}

	if _, err := s.Verify(in.Token); err != nil {
		return s.deny(ctx, in, claims, err.Error())
	}

	if row == nil && !s.CompatUntracked {
		return s.deny(ctx, in, claims, ErrUntracked.Error())
	}

	if in.ExpectedEntityType != "" && in.ExpectedEntityType != claims.EntityType {
		return s.deny(ctx, in, claims, ErrTypeMismatch.Error())
	}

	entity, err := s.Entities.Find(ctx, claims.EntityType, claims.EntityID)
	if err != nil || entity == nil {
		return s.deny(ctx, in, claims, ErrEntityMissing.Error())
	}
	if !entity.IsActive {
		return s.deny(ctx, in, claims, ErrEntityFrozen.Error())
	}

	res := &ValidationResult{
		Valid:  true,
		Claims: claims,
		Entity: entity,
		Compat: row == nil,
	}
	if row != nil {
		res.TokenRowID = &row.PortalTokenID
		_ = s.Tokens.TouchUsage(ctx, row.PortalTokenID, now, in.IP)
	}

	reason := (*string)(nil)
	if res.Compat {
		// accepted without a tracked row; keep an audit trail of the shim
		r := "compat_untracked"
		reason = &r
	}
	s.appendLog(ctx, in, claims, true, reason)
	return res
}

func (s *TokenService) deny(ctx context.Context, in ValidateInput, claims *TokenClaims, reason string) *ValidationResult {
	s.appendLog(ctx, in, claims, false, &reason)
	return &ValidationResult{Valid: false, Reason: reason, Claims: claims}
}

func (s *TokenService) appendLog(ctx context.Context, in ValidateInput, claims *TokenClaims, granted bool, reason *string) {
	entry := &model.PortalAccessLogModel{
		PortalLogIPAddress:     in.IP,
		PortalLogUserAgent:     in.UserAgent,
		PortalLogPagePath:      in.PagePath,
		PortalLogAccessGranted: granted,
		PortalLogFailureReason: reason,
	}
	if claims != nil {
		entry.PortalLogCenterID = &claims.CenterID
		entry.PortalLogEntityType = &claims.EntityType
		entry.PortalLogEntityID = &claims.EntityID
	}
	// the access decision stands even if the audit write fails
	_ = s.Logs.Append(ctx, entry)
}

/* =========================================================
   Revoke
========================================================= */

type RevokeInput struct {
	CenterID   uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	RevokeAll  bool
	TokenID    *uuid.UUID
}

// Revoke flips matching active rows to revoked and reports how many changed.
// Calling it again for the same rows is a no-op returning zero.
func (s *TokenService) Revoke(ctx context.Context, in RevokeInput) (int64, error) {
	if !constants.IsValidEntityType(in.EntityType) {
		return 0, fmt.Errorf("unknown entity type %q", in.EntityType)
	}
	if !in.RevokeAll && in.TokenID == nil {
		return 0, errors.New("either revokeAll or tokenId must be given")
	}
	var tokenID *uuid.UUID
	if !in.RevokeAll {
		tokenID = in.TokenID
	}
	return s.Tokens.Revoke(ctx, in.CenterID, in.EntityType, in.EntityID, tokenID)
}
