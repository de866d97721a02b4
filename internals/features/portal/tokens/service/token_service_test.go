package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bimbelku_backend/internals/features/portal/tokens/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

/* =========================================================
   In-memory fakes
========================================================= */

type memTokenStore struct {
	rows        []*model.PortalAccessTokenModel
	lookupCalls int
}

func (s *memTokenStore) ReplaceActive(_ context.Context, row *model.PortalAccessTokenModel) (int64, error) {
	now := time.Now()
	var revoked int64
	for _, r := range s.rows {
		if r.PortalTokenCenterID == row.PortalTokenCenterID &&
			r.PortalTokenEntityType == row.PortalTokenEntityType &&
			r.PortalTokenEntityID == row.PortalTokenEntityID &&
			!r.PortalTokenIsRevoked {
			r.PortalTokenIsRevoked = true
			r.PortalTokenRevokedAt = &now
			revoked++
		}
	}
	cp := *row
	if cp.PortalTokenID == uuid.Nil {
		cp.PortalTokenID = uuid.New()
	}
	s.rows = append(s.rows, &cp)
	return revoked, nil
}

func (s *memTokenStore) FindByHash(_ context.Context, hash string) (*model.PortalAccessTokenModel, error) {
	s.lookupCalls++
	for _, r := range s.rows {
		if r.PortalTokenHash == hash {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memTokenStore) Revoke(_ context.Context, centerID uuid.UUID, entityType string, entityID uuid.UUID, tokenID *uuid.UUID) (int64, error) {
	now := time.Now()
	var count int64
	for _, r := range s.rows {
		if r.PortalTokenCenterID != centerID || r.PortalTokenEntityType != entityType || r.PortalTokenEntityID != entityID {
			continue
		}
		if tokenID != nil && r.PortalTokenID != *tokenID {
			continue
		}
		if r.PortalTokenIsRevoked {
			continue
		}
		r.PortalTokenIsRevoked = true
		r.PortalTokenRevokedAt = &now
		count++
	}
	return count, nil
}

func (s *memTokenStore) TouchUsage(_ context.Context, tokenID uuid.UUID, at time.Time, ip *string) error {
	for _, r := range s.rows {
		if r.PortalTokenID == tokenID {
			r.PortalTokenLastUsedAt = &at
			r.PortalTokenLastIP = ip
		}
	}
	return nil
}

func (s *memTokenStore) activeCount() int {
	n := 0
	for _, r := range s.rows {
		if r.IsActive(time.Now()) {
			n++
		}
	}
	return n
}

type memEntityStore struct {
	entities map[uuid.UUID]*Entity
}

func (s *memEntityStore) Find(_ context.Context, _ string, entityID uuid.UUID) (*Entity, error) {
	e, ok := s.entities[entityID]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

type memLogStore struct {
	entries []model.PortalAccessLogModel
}

func (s *memLogStore) Append(_ context.Context, entry *model.PortalAccessLogModel) error {
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *memLogStore) last() model.PortalAccessLogModel {
	return s.entries[len(s.entries)-1]
}

/* =========================================================
   Fixture
========================================================= */

type fixture struct {
	svc      *TokenService
	tokens   *memTokenStore
	entities *memEntityStore
	logs     *memLogStore
	centerID uuid.UUID
	entityID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	centerID := uuid.New()
	entityID := uuid.New()
	email := "siti@example.com"

	entities := &memEntityStore{entities: map[uuid.UUID]*Entity{
		entityID: {ID: entityID, CenterID: centerID, Name: "Siti Rahma", Email: &email, IsActive: true},
	}}
	tokens := &memTokenStore{}
	logs := &memLogStore{}

	svc := NewTokenService(tokens, entities, logs, testSecret, "https://app.bimbelku.id", true)
	return &fixture{svc: svc, tokens: tokens, entities: entities, logs: logs, centerID: centerID, entityID: entityID}
}

func (f *fixture) issue(t *testing.T, days int) *IssueResult {
	t.Helper()
	res, err := f.svc.Issue(context.Background(), IssueInput{
		CenterID:      f.centerID,
		EntityType:    "student",
		EntityID:      f.entityID,
		ExpiresInDays: days,
	})
	require.NoError(t, err)
	return res
}

/* =========================================================
   Tests
========================================================= */

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	f := newFixture(t)
	res := f.issue(t, 14)

	claims, err := f.svc.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "student", claims.EntityType)
	assert.Equal(t, f.entityID, claims.EntityID)
	assert.Equal(t, f.centerID, claims.CenterID)
	assert.Equal(t, 14*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
	assert.Equal(t, 14, res.ExpiresInDays)
	assert.Contains(t, res.PortalURL, "/portal/student?token=")
}

func TestIssueDefaultsAndGuards(t *testing.T) {
	t.Run("expiry defaults to 30 days", func(t *testing.T) {
		f := newFixture(t)
		res := f.issue(t, 0)
		assert.Equal(t, 30, res.ExpiresInDays)
	})

	t.Run("short secret is a configuration error", func(t *testing.T) {
		f := newFixture(t)
		f.svc.Secret = "too-short"
		_, err := f.svc.Issue(context.Background(), IssueInput{
			CenterID: f.centerID, EntityType: "student", EntityID: f.entityID,
		})
		require.ErrorIs(t, err, ErrShortSecret)
	})

	t.Run("inactive entity cannot be issued a token", func(t *testing.T) {
		f := newFixture(t)
		f.entities.entities[f.entityID].IsActive = false
		_, err := f.svc.Issue(context.Background(), IssueInput{
			CenterID: f.centerID, EntityType: "student", EntityID: f.entityID,
		})
		require.ErrorIs(t, err, ErrEntityFrozen)
	})

	t.Run("entity from another center is invisible", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Issue(context.Background(), IssueInput{
			CenterID: uuid.New(), EntityType: "student", EntityID: f.entityID,
		})
		require.ErrorIs(t, err, ErrEntityMissing)
	})
}

func TestReissueRevokesPrior(t *testing.T) {
	f := newFixture(t)

	first := f.issue(t, 30)
	assert.Equal(t, int64(0), first.RevokedPrior)
	assert.Equal(t, 1, f.tokens.activeCount())

	second := f.issue(t, 30)
	assert.Equal(t, int64(1), second.RevokedPrior)
	assert.Equal(t, 1, f.tokens.activeCount())

	res := f.svc.Validate(context.Background(), ValidateInput{Token: first.Token})
	assert.False(t, res.Valid)
	assert.Equal(t, "Token revoked", res.Reason)
}

func TestValidate(t *testing.T) {
	t.Run("fresh token is valid and usage is touched", func(t *testing.T) {
		f := newFixture(t)
		issued := f.issue(t, 30)
		ip := "203.0.113.7"

		res := f.svc.Validate(context.Background(), ValidateInput{Token: issued.Token, IP: &ip})
		require.True(t, res.Valid)
		assert.Equal(t, "Siti Rahma", res.Entity.Name)
		assert.False(t, res.Compat)
		assert.WithinDuration(t, issued.ExpiresAt, res.Claims.ExpiresAt, time.Second)

		require.NotNil(t, f.tokens.rows[0].PortalTokenLastUsedAt)
		require.NotNil(t, f.tokens.rows[0].PortalTokenLastIP)
		assert.Equal(t, ip, *f.tokens.rows[0].PortalTokenLastIP)

		last := f.logs.last()
		assert.True(t, last.PortalLogAccessGranted)
		assert.Nil(t, last.PortalLogFailureReason)
	})

	t.Run("revoked row rejects even a well-signed token", func(t *testing.T) {
		f := newFixture(t)
		issued := f.issue(t, 30)
		_, err := f.svc.Revoke(context.Background(), RevokeInput{
			CenterID: f.centerID, EntityType: "student", EntityID: f.entityID, RevokeAll: true,
		})
		require.NoError(t, err)

		res := f.svc.Validate(context.Background(), ValidateInput{Token: issued.Token})
		assert.False(t, res.Valid)
		assert.Equal(t, "Token revoked", res.Reason)
		require.NotNil(t, f.logs.last().PortalLogFailureReason)
		assert.Equal(t, "Token revoked", *f.logs.last().PortalLogFailureReason)
	})

	t.Run("expired token is rejected before any storage lookup", func(t *testing.T) {
		f := newFixture(t)
		f.svc.Now = func() time.Time { return time.Now().Add(-40 * 24 * time.Hour) }
		issued := f.issue(t, 30)
		f.svc.Now = time.Now

		before := f.tokens.lookupCalls
		res := f.svc.Validate(context.Background(), ValidateInput{Token: issued.Token})
		assert.False(t, res.Valid)
		assert.Contains(t, strings.ToLower(res.Reason), "expired")
		assert.Equal(t, before, f.tokens.lookupCalls)
	})

	t.Run("clock advanced past expiry invalidates a previously valid token", func(t *testing.T) {
		f := newFixture(t)
		issued := f.issue(t, 30)

		res := f.svc.Validate(context.Background(), ValidateInput{Token: issued.Token})
		require.True(t, res.Valid)
		assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), res.Claims.ExpiresAt, time.Minute)

		f.svc.Now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
		res = f.svc.Validate(context.Background(), ValidateInput{Token: issued.Token})
		assert.False(t, res.Valid)
		assert.Contains(t, strings.ToLower(res.Reason), "expired")
	})

	t.Run("malformed token is rejected cheaply", func(t *testing.T) {
		f := newFixture(t)
		for _, tok := range []string{"", "abc", "a.b", "a b c.d.e", "!!.!!.!!"} {
			res := f.svc.Validate(context.Background(), ValidateInput{Token: tok})
			assert.False(t, res.Valid, "token %q", tok)
			assert.Equal(t, "Malformed token", res.Reason)
		}
		assert.Equal(t, 0, f.tokens.lookupCalls)
	})

	t.Run("tampered signature is rejected", func(t *testing.T) {
		f := newFixture(t)
		issued := f.issue(t, 30)
		tampered := issued.Token[:len(issued.Token)-4] + "AAAA"

		res := f.svc.Validate(context.Background(), ValidateInput{Token: tampered})
		assert.False(t, res.Valid)
	})

	t.Run("entity type mismatch is rejected", func(t *testing.T) {
		f := newFixture(t)
		issued := f.issue(t, 30)
		res := f.svc.Validate(context.Background(), ValidateInput{
			Token: issued.Token, ExpectedEntityType: "teacher",
		})
		assert.False(t, res.Valid)
		assert.Equal(t, "Token type mismatch", res.Reason)
	})

	t.Run("inactive entity is rejected after issuance", func(t *testing.T) {
		f := newFixture(t)
		issued := f.issue(t, 30)
		f.entities.entities[f.entityID].IsActive = false

		res := f.svc.Validate(context.Background(), ValidateInput{Token: issued.Token})
		assert.False(t, res.Valid)
		assert.Equal(t, "Account is inactive", res.Reason)
	})

	t.Run("every attempt appends one audit row", func(t *testing.T) {
		f := newFixture(t)
		issued := f.issue(t, 30)

		f.svc.Validate(context.Background(), ValidateInput{Token: issued.Token})
		f.svc.Validate(context.Background(), ValidateInput{Token: "garbage"})
		f.svc.Validate(context.Background(), ValidateInput{Token: issued.Token, ExpectedEntityType: "parent"})

		assert.Len(t, f.logs.entries, 3)
	})
}

func TestCompatUntrackedTokens(t *testing.T) {
	// a well-signed token whose row was never stored (issued before tracking)
	forgeUntracked := func(f *fixture) string {
		issued := f.issue(t, 30)
		f.tokens.rows = nil
		return issued.Token
	}

	t.Run("fail-open acceptance is audited", func(t *testing.T) {
		f := newFixture(t)
		token := forgeUntracked(f)

		res := f.svc.Validate(context.Background(), ValidateInput{Token: token})
		require.True(t, res.Valid)
		assert.True(t, res.Compat)

		last := f.logs.last()
		assert.True(t, last.PortalLogAccessGranted)
		require.NotNil(t, last.PortalLogFailureReason)
		assert.Equal(t, "compat_untracked", *last.PortalLogFailureReason)
	})

	t.Run("disabled shim rejects untracked tokens", func(t *testing.T) {
		f := newFixture(t)
		f.svc.CompatUntracked = false
		token := forgeUntracked(f)

		res := f.svc.Validate(context.Background(), ValidateInput{Token: token})
		assert.False(t, res.Valid)
		assert.Equal(t, "Token not recognized", res.Reason)
	})
}

func TestRevokeIdempotent(t *testing.T) {
	f := newFixture(t)
	f.issue(t, 30)

	in := RevokeInput{CenterID: f.centerID, EntityType: "student", EntityID: f.entityID, RevokeAll: true}

	count, err := f.svc.Revoke(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = f.svc.Revoke(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRevokeSpecificToken(t *testing.T) {
	f := newFixture(t)
	f.issue(t, 30)
	rowID := f.tokens.rows[0].PortalTokenID

	count, err := f.svc.Revoke(context.Background(), RevokeInput{
		CenterID: f.centerID, EntityType: "student", EntityID: f.entityID, TokenID: &rowID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = f.svc.Revoke(context.Background(), RevokeInput{
		CenterID: f.centerID, EntityType: "student", EntityID: f.entityID,
	})
	require.Error(t, err, "neither revokeAll nor tokenId given")
}

func TestHashToken(t *testing.T) {
	a := HashToken("header.payload.sig")
	b := HashToken("header.payload.sig")
	c := HashToken("header.payload.other")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
