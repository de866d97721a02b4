package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFromPlanRef(t *testing.T) {
	t.Run("known plan refs map directly", func(t *testing.T) {
		assert.Equal(t, TierBasic, TierFromPlanRef("bimbelku-basic-monthly", ""))
		assert.Equal(t, TierPremium, TierFromPlanRef("bimbelku-premium-yearly", ""))
	})

	t.Run("unknown ref falls back to product name substring", func(t *testing.T) {
		assert.Equal(t, TierPremium, TierFromPlanRef("legacy-001", "Bimbelku Premium (old)"))
		assert.Equal(t, TierBasic, TierFromPlanRef("legacy-002", "basic plan 2023"))
	})

	t.Run("nothing recognizable means free", func(t *testing.T) {
		assert.Equal(t, TierFree, TierFromPlanRef("mystery", "some product"))
	})
}

func TestInternalStatus(t *testing.T) {
	cases := map[string]string{
		"active":    StatusActive,
		"ACTIVE":    StatusActive,
		"pending":   StatusPastDue,
		"suspended": StatusPastDue,
		"expired":   StatusCanceled,
		"disabled":  StatusCanceled,
	}
	for gateway, want := range cases {
		assert.Equal(t, want, InternalStatus(gateway), "gateway status %q", gateway)
	}

	t.Run("unmapped statuses default to inactive", func(t *testing.T) {
		assert.Equal(t, StatusInactive, InternalStatus("weird_new_state"))
		assert.Equal(t, StatusInactive, InternalStatus(""))
	})
}

func TestLimitsForTier(t *testing.T) {
	assert.Equal(t, 10, LimitsForTier(TierBasic).MaxStaff)
	assert.Equal(t, 2000, LimitsForTier(TierPremium).MaxStudents)

	t.Run("unknown tier gets free limits", func(t *testing.T) {
		assert.Equal(t, LimitsForTier(TierFree), LimitsForTier("enterprise"))
	})
}

func TestCheckStaffCeiling(t *testing.T) {
	t.Run("within ceiling passes", func(t *testing.T) {
		require.NoError(t, CheckStaffCeiling(2, TierFree))
		require.NoError(t, CheckStaffCeiling(10, TierBasic))
	})

	t.Run("excess staff names the count to deactivate", func(t *testing.T) {
		err := CheckStaffCeiling(5, TierFree)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deactivate 3 staff member(s)")
		assert.Contains(t, err.Error(), "free")
	})
}

func TestParseMidtransTime(t *testing.T) {
	require.Nil(t, parseMidtransTime(""))
	require.Nil(t, parseMidtransTime("not a time"))

	got := parseMidtransTime("2026-10-01 10:30:00")
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, 30, got.Minute())
}
