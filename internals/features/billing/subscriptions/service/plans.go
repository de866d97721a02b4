package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	studentModel "bimbelku_backend/internals/features/school/students/model"
	centerModel "bimbelku_backend/internals/features/tenants/centers/model"
	userModel "bimbelku_backend/internals/features/users/user/model"
)

/* =========================================================
   Plan tiers & limits
========================================================= */

const (
	TierFree    = "free"
	TierBasic   = "basic"
	TierPremium = "premium"
)

type TierLimits struct {
	MaxStaff    int
	MaxStudents int
}

var tierLimits = map[string]TierLimits{
	TierFree:    {MaxStaff: 2, MaxStudents: 30},
	TierBasic:   {MaxStaff: 10, MaxStudents: 200},
	TierPremium: {MaxStaff: 50, MaxStudents: 2000},
}

func LimitsForTier(tier string) TierLimits {
	if l, ok := tierLimits[tier]; ok {
		return l
	}
	return tierLimits[TierFree]
}

func IsValidTier(tier string) bool {
	_, ok := tierLimits[tier]
	return ok
}

/* =========================================================
   Plan ref -> tier mapping
========================================================= */

// planRefToTier maps the subscription plan reference we register at the
// payment gateway to our internal tier. Substring matching on the product
// name is the documented fallback for refs created before this table
// existed; it stays in place until those legacy subscriptions roll over.
var planRefToTier = map[string]string{
	"bimbelku-basic-monthly":   TierBasic,
	"bimbelku-basic-yearly":    TierBasic,
	"bimbelku-premium-monthly": TierPremium,
	"bimbelku-premium-yearly":  TierPremium,
}

func TierFromPlanRef(planRef, productName string) string {
	if tier, ok := planRefToTier[planRef]; ok {
		return tier
	}
	name := strings.ToLower(productName)
	switch {
	case strings.Contains(name, "premium"):
		return TierPremium
	case strings.Contains(name, "basic"):
		return TierBasic
	default:
		return TierFree
	}
}

/* =========================================================
   Gateway status -> internal status
========================================================= */

const (
	StatusActive   = "active"
	StatusPastDue  = "past_due"
	StatusCanceled = "canceled"
	StatusInactive = "inactive"
)

var gatewayStatusToInternal = map[string]string{
	"active":    StatusActive,
	"pending":   StatusPastDue,
	"suspended": StatusPastDue,
	"expired":   StatusCanceled,
	"inactive":  StatusInactive,
	"disabled":  StatusCanceled,
}

// InternalStatus maps a gateway subscription status onto our enum.
// Anything unrecognized is treated as inactive.
func InternalStatus(gatewayStatus string) string {
	if s, ok := gatewayStatusToInternal[strings.ToLower(gatewayStatus)]; ok {
		return s
	}
	return StatusInactive
}

/* =========================================================
   Capacity checks
========================================================= */

// CheckStaffCeiling is the pure core of the downgrade validation: given the
// current active staff count and a target tier, it rejects when staff would
// exceed the target ceiling, naming how many must be deactivated first.
func CheckStaffCeiling(activeStaff int, targetTier string) error {
	limits := LimitsForTier(targetTier)
	if activeStaff <= limits.MaxStaff {
		return nil
	}
	excess := activeStaff - limits.MaxStaff
	return fmt.Errorf(
		"cannot downgrade to %s: %d active staff exceed the tier limit of %d, deactivate %d staff member(s) first",
		targetTier, activeStaff, limits.MaxStaff, excess,
	)
}

func CountActiveStaff(ctx context.Context, db *gorm.DB, centerID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&userModel.UserModel{}).
		Where("user_center_id = ? AND user_is_active = TRUE AND user_role IN ?", centerID, constants.StaffRoles).
		Count(&count).Error
	return count, err
}

func CountActiveStudents(ctx context.Context, db *gorm.DB, centerID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&studentModel.StudentModel{}).
		Where("student_center_id = ? AND student_is_active = TRUE", centerID).
		Count(&count).Error
	return count, err
}

// EnsureStaffCapacity rejects staff creation when the center already sits at
// its tier's staff ceiling.
func EnsureStaffCapacity(ctx context.Context, db *gorm.DB, centerID uuid.UUID) error {
	center, err := centerModel.FindCenterByID(db.WithContext(ctx), centerID)
	if err != nil {
		return err
	}
	limits := LimitsForTier(center.CenterSubscriptionTier)
	count, err := CountActiveStaff(ctx, db, centerID)
	if err != nil {
		return err
	}
	if count >= int64(limits.MaxStaff) {
		return fmt.Errorf("staff limit reached for the %s tier (%d), upgrade to add more staff",
			center.CenterSubscriptionTier, limits.MaxStaff)
	}
	return nil
}

// EnsureStudentCapacity rejects student creation when the center already sits
// at its tier's student ceiling.
func EnsureStudentCapacity(ctx context.Context, db *gorm.DB, centerID uuid.UUID) error {
	center, err := centerModel.FindCenterByID(db.WithContext(ctx), centerID)
	if err != nil {
		return err
	}
	limits := LimitsForTier(center.CenterSubscriptionTier)
	count, err := CountActiveStudents(ctx, db, centerID)
	if err != nil {
		return err
	}
	if count >= int64(limits.MaxStudents) {
		return fmt.Errorf("student limit reached for the %s tier (%d), upgrade to add more students",
			center.CenterSubscriptionTier, limits.MaxStudents)
	}
	return nil
}

// ValidateDowngrade pre-validates a tier downgrade against the current
// active staff count. Nothing is deactivated automatically.
func ValidateDowngrade(ctx context.Context, db *gorm.DB, centerID uuid.UUID, targetTier string) error {
	if !IsValidTier(targetTier) {
		return fmt.Errorf("unknown tier %q", targetTier)
	}
	count, err := CountActiveStaff(ctx, db, centerID)
	if err != nil {
		return err
	}
	return CheckStaffCeiling(int(count), targetTier)
}
