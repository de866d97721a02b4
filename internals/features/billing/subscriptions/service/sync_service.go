package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	centerModel "bimbelku_backend/internals/features/tenants/centers/model"
)

var ErrNoSubscription = errors.New("center has no linked subscription")

/* =========================================================
   Subscription sync
========================================================= */

type SyncService struct {
	DB      *gorm.DB
	Fetcher SubscriptionFetcher
}

func NewSyncService(db *gorm.DB, fetcher SubscriptionFetcher) *SyncService {
	return &SyncService{DB: db, Fetcher: fetcher}
}

// SyncCenterSubscription pulls the center's subscription from the payment
// gateway and persists tier, status, period end and the cancel flag onto the
// center row. A center without a linked subscription id is reported, not
// silently reset.
func (s *SyncService) SyncCenterSubscription(ctx context.Context, centerID uuid.UUID) (*centerModel.CenterModel, error) {
	center, err := centerModel.FindCenterByID(s.DB.WithContext(ctx), centerID)
	if err != nil {
		return nil, err
	}
	if center.CenterSubscriptionID == nil || *center.CenterSubscriptionID == "" {
		return nil, ErrNoSubscription
	}

	sub, err := s.Fetcher.FetchSubscription(*center.CenterSubscriptionID)
	if err != nil {
		log.Printf("[ERROR] fetch subscription %s: %v", *center.CenterSubscriptionID, err)
		return nil, err
	}

	tier := TierFromPlanRef(sub.Name, sub.Name)
	status := InternalStatus(sub.Status)

	updates := map[string]interface{}{
		"center_subscription_tier":    tier,
		"center_subscription_status":  status,
		"center_subscription_ends_at": sub.NextExecutionAt,
		"center_cancel_at_period_end": status == StatusCanceled,
	}
	if err := s.DB.WithContext(ctx).
		Model(&centerModel.CenterModel{}).
		Where("center_id = ?", center.CenterID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	center.CenterSubscriptionTier = tier
	center.CenterSubscriptionStatus = status
	center.CenterSubscriptionEndsAt = sub.NextExecutionAt
	center.CenterCancelAtPeriodEnd = status == StatusCanceled
	return center, nil
}

// ApplyGatewayStatus handles the webhook path: a status push for a known
// subscription id updates the matching center's status only.
func (s *SyncService) ApplyGatewayStatus(ctx context.Context, subscriptionID, gatewayStatus string) error {
	if subscriptionID == "" {
		return errors.New("missing subscription id")
	}
	status := InternalStatus(gatewayStatus)
	res := s.DB.WithContext(ctx).
		Model(&centerModel.CenterModel{}).
		Where("center_subscription_id = ?", subscriptionID).
		Update("center_subscription_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
