package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"bimbelku_backend/internals/constants"
	"bimbelku_backend/internals/features/notifications/queue/model"
	"bimbelku_backend/internals/features/notifications/sender"
)

/* =========================================================
   Store contracts
========================================================= */

type Store interface {
	Insert(ctx context.Context, n *model.NotificationModel) error
	// ListPendingOldest returns up to limit pending rows, oldest first.
	ListPendingOldest(ctx context.Context, limit int) ([]model.NotificationModel, error)
	// Claim flips one row pending -> processing and reports whether this
	// caller won the row. Concurrent workers rely on this being atomic.
	Claim(ctx context.Context, id uuid.UUID) (bool, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	// MarkRetry puts a row back to pending with the attempt recorded.
	MarkRetry(ctx context.Context, id uuid.UUID, attempt int, lastErr string) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempt int, lastErr string) error
}

// Contact is the slice of a recipient row dispatch needs.
type Contact struct {
	Name     string
	Email    *string
	Phone    *string
	IsActive bool
}

type ContactResolver interface {
	Resolve(ctx context.Context, recipientType string, recipientID uuid.UUID) (*Contact, error)
}

/* =========================================================
   Queue service
========================================================= */

type QueueService struct {
	Store    Store
	Contacts ContactResolver
	Email    sender.EmailSender
	SMS      sender.SMSSender
	Now      func() time.Time
}

func NewQueueService(store Store, contacts ContactResolver, email sender.EmailSender, sms sender.SMSSender) *QueueService {
	return &QueueService{
		Store:    store,
		Contacts: contacts,
		Email:    email,
		SMS:      sms,
		Now:      time.Now,
	}
}

type EnqueueInput struct {
	CenterID      uuid.UUID
	RecipientType string
	RecipientIDs  []string
	Type          string
	Title         string
	Message       string
	Channel       string
}

type EnqueueResult struct {
	Queued int      `json:"queued"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

// Enqueue inserts one pending row per recipient. Malformed recipient ids are
// counted as failed without aborting the rest of the batch.
func (s *QueueService) Enqueue(ctx context.Context, in EnqueueInput) (*EnqueueResult, error) {
	if !constants.IsValidEntityType(in.RecipientType) {
		return nil, fmt.Errorf("unknown recipient type %q", in.RecipientType)
	}
	if !constants.IsValidChannel(in.Channel) {
		return nil, fmt.Errorf("unknown channel %q", in.Channel)
	}
	if len(in.RecipientIDs) == 0 {
		return nil, fmt.Errorf("no recipients given")
	}

	res := &EnqueueResult{}
	for _, raw := range in.RecipientIDs {
		recipientID, err := uuid.Parse(raw)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("invalid recipient id %q", raw))
			continue
		}
		row := &model.NotificationModel{
			NotificationCenterID:      in.CenterID,
			NotificationRecipientType: in.RecipientType,
			NotificationRecipientID:   recipientID,
			NotificationType:          in.Type,
			NotificationTitle:         in.Title,
			NotificationMessage:       in.Message,
			NotificationChannel:       in.Channel,
			NotificationStatus:        model.StatusPending,
		}
		if err := s.Store.Insert(ctx, row); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("queue %s: %v", raw, err))
			continue
		}
		res.Queued++
	}
	return res, nil
}

type BatchResult struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// ProcessBatch drains up to limit pending rows, oldest first. Each row is
// claimed individually so concurrent invocations never double-send. A
// retryable sender failure re-queues the row until attempts run out; terminal
// failures go straight to failed.
func (s *QueueService) ProcessBatch(ctx context.Context, limit int) (*BatchResult, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.Store.ListPendingOldest(ctx, limit)
	if err != nil {
		return nil, err
	}

	res := &BatchResult{}
	for i := range rows {
		row := &rows[i]

		claimed, err := s.Store.Claim(ctx, row.NotificationID)
		if err != nil {
			log.Printf("[ERROR] claim notification %s: %v", row.NotificationID, err)
			res.Failed++
			continue
		}
		if !claimed {
			// another worker got it first
			continue
		}

		attempt := row.NotificationAttemptCount + 1
		if err := s.dispatch(ctx, row); err != nil {
			res.Failed++
			if sender.IsRetryable(err) && attempt < model.MaxAttempts {
				if mErr := s.Store.MarkRetry(ctx, row.NotificationID, attempt, err.Error()); mErr != nil {
					log.Printf("[ERROR] requeue notification %s: %v", row.NotificationID, mErr)
				}
			} else {
				if mErr := s.Store.MarkFailed(ctx, row.NotificationID, attempt, err.Error()); mErr != nil {
					log.Printf("[ERROR] fail notification %s: %v", row.NotificationID, mErr)
				}
			}
			continue
		}

		if err := s.Store.MarkSent(ctx, row.NotificationID); err != nil {
			log.Printf("[ERROR] mark sent %s: %v", row.NotificationID, err)
		}
		res.Processed++
	}
	return res, nil
}

func (s *QueueService) dispatch(ctx context.Context, row *model.NotificationModel) error {
	contact, err := s.Contacts.Resolve(ctx, row.NotificationRecipientType, row.NotificationRecipientID)
	if err != nil {
		return sender.Terminal("resolve recipient %s/%s: %v",
			row.NotificationRecipientType, row.NotificationRecipientID, err)
	}
	if !contact.IsActive {
		return sender.Terminal("recipient %s is inactive", row.NotificationRecipientID)
	}

	switch row.NotificationChannel {
	case constants.ChannelEmail:
		return s.sendEmail(ctx, contact, row)
	case constants.ChannelSMS:
		return s.sendSMS(ctx, contact, row)
	case constants.ChannelBoth:
		if err := s.sendEmail(ctx, contact, row); err != nil {
			return err
		}
		return s.sendSMS(ctx, contact, row)
	default:
		return sender.Terminal("unknown channel %q", row.NotificationChannel)
	}
}

func (s *QueueService) sendEmail(ctx context.Context, contact *Contact, row *model.NotificationModel) error {
	addr := ""
	if contact.Email != nil {
		addr = *contact.Email
	}
	return s.Email.SendEmail(ctx, contact.Name, addr, row.NotificationTitle, row.NotificationMessage)
}

func (s *QueueService) sendSMS(ctx context.Context, contact *Contact, row *model.NotificationModel) error {
	phone := ""
	if contact.Phone != nil {
		phone = *contact.Phone
	}
	return s.SMS.SendSMS(ctx, phone, row.NotificationMessage)
}
