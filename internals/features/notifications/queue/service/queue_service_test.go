package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bimbelku_backend/internals/features/notifications/queue/model"
	"bimbelku_backend/internals/features/notifications/sender"
)

/* =========================================================
   In-memory fakes
========================================================= */

type fakeStore struct {
	rows []*model.NotificationModel
}

func (s *fakeStore) Insert(_ context.Context, n *model.NotificationModel) error {
	cp := *n
	if cp.NotificationID == uuid.Nil {
		cp.NotificationID = uuid.New()
	}
	s.rows = append(s.rows, &cp)
	return nil
}

func (s *fakeStore) ListPendingOldest(_ context.Context, limit int) ([]model.NotificationModel, error) {
	out := make([]model.NotificationModel, 0, limit)
	for _, r := range s.rows {
		if r.NotificationStatus == model.StatusPending {
			out = append(out, *r)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *fakeStore) Claim(_ context.Context, id uuid.UUID) (bool, error) {
	r := s.get(id)
	if r == nil || r.NotificationStatus != model.StatusPending {
		return false, nil
	}
	r.NotificationStatus = model.StatusProcessing
	return true, nil
}

func (s *fakeStore) MarkSent(_ context.Context, id uuid.UUID) error {
	r := s.get(id)
	r.NotificationStatus = model.StatusSent
	r.NotificationAttemptCount++
	r.NotificationLastError = nil
	return nil
}

func (s *fakeStore) MarkRetry(_ context.Context, id uuid.UUID, attempt int, lastErr string) error {
	r := s.get(id)
	r.NotificationStatus = model.StatusPending
	r.NotificationAttemptCount = attempt
	r.NotificationLastError = &lastErr
	return nil
}

func (s *fakeStore) MarkFailed(_ context.Context, id uuid.UUID, attempt int, lastErr string) error {
	r := s.get(id)
	r.NotificationStatus = model.StatusFailed
	r.NotificationAttemptCount = attempt
	r.NotificationLastError = &lastErr
	return nil
}

func (s *fakeStore) get(id uuid.UUID) *model.NotificationModel {
	for _, r := range s.rows {
		if r.NotificationID == id {
			return r
		}
	}
	return nil
}

func (s *fakeStore) countByStatus(status string) int {
	n := 0
	for _, r := range s.rows {
		if r.NotificationStatus == status {
			n++
		}
	}
	return n
}

type fakeContacts struct{}

func (fakeContacts) Resolve(_ context.Context, _ string, id uuid.UUID) (*Contact, error) {
	email := fmt.Sprintf("%s@example.com", id)
	phone := "+6281234567890"
	return &Contact{Name: "Recipient", Email: &email, Phone: &phone, IsActive: true}, nil
}

type fakeSender struct {
	emails int
	sms    int
}

func (f *fakeSender) SendEmail(_ context.Context, _, _, _, _ string) error {
	f.emails++
	return nil
}

func (f *fakeSender) SendSMS(_ context.Context, _, _ string) error {
	f.sms++
	return nil
}

// failingEmail fails for configured recipients, identified by address prefix.
type failingEmail struct {
	sent    int
	failing map[string]error
}

func (f *failingEmail) SendEmail(_ context.Context, _, addr, _, _ string) error {
	if err, ok := f.failing[addr]; ok {
		return err
	}
	f.sent++
	return nil
}

/* =========================================================
   Tests
========================================================= */

func newTestService(store *fakeStore, email sender.EmailSender) *QueueService {
	s := &fakeSender{}
	if email == nil {
		email = s
	}
	return NewQueueService(store, fakeContacts{}, email, s)
}

func enqueueN(t *testing.T, svc *QueueService, n int, channel string) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, uuid.NewString())
	}
	res, err := svc.Enqueue(context.Background(), EnqueueInput{
		CenterID:      uuid.New(),
		RecipientType: "student",
		RecipientIDs:  ids,
		Type:          "announcement",
		Title:         "Schedule change",
		Message:       "Class moved to 10:00",
		Channel:       channel,
	})
	require.NoError(t, err)
	require.Equal(t, n, res.Queued)
	return ids
}

func TestEnqueue(t *testing.T) {
	t.Run("malformed recipient id fails that item only", func(t *testing.T) {
		store := &fakeStore{}
		svc := newTestService(store, nil)

		res, err := svc.Enqueue(context.Background(), EnqueueInput{
			CenterID:      uuid.New(),
			RecipientType: "student",
			RecipientIDs:  []string{uuid.NewString(), "not-a-uuid", uuid.NewString()},
			Type:          "reminder",
			Title:         "Fee due",
			Message:       "Please pay by Friday",
			Channel:       "email",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Queued)
		assert.Equal(t, 1, res.Failed)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "not-a-uuid")
		assert.Equal(t, 2, store.countByStatus(model.StatusPending))
	})

	t.Run("unknown recipient type is rejected outright", func(t *testing.T) {
		svc := newTestService(&fakeStore{}, nil)
		_, err := svc.Enqueue(context.Background(), EnqueueInput{
			RecipientType: "alien",
			RecipientIDs:  []string{uuid.NewString()},
			Channel:       "email",
		})
		require.Error(t, err)
	})

	t.Run("unknown channel is rejected outright", func(t *testing.T) {
		svc := newTestService(&fakeStore{}, nil)
		_, err := svc.Enqueue(context.Background(), EnqueueInput{
			RecipientType: "student",
			RecipientIDs:  []string{uuid.NewString()},
			Channel:       "carrier-pigeon",
		})
		require.Error(t, err)
	})
}

func TestProcessBatch(t *testing.T) {
	t.Run("mixed batch accounting", func(t *testing.T) {
		store := &fakeStore{}
		email := &failingEmail{failing: map[string]error{}}
		svc := newTestService(store, email)

		ids := enqueueN(t, svc, 10, "email")
		// two recipients hit a terminal sender error
		email.failing[ids[2]+"@example.com"] = sender.Terminal("mailbox does not exist")
		email.failing[ids[7]+"@example.com"] = sender.Terminal("mailbox does not exist")

		res, err := svc.ProcessBatch(context.Background(), 50)
		require.NoError(t, err)
		assert.Equal(t, 8, res.Processed)
		assert.Equal(t, 2, res.Failed)

		assert.Equal(t, 8, store.countByStatus(model.StatusSent))
		assert.Equal(t, 2, store.countByStatus(model.StatusFailed))
		assert.Equal(t, 0, store.countByStatus(model.StatusPending))
	})

	t.Run("retryable failure re-enters the queue with attempt recorded", func(t *testing.T) {
		store := &fakeStore{}
		email := &failingEmail{failing: map[string]error{}}
		svc := newTestService(store, email)

		ids := enqueueN(t, svc, 1, "email")
		email.failing[ids[0]+"@example.com"] = sender.Retryable("provider 503")

		res, err := svc.ProcessBatch(context.Background(), 50)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Processed)
		assert.Equal(t, 1, res.Failed)

		row := store.rows[0]
		assert.Equal(t, model.StatusPending, row.NotificationStatus)
		assert.Equal(t, 1, row.NotificationAttemptCount)
		require.NotNil(t, row.NotificationLastError)
		assert.Contains(t, *row.NotificationLastError, "503")
	})

	t.Run("retryable failure goes terminal after max attempts", func(t *testing.T) {
		store := &fakeStore{}
		email := &failingEmail{failing: map[string]error{}}
		svc := newTestService(store, email)

		ids := enqueueN(t, svc, 1, "email")
		email.failing[ids[0]+"@example.com"] = sender.Retryable("provider 503")

		for i := 0; i < model.MaxAttempts; i++ {
			_, err := svc.ProcessBatch(context.Background(), 50)
			require.NoError(t, err)
		}

		row := store.rows[0]
		assert.Equal(t, model.StatusFailed, row.NotificationStatus)
		assert.Equal(t, model.MaxAttempts, row.NotificationAttemptCount)
	})

	t.Run("both channel dispatches email and sms", func(t *testing.T) {
		store := &fakeStore{}
		fs := &fakeSender{}
		svc := NewQueueService(store, fakeContacts{}, fs, fs)

		enqueueN(t, svc, 1, "both")
		res, err := svc.ProcessBatch(context.Background(), 50)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Processed)
		assert.Equal(t, 1, fs.emails)
		assert.Equal(t, 1, fs.sms)
	})

	t.Run("rows already claimed elsewhere are skipped", func(t *testing.T) {
		store := &fakeStore{}
		svc := newTestService(store, nil)

		enqueueN(t, svc, 2, "email")
		// simulate a concurrent worker holding the first row
		store.rows[0].NotificationStatus = model.StatusProcessing

		pending, err := store.ListPendingOldest(context.Background(), 50)
		require.NoError(t, err)
		require.Len(t, pending, 1)

		res, err := svc.ProcessBatch(context.Background(), 50)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Processed)
		assert.Equal(t, 0, res.Failed)
	})
}
