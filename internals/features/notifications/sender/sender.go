package sender

import (
	"context"
	"errors"
	"fmt"
)

// SendError distinguishes failures worth retrying (provider down, rate
// limited) from terminal ones (bad address, rejected payload). Rows hit by a
// terminal error go straight to failed status.
type SendError struct {
	Err       error
	Retryable bool
}

func (e *SendError) Error() string { return e.Err.Error() }
func (e *SendError) Unwrap() error { return e.Err }

func Terminal(format string, args ...interface{}) error {
	return &SendError{Err: fmt.Errorf(format, args...), Retryable: false}
}

func Retryable(format string, args ...interface{}) error {
	return &SendError{Err: fmt.Errorf(format, args...), Retryable: true}
}

// IsRetryable reports whether a dispatch failure should re-enter the queue.
// Unknown error types are treated as retryable so a provider hiccup never
// permanently fails a row.
func IsRetryable(err error) bool {
	var se *SendError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return true
}

type EmailSender interface {
	SendEmail(ctx context.Context, toName, toAddr, subject, body string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, toPhone, message string) error
}
