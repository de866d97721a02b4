package sender

import (
	"context"
	"log"
)

// consoleSender logs instead of dispatching. Used in development when no
// provider keys are configured.
type consoleSender struct{}

var (
	_ EmailSender = consoleSender{}
	_ SMSSender   = consoleSender{}
)

func NewConsoleSender() consoleSender {
	return consoleSender{}
}

func (consoleSender) SendEmail(_ context.Context, toName, toAddr, subject, body string) error {
	log.Printf("📧 [email] to=%s <%s> subject=%q\n%s", toName, toAddr, subject, body)
	return nil
}

func (consoleSender) SendSMS(_ context.Context, toPhone, message string) error {
	log.Printf("📱 [sms] to=%s message=%q", toPhone, message)
	return nil
}
