package sender

import (
	"context"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type sendgridSender struct {
	key  string
	from *sgmail.Email
}

var _ EmailSender = (*sendgridSender)(nil)

func NewSendgridSender(apiKey, fromName, fromAddr string) EmailSender {
	return &sendgridSender{
		key:  apiKey,
		from: sgmail.NewEmail(fromName, fromAddr),
	}
}

func (s *sendgridSender) SendEmail(ctx context.Context, toName, toAddr, subject, body string) error {
	if toAddr == "" {
		return Terminal("recipient has no email address")
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)

	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail(toName, toAddr))
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", body))

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return Retryable("sendgrid request: %v", err)
	}
	switch {
	case res.StatusCode < http.StatusBadRequest:
		return nil
	case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= http.StatusInternalServerError:
		return Retryable("sendgrid status %d: %s", res.StatusCode, res.Body)
	default:
		return Terminal("sendgrid status %d: %s", res.StatusCode, res.Body)
	}
}
