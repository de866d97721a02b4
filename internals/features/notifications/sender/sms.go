package sender

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/sendgrid/rest"
)

// smsSender posts to a generic HTTP SMS gateway (the kind local aggregators
// expose: bearer key, JSON body with sender id, msisdn and text).
type smsSender struct {
	gatewayURL string
	apiKey     string
	senderID   string
}

var _ SMSSender = (*smsSender)(nil)

func NewGatewaySMSSender(gatewayURL, apiKey, senderID string) SMSSender {
	return &smsSender{gatewayURL: gatewayURL, apiKey: apiKey, senderID: senderID}
}

func (s *smsSender) SendSMS(ctx context.Context, toPhone, message string) error {
	if toPhone == "" {
		return Terminal("recipient has no phone number")
	}
	if s.gatewayURL == "" {
		return Terminal("sms gateway is not configured")
	}

	body, err := sonic.Marshal(map[string]string{
		"sender":  s.senderID,
		"to":      toPhone,
		"message": message,
	})
	if err != nil {
		return Terminal("encode sms payload: %v", err)
	}

	req := rest.Request{
		Method:  rest.Post,
		BaseURL: s.gatewayURL,
		Headers: map[string]string{
			"Authorization": "Bearer " + s.apiKey,
			"Content-Type":  "application/json",
		},
		Body: body,
	}

	res, err := rest.SendWithContext(ctx, req)
	if err != nil {
		return Retryable("sms gateway request: %v", err)
	}
	switch {
	case res.StatusCode < http.StatusBadRequest:
		return nil
	case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= http.StatusInternalServerError:
		return Retryable("sms gateway status %d: %s", res.StatusCode, res.Body)
	default:
		return Terminal("sms gateway status %d: %s", res.StatusCode, res.Body)
	}
}
