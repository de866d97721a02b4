package service

import (
	"errors"
	"fmt"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

/* =========================================================
   Midtrans Clients
========================================================= */

var (
	SnapClient snap.Client
	CoreClient coreapi.Client
)

// InitMidtrans harus dipanggil saat bootstrap app.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
	CoreClient.New(serverKey, env)
}

/* =========================================================
   Subscription fetch
========================================================= */

// SubscriptionInfo is the narrow slice of the gateway's subscription payload
// the sync path cares about.
type SubscriptionInfo struct {
	ID              string
	Name            string
	Status          string
	NextExecutionAt *time.Time
}

type SubscriptionFetcher interface {
	FetchSubscription(subscriptionID string) (*SubscriptionInfo, error)
}

type midtransFetcher struct{}

func NewMidtransFetcher() SubscriptionFetcher {
	return midtransFetcher{}
}

func (midtransFetcher) FetchSubscription(subscriptionID string) (*SubscriptionInfo, error) {
	resp, midErr := CoreClient.GetSubscription(subscriptionID)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans get subscription: %w", midErr)
	}
	info := &SubscriptionInfo{
		ID:     resp.ID,
		Name:   resp.Name,
		Status: resp.Status,
	}
	if t := parseMidtransTime(resp.Schedule.NextExecutionAt); t != nil {
		info.NextExecutionAt = t
	}
	return info, nil
}

/* =========================================================
   Snap token (one-off invoices)
========================================================= */

type InvoiceInput struct {
	OrderID       string
	AmountIDR     int64
	Description   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// GenerateInvoiceSnapToken creates a one-off Snap transaction for manual
// invoices (setup fees, plan top-ups). Recurring charges stay on the
// gateway's subscription schedule and never go through here.
func GenerateInvoiceSnapToken(in InvoiceInput) (string, string, error) {
	if in.AmountIDR <= 0 {
		return "", "", errors.New("invalid invoice amount")
	}
	if in.OrderID == "" {
		return "", "", errors.New("order id is required")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  in.OrderID,
			GrossAmt: in.AmountIDR,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: in.CustomerName,
			Email: in.CustomerEmail,
			Phone: in.CustomerPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       in.OrderID,
				Price:    in.AmountIDR,
				Qty:      1,
				Name:     truncate(defaultString(in.Description, "Subscription invoice"), 50),
				Category: "SUBSCRIPTION",
			},
		},
	}
	req.CreditCard = &snap.CreditCardDetails{Secure: true}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

var midtransTimeLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseMidtransTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range midtransTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
