// Package stripe wraps the Stripe checkout session API and webhook
// signature verification.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	EventCheckoutCompleted     = "checkout.session.completed"
	EventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	PaymentStatusPaid          = "paid"
	PaymentStatusNoPayment     = "no_payment_required"
)

var ErrWebhookSecretMissing = errors.New("stripe webhook secret not configured")

type LineItem struct {
	Name       string
	ImageURL   string
	UnitAmount int64
	Quantity   int64
}

type SessionParams struct {
	Currency       string
	CustomerEmail  string
	SuccessURL     string
	CancelURL      string
	Lines          []LineItem
	Metadata       map[string]string
	IdempotencyKey string
}

type Session struct {
	ID            string
	URL           string
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Metadata      map[string]string
}

// Paid reports whether the customer completed payment.
func (s *Session) Paid() bool {
	return s.PaymentStatus == PaymentStatusPaid || s.PaymentStatus == PaymentStatusNoPayment
}

type WebhookEvent struct {
	ID      string
	Type    string
	Session *Session
}

type Client struct {
	api           *client.API
	webhookSecret string
}

func NewClient(secretKey, webhookSecret string) *Client {
	return &Client{
		api:           client.New(secretKey, nil),
		webhookSecret: webhookSecret,
	}
}

// NewClientWithBackends points the client at custom backends (tests use an
// httptest server).
func NewClientWithBackends(secretKey, webhookSecret string, backends *stripego.Backends) *Client {
	return &Client{
		api:           client.New(secretKey, backends),
		webhookSecret: webhookSecret,
	}
}

func (c *Client) CreateSession(ctx context.Context, p *SessionParams) (*Session, error) {
	params := &stripego.CheckoutSessionParams{
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL: stripego.String(p.SuccessURL),
		CancelURL:  stripego.String(p.CancelURL),
	}
	params.Context = ctx
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripego.String(p.CustomerEmail)
	}
	for _, l := range p.Lines {
		product := &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripego.String(l.Name),
		}
		if l.ImageURL != "" {
			product.Images = stripego.StringSlice([]string{l.ImageURL})
		}
		params.LineItems = append(params.LineItems, &stripego.CheckoutSessionLineItemParams{
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripego.String(strings.ToLower(p.Currency)),
				ProductData: product,
				UnitAmount:  stripego.Int64(l.UnitAmount),
			},
			Quantity: stripego.Int64(l.Quantity),
		})
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	if p.IdempotencyKey != "" {
		params.SetIdempotencyKey(p.IdempotencyKey)
	}

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return toSession(s), nil
}

func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx

	s, err := c.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("get checkout session: %w", err)
	}
	return toSession(s), nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event.
// Session is set only for checkout.session.* events.
func (c *Client) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if c.webhookSecret == "" {
		return nil, ErrWebhookSecretMissing
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, err
	}

	out := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if strings.HasPrefix(out.Type, "checkout.session.") && event.Data != nil {
		var s stripego.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		out.Session = toSession(&s)
	}
	return out, nil
}

func toSession(s *stripego.CheckoutSession) *Session {
	return &Session{
		ID:            s.ID,
		URL:           s.URL,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Metadata:      s.Metadata,
	}
}
