// Package square charges a card nonce tokenized by the Web Payments SDK in
// the browser through the Square Payments API.
package square

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sq "github.com/square/square-go-sdk"
	sqclient "github.com/square/square-go-sdk/client"
	"github.com/square/square-go-sdk/core"
	"github.com/square/square-go-sdk/option"
)

type Config struct {
	AccessToken string
	LocationID  string
	BaseURL     string
	Timeout     time.Duration
}

type Client struct {
	cfg Config
	api *sqclient.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	opts := []option.RequestOption{
		option.WithToken(cfg.AccessToken),
		option.WithHTTPClient(&http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}
	return &Client{
		cfg: cfg,
		api: sqclient.NewClient(opts...),
	}
}

// Configured reports whether credentials were supplied.
func (c *Client) Configured() bool {
	return c != nil && c.cfg.AccessToken != "" && c.cfg.LocationID != ""
}

type PaymentRequest struct {
	SourceID       string
	AmountPence    int64
	Currency       string
	IdempotencyKey string
	BuyerEmail     string
	ReferenceID    string
	Note           string
}

type Payment struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ReceiptURL string `json:"receipt_url"`
}

// APIError is the first error detail Square returned.
type APIError struct {
	StatusCode int
	Category   string
	Code       string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("square: %s (%d)", e.Code, e.StatusCode)
}

type errorBody struct {
	Errors []struct {
		Category string `json:"category"`
		Code     string `json:"code"`
		Detail   string `json:"detail"`
	} `json:"errors"`
}

func (c *Client) CreatePayment(ctx context.Context, req *PaymentRequest) (*Payment, error) {
	currency := sq.Currency(strings.ToUpper(req.Currency))
	amount := req.AmountPence
	body := &sq.CreatePaymentRequest{
		SourceID:          req.SourceID,
		IdempotencyKey:    req.IdempotencyKey,
		AmountMoney:       &sq.Money{Amount: &amount, Currency: &currency},
		LocationID:        optional(c.cfg.LocationID),
		BuyerEmailAddress: optional(req.BuyerEmail),
		ReferenceID:       optional(req.ReferenceID),
		Note:              optional(req.Note),
	}

	resp, err := c.api.Payments.Create(ctx, body)
	if err != nil {
		return nil, fromSDKError(err)
	}
	if len(resp.Errors) > 0 {
		first := resp.Errors[0]
		apiErr := &APIError{StatusCode: http.StatusOK, Category: string(first.Category), Code: string(first.Code), Detail: "Payment failed"}
		if first.Detail != nil && *first.Detail != "" {
			apiErr.Detail = *first.Detail
		}
		return nil, apiErr
	}
	if resp.Payment == nil || resp.Payment.ID == nil {
		return nil, &APIError{StatusCode: http.StatusOK, Code: "MISSING_PAYMENT", Detail: "Payment failed"}
	}

	p := &Payment{ID: *resp.Payment.ID}
	if resp.Payment.Status != nil {
		p.Status = *resp.Payment.Status
	}
	if resp.Payment.ReceiptURL != nil {
		p.ReceiptURL = *resp.Payment.ReceiptURL
	}
	return p, nil
}

// fromSDKError turns a non-2xx SDK error into an APIError carrying the first
// detail of the Square error body. Transport errors pass through wrapped.
func fromSDKError(err error) error {
	var sdkErr *core.APIError
	if !errors.As(err, &sdkErr) {
		return fmt.Errorf("square request: %w", err)
	}

	apiErr := &APIError{StatusCode: sdkErr.StatusCode, Code: "INVALID_RESPONSE", Detail: "Payment failed"}
	raw := sdkErr.Error()
	if inner := errors.Unwrap(sdkErr); inner != nil {
		raw = inner.Error()
	}
	start := strings.Index(raw, "{")
	if start < 0 {
		return apiErr
	}
	var parsed errorBody
	if json.Unmarshal([]byte(raw[start:]), &parsed) != nil || len(parsed.Errors) == 0 {
		return apiErr
	}
	first := parsed.Errors[0]
	apiErr.Category, apiErr.Code = first.Category, first.Code
	if first.Detail != "" {
		apiErr.Detail = first.Detail
	}
	return apiErr
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
