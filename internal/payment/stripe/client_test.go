package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "whsec_test"

func sign(payload []byte, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestParseWebhook_CheckoutCompleted(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_1",
			"object": "checkout.session",
			"payment_status": "paid",
			"status": "complete",
			"amount_total": 3390,
			"metadata": {"order_id": "o-1"}
		}}
	}`)

	c := NewClient("sk_test", secret)
	ev, err := c.ParseWebhook(payload, sign(payload, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, EventCheckoutCompleted, ev.Type)
	require.NotNil(t, ev.Session)
	assert.Equal(t, "cs_test_1", ev.Session.ID)
	assert.True(t, ev.Session.Paid())
	assert.Equal(t, "o-1", ev.Session.Metadata["order_id"])
}

func TestParseWebhook_RejectsBadSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed"}`)
	c := NewClient("sk_test", secret)

	_, err := c.ParseWebhook(payload, "t=1,v1=deadbeef")
	assert.Error(t, err)

	_, err = NewClient("sk_test", "").ParseWebhook(payload, sign(payload, time.Now()))
	assert.ErrorIs(t, err, ErrWebhookSecretMissing)
}

func TestParseWebhook_OtherEventsHaveNoSession(t *testing.T) {
	payload := []byte(`{"id":"evt_2","object":"event","type":"charge.refunded","data":{"object":{"id":"ch_1","object":"charge"}}}`)
	ev, err := NewClient("sk_test", secret).ParseWebhook(payload, sign(payload, time.Now()))
	require.NoError(t, err)
	assert.Nil(t, ev.Session)
}

func TestCreateSession_SendsLineItemsAndMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "order-1", r.Header.Get("Idempotency-Key"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "gbp", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "1063", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "2", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t, "Shipping", r.PostForm.Get("line_items[1][price_data][product_data][name]"))
		assert.Equal(t, "order-1", r.PostForm.Get("metadata[order_id]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_9","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_9","payment_status":"unpaid","status":"open"}`))
	}))
	defer srv.Close()

	backend := stripego.GetBackendWithConfig(stripego.APIBackend, &stripego.BackendConfig{
		URL:               stripego.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripego.Int64(0),
		LeveledLogger:     &stripego.LeveledLogger{Level: stripego.LevelNull},
	})
	c := NewClientWithBackends("sk_test", secret, &stripego.Backends{API: backend, Connect: backend, Uploads: backend})

	s, err := c.CreateSession(context.Background(), &SessionParams{
		Currency:   "GBP",
		SuccessURL: "https://shop.test/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "https://shop.test/cart",
		Lines: []LineItem{
			{Name: "Sencha", UnitAmount: 1063, Quantity: 2},
			{Name: "Shipping", UnitAmount: 499, Quantity: 1},
		},
		Metadata:       map[string]string{"order_id": "order-1"},
		IdempotencyKey: "order-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_9", s.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_9", s.URL)
	assert.False(t, s.Paid())
}
