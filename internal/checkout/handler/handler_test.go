package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout/mocks"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const body = `{
	"items": [{"product_id": "sencha", "quantity": 2}],
	"promo_code": "LEAFY15",
	"shipping_address": {"email": "ada@example.com", "full_name": "Ada", "address_line1": "1 Tea Lane", "city": "York", "postcode": "YO1"}
}`

func TestCreateStripeSession_UsesOriginAndUser(t *testing.T) {
	uc := new(mocks.UseCase)
	uc.On("CreateStripeSession", mock.Anything, mock.MatchedBy(func(in *dto.StripeSessionInput) bool {
		return in.Origin == "https://shop.test" && in.UserID == "u1" && in.CartKey == "user:u1" &&
			in.PromoCode == "LEAFY15" && len(in.Items) == 1 && in.ShippingAddress.City == "York"
	})).Return(&dto.StripeSessionResult{URL: "https://checkout.stripe.com/x", SessionID: "cs_1", OrderID: "o1"}, nil)

	h := NewCheckoutHandler(uc, "http://localhost:5173", logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/v1/checkout/stripe-session", strings.NewReader(body))
	req.Header.Set("Origin", "https://shop.test")
	req = req.WithContext(auth.WithUser(req.Context(), &auth.UserContext{UserID: "u1"}))
	rec := httptest.NewRecorder()

	h.CreateStripeSession(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"url":"https://checkout.stripe.com/x","session_id":"cs_1","order_id":"o1"}}`, rec.Body.String())
}

func TestCreateStripeSession_FallsBackToDefaultOrigin(t *testing.T) {
	uc := new(mocks.UseCase)
	uc.On("CreateStripeSession", mock.Anything, mock.MatchedBy(func(in *dto.StripeSessionInput) bool {
		return in.Origin == "http://localhost:5173" && in.UserID == ""
	})).Return(&dto.StripeSessionResult{}, nil)

	h := NewCheckoutHandler(uc, "http://localhost:5173", logger.NewNop())
	rec := httptest.NewRecorder()
	h.CreateStripeSession(rec, httptest.NewRequest(http.MethodPost, "/v1/checkout/stripe-session", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestChargeSquare_IdempotencyHeaderWins(t *testing.T) {
	uc := new(mocks.UseCase)
	uc.On("ChargeSquare", mock.Anything, mock.MatchedBy(func(in *dto.SquarePaymentInput) bool {
		return in.SourceID == "cnon:card" && in.IdempotencyKey == "from-header"
	})).Return(&dto.SquarePaymentResult{Success: true, PaymentID: "p1", OrderID: "o1"}, nil)

	h := NewCheckoutHandler(uc, "", logger.NewNop())
	payload := strings.Replace(body, `"items"`, `"source_id":"cnon:card","idempotency_key":"from-body","items"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/v1/checkout/square-payment", strings.NewReader(payload))
	req.Header.Set("Idempotency-Key", "from-header")
	rec := httptest.NewRecorder()

	h.ChargeSquare(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"success":true,"payment_id":"p1","order_id":"o1"}}`, rec.Body.String())
}

func TestChargeSquare_PaymentFailure(t *testing.T) {
	uc := new(mocks.UseCase)
	uc.On("ChargeSquare", mock.Anything, mock.Anything).Return(nil, errx.PaymentFailed(errors.New("declined"), "Card declined."))

	h := NewCheckoutHandler(uc, "", logger.NewNop())
	rec := httptest.NewRecorder()
	h.ChargeSquare(rec, httptest.NewRequest(http.MethodPost, "/v1/checkout/square-payment", strings.NewReader(body)))

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Card declined."`)
}

func TestStripeWebhook_PassesRawBodyAndSignature(t *testing.T) {
	uc := new(mocks.UseCase)
	raw := `{"id":"evt_1","type":"checkout.session.completed"}`
	uc.On("HandleStripeWebhook", mock.Anything, []byte(raw), "t=1,v1=abc").Return(nil)

	h := NewCheckoutHandler(uc, "", logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/stripe", strings.NewReader(raw))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rec := httptest.NewRecorder()

	h.StripeWebhook(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestStripeWebhook_InvalidSignature(t *testing.T) {
	uc := new(mocks.UseCase)
	uc.On("HandleStripeWebhook", mock.Anything, mock.Anything, mock.Anything).
		Return(errx.BadRequest(checkout.ErrInvalidWebhook, "invalid webhook signature"))

	h := NewCheckoutHandler(uc, "", logger.NewNop())
	rec := httptest.NewRecorder()
	h.StripeWebhook(rec, httptest.NewRequest(http.MethodPost, "/v1/webhooks/stripe", strings.NewReader("{}")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
