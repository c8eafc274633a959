package handler

import (
	"io"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	carthandler "github.com/fekuna/omnipos-storefront-service/internal/cart/handler"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/httpx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxWebhookBytes = 64 << 10

type CheckoutHandler struct {
	uc            checkout.UseCase
	defaultOrigin string
	logger        logger.ZapLogger
}

// NewCheckoutHandler: defaultOrigin builds the Stripe return URLs when the
// request carries no Origin header.
func NewCheckoutHandler(uc checkout.UseCase, defaultOrigin string, log logger.ZapLogger) *CheckoutHandler {
	return &CheckoutHandler{
		uc:            uc,
		defaultOrigin: defaultOrigin,
		logger:        log,
	}
}

func (h *CheckoutHandler) fillCaller(r *http.Request, in *dto.CheckoutInput) {
	in.UserID = auth.GetUserID(r.Context())
	in.CartKey = carthandler.CartKey(r)
}

func (h *CheckoutHandler) CreateStripeSession(w http.ResponseWriter, r *http.Request) {
	var input dto.StripeSessionInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	h.fillCaller(r, &input.CheckoutInput)
	input.Origin = r.Header.Get("Origin")
	if input.Origin == "" {
		input.Origin = h.defaultOrigin
	}

	res, err := h.uc.CreateStripeSession(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, res)
}

func (h *CheckoutHandler) ConfirmStripeSession(w http.ResponseWriter, r *http.Request) {
	o, err := h.uc.ConfirmStripeSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, o)
}

func (h *CheckoutHandler) ChargeSquare(w http.ResponseWriter, r *http.Request) {
	var input dto.SquarePaymentInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	h.fillCaller(r, &input.CheckoutInput)
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		input.IdempotencyKey = key
	}

	res, err := h.uc.ChargeSquare(r.Context(), &input)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, res)
}

// StripeWebhook needs the raw body for signature verification.
func (h *CheckoutHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		httpx.WriteError(w, r, errx.BadRequest(err, "could not read webhook body"))
		return
	}

	if err := h.uc.HandleStripeWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		h.logger.Error("stripe webhook failed", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, map[string]bool{"received": true})
}
