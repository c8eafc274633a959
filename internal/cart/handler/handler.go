package handler

import (
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/httpx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartIDHeader carries the guest cart id in both directions.
const CartIDHeader = "X-Cart-ID"

const guestPrefix = "guest:"

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

type quoteRequest struct {
	Items     []dto.CartItem `json:"items"`
	PromoCode string         `json:"promo_code"`
}

type cartResponse struct {
	*dto.Cart
	Quote *dto.Quote `json:"quote,omitempty"`
}

// CartKey resolves the server cart of the request: the signed-in user's
// cart, else the guest cart named by X-Cart-ID.
func CartKey(r *http.Request) string {
	if userID := auth.GetUserID(r.Context()); userID != "" {
		return "user:" + userID
	}
	id := r.Header.Get(CartIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return guestPrefix + id
}

// ensureKey hands out a new guest cart id when the request has none and
// echoes the guest id back on every response.
func ensureKey(w http.ResponseWriter, r *http.Request) string {
	key := CartKey(r)
	if key == "" {
		key = guestPrefix + uuid.New().String()
	}
	if id, ok := strings.CutPrefix(key, guestPrefix); ok {
		w.Header().Set(CartIDHeader, id)
	}
	return key
}

func (h *CartHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	q, err := h.uc.Quote(r.Context(), &dto.QuoteInput{
		Items:     req.Items,
		PromoCode: req.PromoCode,
		UserID:    auth.GetUserID(r.Context()),
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.OK(w, q)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.uc.GetCart(r.Context(), ensureKey(w, r))
	if err != nil {
		h.logger.Error("failed to load cart", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	h.writeCart(w, r, c)
}

func (h *CartHandler) SetItem(w http.ResponseWriter, r *http.Request) {
	var item dto.CartItem
	if err := httpx.DecodeJSON(r, &item); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	c, err := h.uc.SetItem(r.Context(), ensureKey(w, r), item)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	h.writeCart(w, r, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var variationID *string
	if v := r.URL.Query().Get("variation_id"); v != "" {
		variationID = &v
	}

	c, err := h.uc.RemoveItem(r.Context(), ensureKey(w, r), chi.URLParam(r, "product_id"), variationID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	h.writeCart(w, r, c)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Clear(r.Context(), CartKey(r)); err != nil {
		h.logger.Error("failed to clear cart", zap.Error(err))
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeCart attaches a fresh quote; a cart that no longer prices (a product
// went out of stock) is still returned so the customer can fix it.
func (h *CartHandler) writeCart(w http.ResponseWriter, r *http.Request, c *dto.Cart) {
	view := *c
	view.ID = strings.TrimPrefix(c.ID, guestPrefix)
	resp := cartResponse{Cart: &view}
	if len(c.Items) > 0 {
		q, err := h.uc.Quote(r.Context(), &dto.QuoteInput{
			Items:  c.Items,
			UserID: auth.GetUserID(r.Context()),
		})
		if err != nil {
			h.logger.Debug("cart does not price", zap.String("cart_id", c.ID), zap.Error(err))
		} else {
			resp.Quote = q
		}
	}
	httpx.OK(w, resp)
}
