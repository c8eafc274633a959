package dto

import (
	cartdto "github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// CheckoutInput is shared by both payment providers.
type CheckoutInput struct {
	Items           []cartdto.CartItem    `json:"items"`
	PromoCode       string                `json:"promo_code"`
	ShippingAddress model.ShippingAddress `json:"shipping_address"`
	GuestCheckout   bool                  `json:"guest_checkout"`

	UserID  string `json:"-"`
	CartKey string `json:"-"`
}

type StripeSessionInput struct {
	CheckoutInput
	Origin string `json:"-"`
}

type StripeSessionResult struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
	OrderID   string `json:"order_id"`
}

type SquarePaymentInput struct {
	CheckoutInput
	SourceID       string `json:"source_id"`
	IdempotencyKey string `json:"idempotency_key"`
}

type SquarePaymentResult struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
}
