package checkout

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	CreateStripeSession(ctx context.Context, input *dto.StripeSessionInput) (*dto.StripeSessionResult, error)
	// ConfirmStripeSession marks the order paid once Stripe reports the
	// session paid. Calling it again returns the order untouched.
	ConfirmStripeSession(ctx context.Context, sessionID string) (*model.Order, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error
	ChargeSquare(ctx context.Context, input *dto.SquarePaymentInput) (*dto.SquarePaymentResult, error)
}
