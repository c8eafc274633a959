package cart

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
)

type UseCase interface {
	// Quote prices a client-held cart against the live catalog.
	Quote(ctx context.Context, input *dto.QuoteInput) (*dto.Quote, error)

	GetCart(ctx context.Context, key string) (*dto.Cart, error)
	SetItem(ctx context.Context, key string, item dto.CartItem) (*dto.Cart, error)
	RemoveItem(ctx context.Context, key, productID string, variationID *string) (*dto.Cart, error)
	Clear(ctx context.Context, key string) error
}
