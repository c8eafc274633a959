package cart

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
)

// Store keeps server-side carts. Get returns nil for an unknown key.
type Store interface {
	Get(ctx context.Context, key string) (*dto.Cart, error)
	Save(ctx context.Context, cart *dto.Cart) error
	Delete(ctx context.Context, key string) error
}
