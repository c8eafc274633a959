package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := NewRedisStore(cache.NewFromClient(client), time.Hour)
	ctx := context.Background()

	missing, err := store.Get(ctx, "guest-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.Save(ctx, &dto.Cart{ID: "guest-1", Items: []dto.CartItem{{ProductID: "sencha", Quantity: 2}}}))
	assert.Equal(t, time.Hour, mr.TTL("cart:guest-1"))

	got, err := store.Get(ctx, "guest-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)

	mr.FastForward(2 * time.Hour)
	expired, err := store.Get(ctx, "guest-1")
	require.NoError(t, err)
	assert.Nil(t, expired)

	require.NoError(t, store.Save(ctx, &dto.Cart{ID: "guest-2"}))
	require.NoError(t, store.Delete(ctx, "guest-2"))
	assert.False(t, mr.Exists("cart:guest-2"))
}
