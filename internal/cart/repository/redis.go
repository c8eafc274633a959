package repository

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
)

const keyPrefix = "cart:"

type RedisStore struct {
	cache *cache.RedisClient
	ttl   time.Duration
}

func NewRedisStore(cache *cache.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*dto.Cart, error) {
	var c dto.Cart
	found, err := s.cache.GetJSON(ctx, keyPrefix+key, &c)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

// Save refreshes the TTL on every write so active carts do not expire.
func (s *RedisStore) Save(ctx context.Context, c *dto.Cart) error {
	return s.cache.SetJSON(ctx, keyPrefix+c.ID, c, s.ttl)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.cache.Client.Del(ctx, keyPrefix+key).Err()
}
