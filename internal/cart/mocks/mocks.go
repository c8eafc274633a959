// Package mocks holds testify mocks of the cart interfaces.
package mocks

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/stretchr/testify/mock"
)

type Store struct {
	mock.Mock
}

func (m *Store) Get(ctx context.Context, key string) (*dto.Cart, error) {
	args := m.Called(ctx, key)
	c, _ := args.Get(0).(*dto.Cart)
	return c, args.Error(1)
}

func (m *Store) Save(ctx context.Context, c *dto.Cart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *Store) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type UseCase struct {
	mock.Mock
}

func (m *UseCase) Quote(ctx context.Context, input *dto.QuoteInput) (*dto.Quote, error) {
	args := m.Called(ctx, input)
	q, _ := args.Get(0).(*dto.Quote)
	return q, args.Error(1)
}

func (m *UseCase) GetCart(ctx context.Context, key string) (*dto.Cart, error) {
	args := m.Called(ctx, key)
	if fn, ok := args.Get(0).(func(context.Context, string) *dto.Cart); ok {
		return fn(ctx, key), args.Error(1)
	}
	c, _ := args.Get(0).(*dto.Cart)
	return c, args.Error(1)
}

func (m *UseCase) SetItem(ctx context.Context, key string, item dto.CartItem) (*dto.Cart, error) {
	args := m.Called(ctx, key, item)
	c, _ := args.Get(0).(*dto.Cart)
	return c, args.Error(1)
}

func (m *UseCase) RemoveItem(ctx context.Context, key, productID string, variationID *string) (*dto.Cart, error) {
	args := m.Called(ctx, key, productID, variationID)
	c, _ := args.Get(0).(*dto.Cart)
	return c, args.Error(1)
}

func (m *UseCase) Clear(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
