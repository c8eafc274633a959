package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/cart/repository"
	couponmocks "github.com/fekuna/omnipos-storefront-service/internal/coupon/mocks"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	productmocks "github.com/fekuna/omnipos-storefront-service/internal/product/mocks"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pricing = config.StoreConfig{
	Currency:              "GBP",
	FreeShippingThreshold: 5000,
	ShippingFee:           499,
	PencePerLoyaltyPoint:  100,
}

func strPtr(s string) *string { return &s }

func catalog() map[string]*model.Product {
	return map[string]*model.Product{
		"sencha": {
			BaseModel:     model.BaseModel{ID: "sencha"},
			Name:          "Sencha",
			PricePence:    1250,
			StockQuantity: 10,
			IsActive:      true,
		},
		"chai": {
			BaseModel:     model.BaseModel{ID: "chai"},
			Name:          "Masala Chai",
			PricePence:    699,
			StockQuantity: 0,
			IsActive:      true,
			Variations: []model.ProductVariation{
				{ID: "chai-100g", ProductID: "chai", Weight: "100g", PricePence: 899, StockQuantity: 3},
			},
		},
		"retired": {
			BaseModel:     model.BaseModel{ID: "retired"},
			Name:          "Retired Blend",
			PricePence:    500,
			StockQuantity: 5,
			IsActive:      false,
		},
	}
}

type fixture struct {
	products *productmocks.UseCase
	coupons  *couponmocks.UseCase
	mr       *miniredis.Miniredis
	uc       cart.UseCase
}

func setup(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &fixture{
		products: new(productmocks.UseCase),
		coupons:  new(couponmocks.UseCase),
		mr:       mr,
	}
	store := repository.NewRedisStore(cache.NewFromClient(client), 168*time.Hour)
	f.uc = NewCartUseCase(store, f.products, f.coupons, pricing, logger.NewNop())
	f.products.On("GetProducts", mock.Anything, mock.Anything).Return(catalog(), nil)
	return f
}

func TestQuote_SignedInWithPromo(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.coupons.On("ValidateCode", ctx, "leafy15", "user-1").
		Return(&model.Coupon{Code: "LEAFY15", DiscountPercentage: 15}, nil)

	q, err := f.uc.Quote(ctx, &dto.QuoteInput{
		Items: []dto.CartItem{
			{ProductID: "sencha", Quantity: 1},
			{ProductID: "chai", VariationID: strPtr("chai-100g"), Quantity: 1},
			{ProductID: "sencha", Quantity: 1},
		},
		PromoCode: "leafy15",
		UserID:    "user-1",
	})
	require.NoError(t, err)

	require.Len(t, q.Lines, 2, "repeated lines are merged")
	assert.Equal(t, 2, q.Lines[0].Quantity)
	assert.Equal(t, int64(1063), q.Lines[0].DiscountedUnitPence)
	assert.Equal(t, "Masala Chai (100g)", q.Lines[1].DisplayName())
	assert.Equal(t, int64(765), q.Lines[1].DiscountedUnitPence)

	assert.Equal(t, int64(3399), q.SubtotalPence)
	assert.Equal(t, int64(508), q.DiscountPence)
	assert.Equal(t, int64(499), q.ShippingPence)
	assert.Equal(t, int64(3390), q.TotalPence)
	assert.Equal(t, 33, q.PointsEarned)
	assert.Equal(t, "LEAFY15", q.PromoCode)

	var linesTotal int64
	for _, l := range q.Lines {
		linesTotal += l.LineTotalPence
	}
	assert.Equal(t, q.TotalPence, linesTotal+q.ShippingPence, "provider line items must add up to the total")
}

func TestQuote_GuestFreeShippingNoPoints(t *testing.T) {
	f := setup(t)

	q, err := f.uc.Quote(context.Background(), &dto.QuoteInput{
		Items: []dto.CartItem{{ProductID: "sencha", Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), q.SubtotalPence)
	assert.Zero(t, q.ShippingPence)
	assert.Equal(t, int64(5000), q.TotalPence)
	assert.Zero(t, q.PointsEarned)
	f.coupons.AssertNotCalled(t, "ValidateCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuote_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		items  []dto.CartItem
		target error
		status int
	}{
		{"empty", nil, cart.ErrEmptyCart, http.StatusBadRequest},
		{"zero quantity", []dto.CartItem{{ProductID: "sencha", Quantity: 0}}, cart.ErrInvalidQuantity, http.StatusBadRequest},
		{"negative line hidden by merge", []dto.CartItem{{ProductID: "sencha", Quantity: 3}, {ProductID: "sencha", Quantity: -2}}, cart.ErrInvalidQuantity, http.StatusBadRequest},
		{"unknown product", []dto.CartItem{{ProductID: "ghost", Quantity: 1}}, cart.ErrProductUnavailable, http.StatusBadRequest},
		{"inactive product", []dto.CartItem{{ProductID: "retired", Quantity: 1}}, cart.ErrProductUnavailable, http.StatusBadRequest},
		{"unknown variation", []dto.CartItem{{ProductID: "chai", VariationID: strPtr("chai-1kg"), Quantity: 1}}, cart.ErrUnknownVariation, http.StatusBadRequest},
		{"over stock", []dto.CartItem{{ProductID: "chai", VariationID: strPtr("chai-100g"), Quantity: 4}}, cart.ErrInsufficientStock, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := setup(t)
			_, err := f.uc.Quote(context.Background(), &dto.QuoteInput{Items: tc.items})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
			assert.Equal(t, tc.status, errx.From(err).Status)
		})
	}
}

func TestQuote_PromoErrorPropagates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	used := errx.Conflict(errors.New("used"), "this promo code has already been used")
	f.coupons.On("ValidateCode", ctx, "OLD", "user-1").Return(nil, used)

	_, err := f.uc.Quote(ctx, &dto.QuoteInput{
		Items:     []dto.CartItem{{ProductID: "sencha", Quantity: 1}},
		PromoCode: "OLD",
		UserID:    "user-1",
	})
	assert.ErrorIs(t, err, used)
}

func TestServerCart_SetRemoveClear(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	empty, err := f.uc.GetCart(ctx, "guest-1")
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	_, err = f.uc.SetItem(ctx, "guest-1", dto.CartItem{ProductID: "sencha", Quantity: 2})
	require.NoError(t, err)
	c, err := f.uc.SetItem(ctx, "guest-1", dto.CartItem{ProductID: "chai", VariationID: strPtr("chai-100g"), Quantity: 1})
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.True(t, f.mr.Exists("cart:guest-1"))

	c, err = f.uc.SetItem(ctx, "guest-1", dto.CartItem{ProductID: "sencha", Quantity: 5})
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.Equal(t, 5, c.Items[1].Quantity)

	c, err = f.uc.SetItem(ctx, "guest-1", dto.CartItem{ProductID: "sencha", Quantity: 0})
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "chai", c.Items[0].ProductID)

	c, err = f.uc.RemoveItem(ctx, "guest-1", "chai", strPtr("chai-100g"))
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	require.NoError(t, f.uc.Clear(ctx, "guest-1"))
	assert.False(t, f.mr.Exists("cart:guest-1"))
}

func TestServerCart_SetItemChecksStock(t *testing.T) {
	f := setup(t)

	_, err := f.uc.SetItem(context.Background(), "user:1", dto.CartItem{ProductID: "sencha", Quantity: 11})
	assert.ErrorIs(t, err, cart.ErrInsufficientStock)

	_, err = f.uc.GetCart(context.Background(), "")
	assert.ErrorIs(t, err, cart.ErrCartKeyRequired)
}
