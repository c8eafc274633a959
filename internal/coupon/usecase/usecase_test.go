package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/omnipos-storefront-service/internal/coupon"
	"github.com/fekuna/omnipos-storefront-service/internal/coupon/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/coupon/mocks"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) (*couponUseCase, *mocks.Repository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := new(mocks.Repository)
	return NewCouponUseCase(repo, cache.NewFromClient(client), logger.NewNop()).(*couponUseCase), repo
}

func TestValidateCode(t *testing.T) {
	uc, repo := newUseCase(t)
	ctx := context.Background()

	repo.On("FindByCode", ctx, "WELCOME10").Return(&model.Coupon{Code: "WELCOME10", DiscountPercentage: 10}, nil)
	repo.On("FindByCode", ctx, "SPENT").Return(&model.Coupon{Code: "SPENT", Used: true}, nil)
	repo.On("FindByCode", ctx, "NOPE").Return(nil, nil)

	c, err := uc.ValidateCode(ctx, " welcome10 ", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, c.DiscountPercentage)

	_, err = uc.ValidateCode(ctx, "spent", "user-1")
	assert.ErrorIs(t, err, coupon.ErrCouponUsed)
	assert.Equal(t, errx.CodeCouponUsed, errx.From(err).Code)

	_, err = uc.ValidateCode(ctx, "nope", "user-1")
	assert.Equal(t, http.StatusNotFound, errx.From(err).Status)

	_, err = uc.ValidateCode(ctx, "welcome10", "")
	assert.Equal(t, http.StatusUnauthorized, errx.From(err).Status)
}

func TestRedeem_SingleUse(t *testing.T) {
	uc, repo := newUseCase(t)
	ctx := context.Background()

	repo.On("MarkUsed", ctx, "WELCOME10", "user-1", mock.Anything).Return(true, nil).Once()
	repo.On("MarkUsed", ctx, "WELCOME10", "user-2", mock.Anything).Return(false, nil).Once()

	require.NoError(t, uc.Redeem(ctx, "welcome10", "user-1"))

	err := uc.Redeem(ctx, "WELCOME10", "user-2")
	assert.ErrorIs(t, err, coupon.ErrCouponUsed)
	repo.AssertExpectations(t)
}

func TestRedeem_RequiresUser(t *testing.T) {
	uc, repo := newUseCase(t)
	assert.ErrorIs(t, uc.Redeem(context.Background(), "X", ""), coupon.ErrSignInRequired)
	repo.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRedeem_RepositoryError(t *testing.T) {
	uc, repo := newUseCase(t)
	repo.On("MarkUsed", mock.Anything, "X", "u", mock.Anything).Return(false, errors.New("db down"))
	assert.EqualError(t, uc.Redeem(context.Background(), "x", "u"), "db down")
}

func TestCreateCoupon(t *testing.T) {
	uc, repo := newUseCase(t)
	ctx := context.Background()

	_, err := uc.CreateCoupon(ctx, &dto.CreateCouponInput{Code: "bad code!", DiscountPercentage: 10})
	assert.Equal(t, http.StatusBadRequest, errx.From(err).Status)

	_, err = uc.CreateCoupon(ctx, &dto.CreateCouponInput{Code: "BIG", DiscountPercentage: 101})
	assert.Equal(t, http.StatusBadRequest, errx.From(err).Status)

	repo.On("FindByCode", ctx, "TAKEN").Return(&model.Coupon{Code: "TAKEN"}, nil)
	_, err = uc.CreateCoupon(ctx, &dto.CreateCouponInput{Code: "taken", DiscountPercentage: 5})
	assert.Equal(t, http.StatusConflict, errx.From(err).Status)

	repo.On("FindByCode", ctx, "SPRING-25").Return(nil, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(c *model.Coupon) bool {
		return c.Code == "SPRING-25" && c.DiscountPercentage == 25 && !c.Used
	})).Return(nil)
	c, err := uc.CreateCoupon(ctx, &dto.CreateCouponInput{Code: "spring-25", DiscountPercentage: 25})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
}

func TestDeleteCoupon(t *testing.T) {
	uc, repo := newUseCase(t)
	ctx := context.Background()
	const id = "0b7f3c1e-6a0d-4c55-9b8e-3f1a2d4c5e6f"
	const missing = "9d2e4f60-1b3c-4a5d-8e7f-0a1b2c3d4e5f"
	repo.On("Delete", ctx, id).Return(true, nil)
	repo.On("Delete", ctx, missing).Return(false, nil)

	require.NoError(t, uc.DeleteCoupon(ctx, id))

	err := uc.DeleteCoupon(ctx, missing)
	assert.ErrorIs(t, err, coupon.ErrCouponNotFound)
	assert.Equal(t, http.StatusNotFound, errx.From(err).Status)

	err = uc.DeleteCoupon(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, coupon.ErrCouponNotFound)
	repo.AssertNotCalled(t, "Delete", ctx, "not-a-uuid")
}
