// Package mocks holds testify mocks of the coupon interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/coupon/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, c *model.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *Repository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(*model.Coupon)
	return c, args.Error(1)
}

func (m *Repository) FindAll(ctx context.Context, f *dto.CouponFilters) ([]model.Coupon, int, error) {
	args := m.Called(ctx, f)
	c, _ := args.Get(0).([]model.Coupon)
	return c, args.Int(1), args.Error(2)
}

func (m *Repository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) Upsert(ctx context.Context, c *model.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *Repository) MarkUsed(ctx context.Context, code, userID string, at time.Time) (bool, error) {
	args := m.Called(ctx, code, userID, at)
	return args.Bool(0), args.Error(1)
}

type UseCase struct {
	mock.Mock
}

func (m *UseCase) ValidateCode(ctx context.Context, code, userID string) (*model.Coupon, error) {
	args := m.Called(ctx, code, userID)
	c, _ := args.Get(0).(*model.Coupon)
	return c, args.Error(1)
}

func (m *UseCase) Redeem(ctx context.Context, code, userID string) error {
	return m.Called(ctx, code, userID).Error(0)
}

func (m *UseCase) CreateCoupon(ctx context.Context, input *dto.CreateCouponInput) (*model.Coupon, error) {
	args := m.Called(ctx, input)
	c, _ := args.Get(0).(*model.Coupon)
	return c, args.Error(1)
}

func (m *UseCase) ListCoupons(ctx context.Context, f *dto.CouponFilters) ([]model.Coupon, int, error) {
	args := m.Called(ctx, f)
	c, _ := args.Get(0).([]model.Coupon)
	return c, args.Int(1), args.Error(2)
}

func (m *UseCase) DeleteCoupon(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
