package coupon

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/coupon/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	ValidateCode(ctx context.Context, code, userID string) (*model.Coupon, error)
	Redeem(ctx context.Context, code, userID string) error

	CreateCoupon(ctx context.Context, input *dto.CreateCouponInput) (*model.Coupon, error)
	ListCoupons(ctx context.Context, filters *dto.CouponFilters) ([]model.Coupon, int, error)
	DeleteCoupon(ctx context.Context, id string) error
}
