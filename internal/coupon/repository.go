package coupon

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/coupon/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	FindAll(ctx context.Context, filters *dto.CouponFilters) ([]model.Coupon, int, error)
	Delete(ctx context.Context, id string) (bool, error)
	Upsert(ctx context.Context, coupon *model.Coupon) error

	// MarkUsed flips used=false to true; false means the code was already
	// consumed (or does not exist).
	MarkUsed(ctx context.Context, code, userID string, at time.Time) (bool, error)
}
