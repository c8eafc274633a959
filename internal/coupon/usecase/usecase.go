package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/fekuna/omnipos-storefront-service/internal/coupon"
	"github.com/fekuna/omnipos-storefront-service/internal/coupon/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type couponUseCase struct {
	repo   coupon.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewCouponUseCase(repo coupon.Repository, cache *cache.RedisClient, log logger.ZapLogger) coupon.UseCase {
	return &couponUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

// Normalize upper-cases and trims a code as typed by the customer.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func usedError() error {
	return errx.New(coupon.ErrCouponUsed, http.StatusConflict, errx.CodeCouponUsed, "this promo code has already been used")
}

func (uc *couponUseCase) ValidateCode(ctx context.Context, code, userID string) (*model.Coupon, error) {
	if userID == "" {
		return nil, errx.New(coupon.ErrSignInRequired, http.StatusUnauthorized, errx.CodeUnauthorized, "sign in to use promo codes")
	}
	code = Normalize(code)
	if code == "" {
		return nil, errx.BadRequest(errors.New("empty code"), "promo code is required")
	}

	c, err := uc.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errx.NotFound(coupon.ErrCouponNotFound, "invalid promo code")
	}
	if c.Used {
		return nil, usedError()
	}
	return c, nil
}

func (uc *couponUseCase) Redeem(ctx context.Context, code, userID string) error {
	if userID == "" {
		return coupon.ErrSignInRequired
	}
	code = Normalize(code)

	err := uc.cache.WithLock(ctx, "lock:coupon:"+code, uuid.New().String(), 5*time.Second, func() error {
		ok, err := uc.repo.MarkUsed(ctx, code, userID, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return usedError()
		}
		return nil
	})
	if errors.Is(err, cache.ErrLocked) {
		return errx.New(err, http.StatusServiceUnavailable, errx.CodeBusy, "system busy, please try again later")
	}
	if err != nil {
		return err
	}

	uc.logger.Info("promo code redeemed", zap.String("code", code), zap.String("user_id", userID))
	return nil
}

func (uc *couponUseCase) CreateCoupon(ctx context.Context, input *dto.CreateCouponInput) (*model.Coupon, error) {
	code := Normalize(input.Code)
	if code == "" || strings.IndexFunc(code, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_')
	}) >= 0 {
		return nil, errx.BadRequest(fmt.Errorf("code %q", input.Code), "promo code may only contain letters, digits, - and _")
	}
	if input.DiscountPercentage < 1 || input.DiscountPercentage > 100 {
		return nil, errx.BadRequest(fmt.Errorf("discount %d", input.DiscountPercentage), "discount must be between 1 and 100 percent")
	}

	existing, err := uc.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errx.Conflict(fmt.Errorf("code %s exists", code), "promo code already exists")
	}

	c := &model.Coupon{
		ID:                 uuid.New().String(),
		Code:               code,
		DiscountPercentage: input.DiscountPercentage,
		CreatedAt:          time.Now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *couponUseCase) ListCoupons(ctx context.Context, filters *dto.CouponFilters) ([]model.Coupon, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *couponUseCase) DeleteCoupon(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errx.NotFound(coupon.ErrCouponNotFound, "coupon not found")
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errx.NotFound(coupon.ErrCouponNotFound, "coupon not found")
	}
	uc.logger.Info("coupon deleted", zap.String("coupon_id", id))
	return nil
}
