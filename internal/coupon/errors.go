package coupon

import "errors"

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponUsed     = errors.New("coupon already used")
	ErrSignInRequired = errors.New("promo codes require a signed-in user")
)
