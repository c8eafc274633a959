package cart

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrUnknownVariation   = errors.New("unknown product variation")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrCartKeyRequired    = errors.New("cart key required")
)
