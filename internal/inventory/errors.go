package inventory

import "errors"

var (
	ErrItemNotFound      = errors.New("stock item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStockChanged      = errors.New("stock changed concurrently")
)
