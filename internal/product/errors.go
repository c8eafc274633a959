package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrVariationNotFound = errors.New("product variation not found")
	ErrSKUTaken          = errors.New("sku already exists")
	ErrUnknownCategory   = errors.New("unknown category")
)
