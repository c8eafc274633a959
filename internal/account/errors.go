package account

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrAddressNotFound  = errors.New("address not found")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidPoints    = errors.New("loyalty points cannot be negative")
	ErrMissingField     = errors.New("missing required field")
)
