package checkout

import "errors"

var (
	ErrMissingShippingField  = errors.New("missing shipping field")
	ErrMissingPaymentSource  = errors.New("missing payment source")
	ErrProviderNotConfigured = errors.New("payment provider not configured")
	ErrPaymentNotCompleted   = errors.New("payment not completed")
	ErrZeroTotal             = errors.New("order total must be positive")
	ErrInvalidWebhook        = errors.New("invalid webhook")
)
