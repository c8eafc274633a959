package errx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Codes double as i18n message ids, see pkg/i18n/locales.
const (
	CodeInternal      = "internal_error"
	CodeNotFound      = "not_found"
	CodeBadRequest    = "bad_request"
	CodeConflict      = "conflict"
	CodeUnauthorized  = "unauthorized"
	CodeForbidden     = "forbidden"
	CodePaymentFailed = "payment_failed"
	CodeOutOfStock    = "out_of_stock"
	CodeCouponUsed    = "coupon_used"
	CodeBusy          = "system_busy"
)

// AppError wraps an underlying error with an HTTP status, a stable code and a
// safe message.
type AppError struct {
	Err     error
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(err error, status int, code, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func NotFound(err error, message string) *AppError {
	return New(err, http.StatusNotFound, CodeNotFound, message)
}

func BadRequest(err error, message string) *AppError {
	return New(err, http.StatusBadRequest, CodeBadRequest, message)
}

func Conflict(err error, message string) *AppError {
	return New(err, http.StatusConflict, CodeConflict, message)
}

func Unauthorized(message string) *AppError {
	return New(nil, http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(nil, http.StatusForbidden, CodeForbidden, message)
}

func PaymentFailed(err error, message string) *AppError {
	return New(err, http.StatusPaymentRequired, CodePaymentFailed, message)
}

func Internal(err error) *AppError {
	return New(err, http.StatusInternalServerError, CodeInternal, "internal server error")
}

// From returns the AppError in err's chain, or an internal error wrapping err.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if IsUniqueViolation(err) {
		return Conflict(err, "resource already exists")
	}
	return Internal(err)
}

// IsUniqueViolation reports whether err is a Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
