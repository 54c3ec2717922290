package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeBadRequest           = "BAD_REQUEST"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeTooManyRequests      = "TOO_MANY_REQUESTS"
	ErrCodeConfigurationMissing = "CONFIGURATION_MISSING"
	ErrCodeNetworkFailure       = "NETWORK_FAILURE"
	ErrCodeInvalidQuantity      = "INVALID_QUANTITY"
	ErrCodeUnavailable          = "UNAVAILABLE"
	ErrCodeStaleResponse        = "STALE_RESPONSE"
	ErrCodeInvalidSession       = "INVALID_SESSION"
)

// User-facing messages shown by the storefront notices.
const (
	MsgLoadError      = "Unable to load products. Please try again later."
	MsgAddToCartError = "Unable to add item to cart. Please try again."
	MsgNetworkError   = "Connection error. Please check your internet and try again."
	MsgOutOfStock     = "This item is currently out of stock."
	MsgInvalidVariant = "Please select all options before adding to cart."
	MsgUpdateError    = "Failed to update quantity"
	MsgRemoveError    = "Failed to remove item"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func ConfigurationMissingError(message string) *AppError {
	return NewAppError(ErrCodeConfigurationMissing, message, http.StatusConflict)
}

func NetworkFailureError(message string) *AppError {
	return NewAppError(ErrCodeNetworkFailure, message, http.StatusServiceUnavailable)
}

func InvalidQuantityError(message string) *AppError {
	return NewAppError(ErrCodeInvalidQuantity, message, http.StatusBadRequest)
}

func UnavailableError(message string) *AppError {
	return NewAppError(ErrCodeUnavailable, message, http.StatusConflict)
}

func StaleResponseError(message string) *AppError {
	return NewAppError(ErrCodeStaleResponse, message, http.StatusConflict)
}

func InvalidSessionError(message string) *AppError {
	return NewAppError(ErrCodeInvalidSession, message, http.StatusUnauthorized)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Code == code
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
