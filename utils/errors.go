package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Govind-619/quickcart-payments/gateways"
)

const UnknownErrorMessage = "Unknown server error"

// AppError represents an application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequestError creates a 400 Bad Request error
func BadRequestError(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

// UnauthorizedError creates a 401 Unauthorized error
func UnauthorizedError(message string, err error) *AppError {
	return NewAppError(http.StatusUnauthorized, message, err)
}

// ForbiddenError creates a 403 Forbidden error
func ForbiddenError(message string, err error) *AppError {
	return NewAppError(http.StatusForbidden, message, err)
}

// NotFoundError creates a 404 Not Found error
func NotFoundError(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, message, err)
}

// InternalError creates a 500 Internal Server Error error
func InternalError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

// ServiceUnavailableError creates a 503 Service Unavailable error
func ServiceUnavailableError(message string, err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, message, err)
}

// ConfigurationError creates a 500 error for missing gateway credentials or URLs
func ConfigurationError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, ErrorMessage(err), err)
}

// ProviderFailureError creates a 500 error for a failure reported by a payment gateway
func ProviderFailureError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, ErrorMessage(err), err)
}

// GetAppError returns the AppError anywhere in err's chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ErrorMessage extracts the message a caller should see for err. Gateway errors
// carry the provider's own description; anything without text becomes
// UnknownErrorMessage.
func ErrorMessage(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}
	if appErr := GetAppError(err); appErr != nil && appErr.Message != "" {
		return appErr.Message
	}
	var providerErr *gateways.ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}

// IsConfigurationError checks if err comes from an unconfigured gateway
func IsConfigurationError(err error) bool {
	return errors.Is(err, gateways.ErrNotConfigured)
}

// IsProviderError checks if err was reported by a payment gateway
func IsProviderError(err error) bool {
	var providerErr *gateways.ProviderError
	return errors.As(err, &providerErr)
}
