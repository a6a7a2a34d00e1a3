package gateways

import (
	"context"
	"errors"
	"math"

	"github.com/Govind-619/quickcart-payments/models"
)

// CheckoutRequest describes the remote checkout resource to create
type CheckoutRequest struct {
	SessionID string
	Amount    float64
	Currency  string
}

// Checkout is what a gateway hands back after creating a checkout resource
type Checkout struct {
	ProviderReferenceID string
	CheckoutURL         string
}

// Gateway is implemented by every external payment provider the broker can delegate to
type Gateway interface {
	Name() models.Gateway
	// Configured reports whether the credentials required for CreateCheckout are present
	Configured() bool
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	CheckStatus(ctx context.Context, providerReferenceID string) (models.PaymentStatus, error)
}

// ErrNotConfigured is matched by every NotConfiguredError
var ErrNotConfigured = errors.New("gateway not configured")

// NotConfiguredError is returned before any network call when credentials or URLs are absent
type NotConfiguredError struct {
	Gateway models.Gateway
	Missing string
}

func (e *NotConfiguredError) Error() string {
	return "Missing " + e.Missing
}

func (e *NotConfiguredError) Is(target error) bool {
	return target == ErrNotConfigured
}

const unknownErrorMessage = "Unknown server error"

// ProviderError is a failure reported by (or while talking to) the remote gateway
type ProviderError struct {
	Gateway models.Gateway
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return unknownErrorMessage
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ToMinorUnits converts a major-unit amount to the integer minor units gateways expect.
// Callers check FitsMinorUnits first.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FitsMinorUnits reports whether amount converts to int64 minor units without overflow
func FitsMinorUnits(amount float64) bool {
	minor := math.Round(amount * 100)
	return !math.IsNaN(minor) && minor < math.MaxInt64 && minor > math.MinInt64
}

func newProviderError(gateway models.Gateway, err error) *ProviderError {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &ProviderError{Gateway: gateway, Message: msg, Err: err}
}
