package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Govind-619/quickcart-payments/gateways"
	"github.com/Govind-619/quickcart-payments/models"
	"github.com/Govind-619/quickcart-payments/store"
	"github.com/Govind-619/quickcart-payments/utils"
	"github.com/google/uuid"
)

// PaidNotifier is told about sessions that just transitioned to PAID
type PaidNotifier interface {
	NotifyPaid(ctx context.Context, session *models.PaymentSession) error
}

// CreateSessionInput is a create-session request
type CreateSessionInput struct {
	UserID   string
	Amount   float64
	Currency string
	Gateway  string
}

type CreateSessionResult struct {
	SessionID   string         `json:"sessionId"`
	Gateway     models.Gateway `json:"gateway"`
	CheckoutURL string         `json:"checkoutUrl"`
}

type VerifySessionResult struct {
	SessionID string               `json:"sessionId"`
	Status    models.PaymentStatus `json:"status"`
}

// PaymentBroker creates payment sessions against external gateways and verifies them
type PaymentBroker struct {
	store           store.SessionStore
	gateways        map[models.Gateway]gateways.Gateway
	defaultCurrency string
	providerTimeout time.Duration
	notifier        PaidNotifier

	newID func() string
	now   func() time.Time
}

type BrokerOption func(*PaymentBroker)

// WithPaidNotifier registers a notifier for PENDING to PAID transitions
func WithPaidNotifier(n PaidNotifier) BrokerOption {
	return func(b *PaymentBroker) {
		b.notifier = n
	}
}

// WithProviderTimeout bounds every outbound gateway call
func WithProviderTimeout(d time.Duration) BrokerOption {
	return func(b *PaymentBroker) {
		b.providerTimeout = d
	}
}

func WithClock(now func() time.Time) BrokerOption {
	return func(b *PaymentBroker) {
		b.now = now
	}
}

func WithIDGenerator(newID func() string) BrokerOption {
	return func(b *PaymentBroker) {
		b.newID = newID
	}
}

func NewPaymentBroker(sessions store.SessionStore, defaultCurrency string, gws []gateways.Gateway, opts ...BrokerOption) *PaymentBroker {
	b := &PaymentBroker{
		store:           sessions,
		gateways:        make(map[models.Gateway]gateways.Gateway, len(gws)),
		defaultCurrency: defaultCurrency,
		newID:           uuid.NewString,
		now:             time.Now,
	}
	for _, g := range gws {
		b.gateways[g.Name()] = g
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *PaymentBroker) providerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.providerTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.providerTimeout)
}

func gatewayError(err error) *utils.AppError {
	if utils.IsConfigurationError(err) {
		return utils.ConfigurationError(err)
	}
	return utils.ProviderFailureError(err)
}

// logGatewayFailure keeps the "Provider error" prefix for failures reported by
// the provider; missing configuration is logged separately
func logGatewayFailure(action string, gateway models.Gateway, sessionID string, err error) {
	if utils.IsProviderError(err) {
		utils.LogError("Provider error %s %s session %s: %v", action, gateway, sessionID, err)
		return
	}
	utils.LogError("Gateway %s not usable while %s session %s: %v", gateway, action, sessionID, err)
}

// CreateSession validates the request, creates the remote checkout and stores a PENDING session.
// Nothing is stored when the gateway call fails.
func (b *PaymentBroker) CreateSession(ctx context.Context, in CreateSessionInput) (*CreateSessionResult, error) {
	if in.UserID == "" || in.Amount == 0 || in.Gateway == "" {
		return nil, utils.BadRequestError("userId, amount, and gateway are required", nil)
	}
	if in.Amount < 0 {
		return nil, utils.BadRequestError("amount must be > 0", nil)
	}
	if !gateways.FitsMinorUnits(in.Amount) {
		return nil, utils.BadRequestError("amount is too large", nil)
	}

	gatewayName, ok := models.ParseGateway(in.Gateway)
	if !ok {
		return nil, utils.BadRequestError("gateway must be RAZORPAY or STRIPE", nil)
	}
	gateway, ok := b.gateways[gatewayName]
	if !ok {
		return nil, utils.ConfigurationError(&gateways.NotConfiguredError{Gateway: gatewayName, Missing: string(gatewayName) + " gateway"})
	}

	currency := strings.TrimSpace(in.Currency)
	if currency == "" {
		currency = b.defaultCurrency
	}

	sessionID := b.newID()

	pctx, cancel := b.providerContext(ctx)
	defer cancel()

	checkout, err := gateway.CreateCheckout(pctx, gateways.CheckoutRequest{
		SessionID: sessionID,
		Amount:    in.Amount,
		Currency:  currency,
	})
	if err != nil {
		logGatewayFailure("creating", gatewayName, sessionID, err)
		return nil, gatewayError(err)
	}

	now := b.now()
	session := &models.PaymentSession{
		SessionID:           sessionID,
		UserID:              in.UserID,
		Gateway:             gatewayName,
		Amount:              in.Amount,
		Currency:            currency,
		ProviderReferenceID: checkout.ProviderReferenceID,
		Status:              models.PaymentStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := b.store.Put(ctx, session); err != nil {
		utils.LogError("Failed to store payment session %s: %v", sessionID, err)
		return nil, utils.InternalError("Failed to store payment session", err)
	}

	utils.LogInfo("Payment session created: %s gateway=%s user=%s amount=%.2f %s ref=%s",
		sessionID, gatewayName, in.UserID, in.Amount, currency, checkout.ProviderReferenceID)

	return &CreateSessionResult{
		SessionID:   sessionID,
		Gateway:     gatewayName,
		CheckoutURL: checkout.CheckoutURL,
	}, nil
}

// VerifySession re-queries the gateway and records the result. Status only moves
// PENDING to PAID; a later non-paid answer for a PAID session is ignored.
//
// Two verifies of the same session may query the gateway concurrently. Both
// writes go through the store's atomic Update and neither can undo PAID, so
// they converge.
func (b *PaymentBroker) VerifySession(ctx context.Context, sessionID string) (*VerifySessionResult, error) {
	if sessionID == "" {
		return nil, utils.BadRequestError("sessionId is required", nil)
	}

	existing, err := b.store.Get(ctx, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil, utils.NotFoundError("Session not found", err)
	}
	if err != nil {
		utils.LogError("Failed to load payment session %s: %v", sessionID, err)
		return nil, utils.InternalError("Failed to load payment session", err)
	}

	gateway, ok := b.gateways[existing.Gateway]
	if !ok {
		return nil, utils.ConfigurationError(&gateways.NotConfiguredError{Gateway: existing.Gateway, Missing: string(existing.Gateway) + " gateway"})
	}

	pctx, cancel := b.providerContext(ctx)
	defer cancel()

	status, err := gateway.CheckStatus(pctx, existing.ProviderReferenceID)
	if err != nil {
		logGatewayFailure("verifying", existing.Gateway, sessionID, err)
		return nil, gatewayError(err)
	}

	var becamePaid bool
	updated, err := b.store.Update(ctx, sessionID, func(s *models.PaymentSession) error {
		becamePaid = false
		if s.Status == models.PaymentStatusPaid || status != models.PaymentStatusPaid {
			return nil
		}
		now := b.now()
		s.Status = models.PaymentStatusPaid
		s.PaidAt = &now
		s.UpdatedAt = now
		becamePaid = true
		return nil
	})
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil, utils.NotFoundError("Session not found", err)
	}
	if err != nil {
		utils.LogError("Failed to update payment session %s: %v", sessionID, err)
		return nil, utils.InternalError("Failed to update payment session", err)
	}

	utils.LogInfo("Payment session verified: %s gateway=%s status=%s", sessionID, updated.Gateway, updated.Status)

	if becamePaid {
		utils.LogInfo("Payment session paid: %s gateway=%s amount=%.2f %s",
			sessionID, updated.Gateway, updated.Amount, updated.Currency)
		if b.notifier != nil {
			if err := b.notifier.NotifyPaid(ctx, updated); err != nil {
				utils.LogError("Failed to send paid notification for session %s: %v", sessionID, err)
			}
		}
	}

	return &VerifySessionResult{SessionID: sessionID, Status: updated.Status}, nil
}

// Providers reports, per gateway, whether its required configuration is present
func (b *PaymentBroker) Providers() map[string]bool {
	providers := map[string]bool{
		"razorpay": false,
		"stripe":   false,
	}
	for name, g := range b.gateways {
		providers[strings.ToLower(string(name))] = g.Configured()
	}
	return providers
}

// ListSessions returns stored sessions newest first
func (b *PaymentBroker) ListSessions(ctx context.Context, filter store.ListFilter) ([]models.PaymentSession, error) {
	sessions, err := b.store.List(ctx, filter)
	if err != nil {
		utils.LogError("Failed to list payment sessions: %v", err)
		return nil, utils.InternalError("Failed to list payment sessions", err)
	}
	return sessions, nil
}
