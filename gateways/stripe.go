package gateways

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Govind-619/quickcart-payments/models"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const stripeProductName = "QuickCart Order"

// checkoutSessionAPI is the subset of stripe-go's checkout session client the adapter uses
type checkoutSessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeConfig holds the Stripe credentials and redirect URLs
type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
	Timeout    time.Duration
}

// StripeGateway creates hosted Stripe checkout sessions and reads back their payment status
type StripeGateway struct {
	cfg      StripeConfig
	sessions checkoutSessionAPI
}

func NewStripeGateway(cfg StripeConfig) *StripeGateway {
	g := &StripeGateway{cfg: cfg}
	if g.Configured() {
		httpClient := &http.Client{Timeout: cfg.Timeout}
		backends := &stripe.Backends{
			API:     stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{HTTPClient: httpClient}),
			Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, &stripe.BackendConfig{HTTPClient: httpClient}),
			Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, &stripe.BackendConfig{HTTPClient: httpClient}),
		}
		g.sessions = client.New(cfg.SecretKey, backends).CheckoutSessions
	}
	return g
}

func (g *StripeGateway) Name() models.Gateway {
	return models.GatewayStripe
}

func (g *StripeGateway) Configured() bool {
	return g.cfg.SecretKey != ""
}

func (g *StripeGateway) checkConfigured() error {
	if !g.Configured() || g.sessions == nil {
		return &NotConfiguredError{Gateway: models.GatewayStripe, Missing: "STRIPE_SECRET_KEY"}
	}
	return nil
}

func (g *StripeGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	if err := g.checkConfigured(); err != nil {
		return nil, err
	}
	if g.cfg.SuccessURL == "" || g.cfg.CancelURL == "" {
		return nil, &NotConfiguredError{Gateway: models.GatewayStripe, Missing: "STRIPE_SUCCESS_URL/STRIPE_CANCEL_URL"}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.cfg.SuccessURL),
		CancelURL:  stripe.String(g.cfg.CancelURL),
		Metadata:   map[string]string{"appSessionId": req.SessionID},
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(ToMinorUnits(req.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(stripeProductName),
					},
				},
			},
		},
	}
	params.Context = ctx

	session, err := g.sessions.New(params)
	if err != nil {
		return nil, stripeProviderError(err)
	}

	return &Checkout{ProviderReferenceID: session.ID, CheckoutURL: session.URL}, nil
}

func (g *StripeGateway) CheckStatus(ctx context.Context, checkoutSessionID string) (models.PaymentStatus, error) {
	if err := g.checkConfigured(); err != nil {
		return "", err
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.sessions.Get(checkoutSessionID, params)
	if err != nil {
		return "", stripeProviderError(err)
	}

	if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		return models.PaymentStatusPaid, nil
	}
	return models.PaymentStatusPending, nil
}

// stripe.Error marshals itself to JSON in Error(); the human readable part is Msg
func stripeProviderError(err error) *ProviderError {
	var se *stripe.Error
	if errors.As(err, &se) {
		return &ProviderError{Gateway: models.GatewayStripe, Message: se.Msg, Err: err}
	}
	return newProviderError(models.GatewayStripe, err)
}
