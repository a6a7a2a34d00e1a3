package gateways

import (
	"context"
	"errors"
	"testing"

	"github.com/Govind-619/quickcart-payments/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type fakeCheckoutSessions struct {
	newParams *stripe.CheckoutSessionParams
	newRes    *stripe.CheckoutSession
	newErr    error
	gotID     string
	getRes    *stripe.CheckoutSession
	getErr    error
}

func (f *fakeCheckoutSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.newParams = params
	return f.newRes, f.newErr
}

func (f *fakeCheckoutSessions) Get(id string, _ *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.gotID = id
	return f.getRes, f.getErr
}

func newTestStripe(sessions *fakeCheckoutSessions) *StripeGateway {
	return &StripeGateway{
		cfg: StripeConfig{
			SecretKey:  "sk_test",
			SuccessURL: "https://quickcart.example/success",
			CancelURL:  "https://quickcart.example/cancel",
		},
		sessions: sessions,
	}
}

func TestStripeCreateCheckout(t *testing.T) {
	sessions := &fakeCheckoutSessions{newRes: &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}}
	g := newTestStripe(sessions)

	checkout, err := g.CreateCheckout(context.Background(), CheckoutRequest{SessionID: "s-1", Amount: 12.5, Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", checkout.ProviderReferenceID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", checkout.CheckoutURL)

	p := sessions.newParams
	require.NotNil(t, p)
	assert.Equal(t, "payment", *p.Mode)
	assert.Equal(t, "https://quickcart.example/success", *p.SuccessURL)
	assert.Equal(t, "https://quickcart.example/cancel", *p.CancelURL)
	assert.Equal(t, "s-1", p.Metadata["appSessionId"])
	require.Len(t, p.LineItems, 1)
	item := p.LineItems[0]
	assert.Equal(t, int64(1), *item.Quantity)
	assert.Equal(t, "usd", *item.PriceData.Currency)
	assert.Equal(t, int64(1250), *item.PriceData.UnitAmount)
	assert.Equal(t, "QuickCart Order", *item.PriceData.ProductData.Name)
}

func TestStripeNotConfigured(t *testing.T) {
	g := NewStripeGateway(StripeConfig{})
	assert.False(t, g.Configured())

	_, err := g.CreateCheckout(context.Background(), CheckoutRequest{SessionID: "s", Amount: 1, Currency: "USD"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "Missing STRIPE_SECRET_KEY", err.Error())

	_, err = g.CheckStatus(context.Background(), "cs_1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStripeMissingRedirectURLs(t *testing.T) {
	sessions := &fakeCheckoutSessions{}
	g := newTestStripe(sessions)
	g.cfg.CancelURL = ""

	assert.True(t, g.Configured())
	_, err := g.CreateCheckout(context.Background(), CheckoutRequest{SessionID: "s", Amount: 1, Currency: "USD"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "Missing STRIPE_SUCCESS_URL/STRIPE_CANCEL_URL", err.Error())
	assert.Nil(t, sessions.newParams)
}

func TestStripeProviderErrorMessage(t *testing.T) {
	sessions := &fakeCheckoutSessions{newErr: &stripe.Error{Msg: "Invalid currency: xyz"}}
	g := newTestStripe(sessions)

	_, err := g.CreateCheckout(context.Background(), CheckoutRequest{SessionID: "s", Amount: 1, Currency: "xyz"})
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Invalid currency: xyz", pe.Error())
	assert.Equal(t, models.GatewayStripe, pe.Gateway)
}

func TestStripeProviderErrorFallback(t *testing.T) {
	sessions := &fakeCheckoutSessions{getErr: &stripe.Error{}}
	g := newTestStripe(sessions)

	_, err := g.CheckStatus(context.Background(), "cs_1")
	require.Error(t, err)
	assert.Equal(t, "Unknown server error", err.Error())

	sessions.getErr = errors.New("connection reset by peer")
	_, err = g.CheckStatus(context.Background(), "cs_1")
	assert.Equal(t, "connection reset by peer", err.Error())
}

func TestStripeCheckStatus(t *testing.T) {
	sessions := &fakeCheckoutSessions{getRes: &stripe.CheckoutSession{PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid}}
	g := newTestStripe(sessions)

	status, err := g.CheckStatus(context.Background(), "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, status)
	assert.Equal(t, "cs_test_1", sessions.gotID)

	sessions.getRes = &stripe.CheckoutSession{PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid}
	status, err = g.CheckStatus(context.Background(), "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, status)
}
