package gateways

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Govind-619/quickcart-payments/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentLinks struct {
	created   map[string]interface{}
	createRes map[string]interface{}
	createErr error
	fetchedID string
	fetchRes  map[string]interface{}
	fetchErr  error
	block     chan struct{}
}

func (f *fakePaymentLinks) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	if f.block != nil {
		<-f.block
	}
	f.created = data
	return f.createRes, f.createErr
}

func (f *fakePaymentLinks) Fetch(id string, _ map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.fetchedID = id
	return f.fetchRes, f.fetchErr
}

func newTestRazorpay(links *fakePaymentLinks) *RazorpayGateway {
	return &RazorpayGateway{keyID: "rzp_test", keySecret: "secret", links: links}
}

func TestRazorpayCreateCheckout(t *testing.T) {
	links := &fakePaymentLinks{createRes: map[string]interface{}{
		"id":        "plink_123",
		"short_url": "https://rzp.io/i/abc",
	}}
	g := newTestRazorpay(links)

	checkout, err := g.CreateCheckout(context.Background(), CheckoutRequest{SessionID: "s-1", Amount: 250, Currency: "inr"})
	require.NoError(t, err)

	assert.Equal(t, "plink_123", checkout.ProviderReferenceID)
	assert.Equal(t, "https://rzp.io/i/abc", checkout.CheckoutURL)
	assert.Equal(t, int64(25000), links.created["amount"])
	assert.Equal(t, "INR", links.created["currency"])
	assert.Equal(t, "s-1", links.created["reference_id"])
	assert.Equal(t, "QuickCart order payment (s-1)", links.created["description"])
}

func TestRazorpayRoundsMinorUnits(t *testing.T) {
	links := &fakePaymentLinks{createRes: map[string]interface{}{"id": "plink_1"}}
	g := newTestRazorpay(links)

	_, err := g.CreateCheckout(context.Background(), CheckoutRequest{SessionID: "s", Amount: 19.999, Currency: "INR"})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), links.created["amount"])
}

func TestFitsMinorUnits(t *testing.T) {
	assert.True(t, FitsMinorUnits(250))
	assert.True(t, FitsMinorUnits(9e16))
	assert.False(t, FitsMinorUnits(1e17))
	assert.False(t, FitsMinorUnits(-1e17))
	assert.False(t, FitsMinorUnits(math.Inf(1)))
	assert.False(t, FitsMinorUnits(math.NaN()))
}

func TestRazorpayNotConfigured(t *testing.T) {
	g := NewRazorpayGateway("rzp_test", "")
	assert.False(t, g.Configured())

	_, err := g.CreateCheckout(context.Background(), CheckoutRequest{SessionID: "s", Amount: 1, Currency: "INR"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "Missing RAZORPAY_KEY_ID/RAZORPAY_KEY_SECRET", err.Error())

	_, err = g.CheckStatus(context.Background(), "plink_1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRazorpayProviderError(t *testing.T) {
	links := &fakePaymentLinks{createErr: errors.New("The amount must be atleast INR 1.00")}
	g := newTestRazorpay(links)

	_, err := g.CreateCheckout(context.Background(), CheckoutRequest{SessionID: "s", Amount: 0.5, Currency: "INR"})
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, models.GatewayRazorpay, pe.Gateway)
	assert.Equal(t, "The amount must be atleast INR 1.00", pe.Error())
	assert.NotErrorIs(t, err, ErrNotConfigured)
}

func TestRazorpayMissingLinkID(t *testing.T) {
	g := newTestRazorpay(&fakePaymentLinks{createRes: map[string]interface{}{}})

	_, err := g.CreateCheckout(context.Background(), CheckoutRequest{SessionID: "s", Amount: 1, Currency: "INR"})
	var pe *ProviderError
	assert.ErrorAs(t, err, &pe)
}

func TestRazorpayCheckStatus(t *testing.T) {
	tests := []struct {
		name   string
		status interface{}
		want   models.PaymentStatus
	}{
		{"paid", "paid", models.PaymentStatusPaid},
		{"uppercase paid", "PAID", models.PaymentStatusPaid},
		{"created", "created", models.PaymentStatusPending},
		{"partially paid", "partially_paid", models.PaymentStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := &fakePaymentLinks{fetchRes: map[string]interface{}{"id": "plink_9", "status": tt.status}}
			g := newTestRazorpay(links)

			got, err := g.CheckStatus(context.Background(), "plink_9")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "plink_9", links.fetchedID)
		})
	}
}

func TestRazorpayCheckStatusRejectsEmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		res  map[string]interface{}
	}{
		{"empty", map[string]interface{}{}},
		{"missing status", map[string]interface{}{"id": "plink_9"}},
		{"missing id", map[string]interface{}{"status": "paid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestRazorpay(&fakePaymentLinks{fetchRes: tt.res})

			status, err := g.CheckStatus(context.Background(), "plink_9")
			var pe *ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Empty(t, status)
		})
	}
}

func TestRazorpayHonoursContextDeadline(t *testing.T) {
	links := &fakePaymentLinks{block: make(chan struct{}), createRes: map[string]interface{}{"id": "x"}}
	defer close(links.block)
	g := newTestRazorpay(links)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := g.CreateCheckout(ctx, CheckoutRequest{SessionID: "s", Amount: 1, Currency: "INR"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
