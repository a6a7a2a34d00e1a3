package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Govind-619/quickcart-payments/models"
	razorpay "github.com/razorpay/razorpay-go"
	rzperrors "github.com/razorpay/razorpay-go/errors"
)

// paymentLinkAPI is the subset of razorpay-go's PaymentLink resource the adapter uses
type paymentLinkAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Fetch(paymentLinkID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayGateway creates Razorpay payment links and reads back their status
type RazorpayGateway struct {
	keyID     string
	keySecret string
	links     paymentLinkAPI
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	g := &RazorpayGateway{keyID: keyID, keySecret: keySecret}
	if g.Configured() {
		client := razorpay.NewClient(keyID, keySecret)
		req := client.PaymentLink.Request
		req.HTTPClient = &http.Client{
			Timeout:   req.HTTPClient.Timeout,
			Transport: &razorpayErrorTransport{base: http.DefaultTransport},
		}
		g.links = client.PaymentLink
	}
	return g
}

func (g *RazorpayGateway) Name() models.Gateway {
	return models.GatewayRazorpay
}

func (g *RazorpayGateway) Configured() bool {
	return g.keyID != "" && g.keySecret != ""
}

func (g *RazorpayGateway) checkConfigured() error {
	if !g.Configured() || g.links == nil {
		return &NotConfiguredError{Gateway: models.GatewayRazorpay, Missing: "RAZORPAY_KEY_ID/RAZORPAY_KEY_SECRET"}
	}
	return nil
}

func (g *RazorpayGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	if err := g.checkConfigured(); err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"amount":       ToMinorUnits(req.Amount),
		"currency":     strings.ToUpper(req.Currency),
		"reference_id": req.SessionID,
		"description":  fmt.Sprintf("QuickCart order payment (%s)", req.SessionID),
	}

	link, err := callWithContext(ctx, func() (map[string]interface{}, error) {
		return g.links.Create(data, nil)
	})
	if err != nil {
		return nil, newProviderError(models.GatewayRazorpay, err)
	}

	id, _ := link["id"].(string)
	shortURL, _ := link["short_url"].(string)
	if id == "" {
		return nil, &ProviderError{Gateway: models.GatewayRazorpay, Message: "Razorpay response did not include a payment link id"}
	}

	return &Checkout{ProviderReferenceID: id, CheckoutURL: shortURL}, nil
}

func (g *RazorpayGateway) CheckStatus(ctx context.Context, paymentLinkID string) (models.PaymentStatus, error) {
	if err := g.checkConfigured(); err != nil {
		return "", err
	}

	link, err := callWithContext(ctx, func() (map[string]interface{}, error) {
		return g.links.Fetch(paymentLinkID, nil, nil)
	})
	if err != nil {
		return "", newProviderError(models.GatewayRazorpay, err)
	}

	id, _ := link["id"].(string)
	status, _ := link["status"].(string)
	if id == "" || status == "" {
		return "", &ProviderError{Gateway: models.GatewayRazorpay, Message: "Razorpay response did not include a payment link status"}
	}
	if strings.ToLower(status) == "paid" {
		return models.PaymentStatusPaid, nil
	}
	return models.PaymentStatusPending, nil
}

type linkResult struct {
	link map[string]interface{}
	err  error
}

// callWithContext bounds a razorpay-go call, which takes no context, by ctx.
// An abandoned call finishes in the background under the SDK's own client timeout.
func callWithContext(ctx context.Context, call func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	done := make(chan linkResult, 1)
	go func() {
		link, err := call()
		done <- linkResult{link: link, err: err}
	}()

	select {
	case res := <-done:
		return res.link, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// razorpayErrorTransport turns non-2xx Razorpay responses into a ProviderError
// carrying error.description. razorpay-go swallows BAD_REQUEST_ERROR bodies and
// returns an empty map with a nil error, so the SDK never sees these responses.
type razorpayErrorTransport struct {
	base http.RoundTripper
}

func (t *razorpayErrorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || (resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		return resp, err
	}
	defer resp.Body.Close()

	var body rzperrors.RZPErrorJSON
	// an undecodable body leaves Description empty
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body)

	return nil, &ProviderError{
		Gateway: models.GatewayRazorpay,
		Message: body.ErrorData.Description,
		Err:     fmt.Errorf("razorpay: HTTP %d %s", resp.StatusCode, body.ErrorData.Code),
	}
}
