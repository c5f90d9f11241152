package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// ErrBadSignature is returned when a callback's signature does not verify.
// Callbacks with bad signatures must never touch payment state.
var ErrBadSignature = errors.New("payment callback signature mismatch")

// Client talks to the card payment provider. The integration is
// redirect-based: we send the customer to the provider with a signed order
// payload, and the provider notifies us server-to-server (IPN) with a signed
// result. Only the advance amount is ever charged online.
type Client struct {
	signatureKey string
	returnURL    string
}

func NewClient(signatureKey, returnURL string) *Client {
	return &Client{
		signatureKey: signatureKey,
		returnURL:    returnURL,
	}
}

// Redirect is the payload the frontend posts to the provider.
type Redirect struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

// CallbackResult is a verified, normalized provider notification.
type CallbackResult struct {
	OrderID     uuid.UUID
	Status      string
	ProviderRef string
}

const providerEndpoint = "https://secure.mobilpay.ro/order"

// BuildRedirect signs an order payload for the provider-hosted payment page.
// The redirect signature is scoped to the order fields only; it is handed to
// the customer's browser and must never validate an IPN.
func (c *Client) BuildRedirect(orderID uuid.UUID, amount float64, description string) Redirect {
	fields := map[string]string{
		"orderId":     orderID.String(),
		"amount":      fmt.Sprintf("%.2f", amount),
		"currency":    "RON",
		"description": description,
		"returnUrl":   c.returnURL,
	}
	fields["signature"] = c.sign("order", fields["orderId"], fields["amount"], fields["currency"])

	return Redirect{
		URL:    providerEndpoint,
		Fields: fields,
	}
}

// SignCallback stamps an IPN form with the server-to-server signature the
// way the provider does. Used by the sandbox simulator and tests.
func (c *Client) SignCallback(form url.Values) {
	form.Set("signature", c.ipnSignature(form))
}

// ParseCallback verifies the IPN signature and maps the provider action onto
// our payment-status vocabulary. The form carries orderId, action, an
// optional provider transaction reference and the signature. The signature
// covers the action and is computed in a separate scope from the redirect
// payload, so nothing the customer received at checkout can be replayed here.
func (c *Client) ParseCallback(form url.Values) (*CallbackResult, error) {
	orderID := form.Get("orderId")
	action := form.Get("action")
	ref := form.Get("ref")

	expected := c.ipnSignature(form)
	if !hmac.Equal([]byte(expected), []byte(form.Get("signature"))) {
		return nil, ErrBadSignature
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID in callback: %v", err)
	}

	return &CallbackResult{
		OrderID:     id,
		Status:      MapProviderAction(action),
		ProviderRef: ref,
	}, nil
}

// MapProviderAction translates the provider's action codes into the raw
// payment statuses stored on intents. Unknown actions are treated as errors
// so a booking is never confirmed on an unrecognized code.
func MapProviderAction(action string) string {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "confirmed", "paid_confirmed":
		return "confirmed"
	case "paid", "paid_pending", "processing":
		return "processing"
	case "pending":
		return "pending_payment"
	case "canceled", "cancelled":
		return "cancelled"
	case "expired":
		return "expired"
	case "declined", "rejected":
		return "declined"
	default:
		return "error"
	}
}

func (c *Client) ipnSignature(form url.Values) string {
	return c.sign("ipn",
		form.Get("orderId"),
		form.Get("amount"),
		form.Get("currency"),
		form.Get("action"),
		form.Get("ref"),
	)
}

// sign derives a scoped MAC. The scope keeps signatures from one context
// (merchant redirect) from verifying in another (provider IPN).
func (c *Client) sign(scope string, parts ...string) string {
	mac := hmac.New(sha256.New, []byte(c.signatureKey))
	mac.Write([]byte(scope + "|" + strings.Join(parts, "|")))
	return hex.EncodeToString(mac.Sum(nil))
}
