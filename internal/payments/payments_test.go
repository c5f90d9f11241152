package payments

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
)

func TestCallbackRoundTrip(t *testing.T) {
	client := NewClient("test-key", "http://localhost:3000/payment/result")
	orderID := uuid.New()

	redirect := client.BuildRedirect(orderID, 135, "Kayak trip")
	if redirect.Fields["amount"] != "135.00" {
		t.Errorf("amount = %q, expected 135.00", redirect.Fields["amount"])
	}
	if redirect.Fields["signature"] == "" {
		t.Fatal("redirect payload is missing a signature")
	}

	form := url.Values{}
	form.Set("orderId", orderID.String())
	form.Set("amount", "135.00")
	form.Set("currency", "RON")
	form.Set("action", "confirmed")
	form.Set("ref", "TXN-42")
	client.SignCallback(form)

	result, err := client.ParseCallback(form)
	if err != nil {
		t.Fatalf("ParseCallback failed: %v", err)
	}
	if result.OrderID != orderID {
		t.Errorf("order ID = %s, expected %s", result.OrderID, orderID)
	}
	if result.Status != "confirmed" {
		t.Errorf("status = %q, expected confirmed", result.Status)
	}
	if result.ProviderRef != "TXN-42" {
		t.Errorf("provider ref = %q, expected TXN-42", result.ProviderRef)
	}
}

// The redirect payload is handed to the customer's browser. Replaying its
// signature against the IPN endpoint with a chosen action must never verify.
func TestParseCallbackRejectsReplayedRedirectSignature(t *testing.T) {
	client := NewClient("test-key", "http://localhost:3000/payment/result")
	redirect := client.BuildRedirect(uuid.New(), 135, "Kayak trip")

	form := url.Values{}
	form.Set("orderId", redirect.Fields["orderId"])
	form.Set("amount", redirect.Fields["amount"])
	form.Set("currency", redirect.Fields["currency"])
	form.Set("signature", redirect.Fields["signature"])
	form.Set("action", "confirmed")

	if _, err := client.ParseCallback(form); err != ErrBadSignature {
		t.Errorf("expected ErrBadSignature for replayed redirect payload, got %v", err)
	}
}

// Flipping the action after signing must invalidate the signature.
func TestParseCallbackRejectsTamperedAction(t *testing.T) {
	client := NewClient("test-key", "http://localhost:3000/payment/result")

	form := url.Values{}
	form.Set("orderId", uuid.New().String())
	form.Set("amount", "135.00")
	form.Set("currency", "RON")
	form.Set("action", "declined")
	form.Set("ref", "TXN-42")
	client.SignCallback(form)
	form.Set("action", "confirmed")

	if _, err := client.ParseCallback(form); err != ErrBadSignature {
		t.Errorf("expected ErrBadSignature for tampered action, got %v", err)
	}
}

func TestParseCallbackRejectsBadSignature(t *testing.T) {
	client := NewClient("test-key", "http://localhost:3000/payment/result")

	form := url.Values{}
	form.Set("orderId", uuid.New().String())
	form.Set("amount", "100.00")
	form.Set("currency", "RON")
	form.Set("signature", "forged")
	form.Set("action", "confirmed")

	if _, err := client.ParseCallback(form); err != ErrBadSignature {
		t.Errorf("expected ErrBadSignature, got %v", err)
	}
}

func TestParseCallbackRejectsOtherKey(t *testing.T) {
	form := url.Values{}
	form.Set("orderId", uuid.New().String())
	form.Set("amount", "50.00")
	form.Set("currency", "RON")
	form.Set("action", "confirmed")
	NewClient("key-a", "http://x").SignCallback(form)

	if _, err := NewClient("key-b", "http://x").ParseCallback(form); err != ErrBadSignature {
		t.Errorf("expected ErrBadSignature across keys, got %v", err)
	}
}

func TestMapProviderAction(t *testing.T) {
	cases := map[string]string{
		"confirmed":    "confirmed",
		"CONFIRMED":    "confirmed",
		"paid":         "processing",
		"paid_pending": "processing",
		"pending":      "pending_payment",
		"canceled":     "cancelled",
		"cancelled":    "cancelled",
		"expired":      "expired",
		"declined":     "declined",
		"gibberish":    "error",
		"":             "error",
	}
	for action, expected := range cases {
		if got := MapProviderAction(action); got != expected {
			t.Errorf("MapProviderAction(%q) = %q, expected %q", action, got, expected)
		}
	}
}
