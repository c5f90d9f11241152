package models

import "testing"

func TestNormalizeStatusMapping(t *testing.T) {
	cases := map[string]BookingStatus{
		"confirmed":             StatusConfirmed,
		"payment_confirmed":     StatusConfirmed,
		"CONFIRMED":             StatusConfirmed,
		"  confirmed  ":         StatusConfirmed,
		"pending":               StatusPending,
		"awaiting confirmation": StatusPending,
		"Awaiting Confirmation": StatusPending,
		"pending_payment":       StatusPendingPayment,
		"processing":            StatusPendingPayment,
		"declined":              StatusDeclined,
		"expired":               StatusDeclined,
		"error":                 StatusDeclined,
		"cancelled":             StatusCancelled,
		"completed":             StatusCompleted,
		"":                      StatusUnknown,
		"something-else":        StatusUnknown,
	}

	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, expected %q", raw, got, want)
		}
	}
}

func TestNormalizeStatusIdempotent(t *testing.T) {
	canonical := []BookingStatus{
		StatusConfirmed, StatusPending, StatusPendingPayment,
		StatusDeclined, StatusCancelled, StatusCompleted,
	}
	for _, s := range canonical {
		if got := NormalizeStatus(string(s)); got != s {
			t.Errorf("NormalizeStatus(%q) = %q, canonical values must map to themselves", s, got)
		}
	}
}

func TestBadgeColors(t *testing.T) {
	cases := map[BookingStatus]string{
		StatusConfirmed:      "green",
		StatusPending:        "yellow",
		StatusPendingPayment: "blue",
		StatusDeclined:       "red",
		StatusCancelled:      "red",
		StatusCompleted:      "blue",
		StatusUnknown:        "gray",
	}
	for status, want := range cases {
		if got := status.BadgeColor(); got != want {
			t.Errorf("%q badge = %q, expected %q", status, got, want)
		}
	}
}

func TestNewStatusViewKeepsRawValue(t *testing.T) {
	v := NewStatusView("awaiting confirmation")
	if v.Status != StatusPending {
		t.Errorf("status = %q, expected pending", v.Status)
	}
	if v.Raw != "awaiting confirmation" {
		t.Errorf("raw = %q, must be preserved for audit display", v.Raw)
	}
	if v.Color != "yellow" {
		t.Errorf("color = %q, expected yellow", v.Color)
	}
}
