package models

import (
	"log/slog"
	"strings"
)

// BookingStatus is the canonical, presentation-facing status. Persisted
// records carry a much looser vocabulary (two overlapping sets between
// bookings and payment intents, inconsistent casing, even embedded spaces);
// everything is collapsed through NormalizeStatus before any UI branching.
type BookingStatus string

const (
	StatusConfirmed      BookingStatus = "confirmed"
	StatusPending        BookingStatus = "pending"
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusDeclined       BookingStatus = "declined"
	StatusCancelled      BookingStatus = "cancelled"
	StatusCompleted      BookingStatus = "completed"
	StatusUnknown        BookingStatus = "unknown"
)

// NormalizeStatus maps a raw persisted status string to its canonical
// status. First match wins. The substring check on "awaiting" is deliberate:
// the literal value "awaiting confirmation" (with a space) exists in old
// records. Normalizing an already-canonical value returns it unchanged.
func NormalizeStatus(raw string) BookingStatus {
	s := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case s == "confirmed" || s == "payment_confirmed":
		return StatusConfirmed
	case s == "pending" || strings.Contains(s, "awaiting"):
		return StatusPending
	case s == "pending_payment" || s == "processing":
		return StatusPendingPayment
	case s == "declined" || s == "expired" || s == "error":
		return StatusDeclined
	case s == "cancelled":
		return StatusCancelled
	case s == "completed":
		return StatusCompleted
	default:
		slog.Warn("unrecognized booking status", "raw", raw)
		return StatusUnknown
	}
}

// BadgeColor returns the UI badge colour for a canonical status.
func (s BookingStatus) BadgeColor() string {
	switch s {
	case StatusConfirmed:
		return "green"
	case StatusPending:
		return "yellow"
	case StatusPendingPayment, StatusCompleted:
		return "blue"
	case StatusDeclined, StatusCancelled:
		return "red"
	default:
		return "gray"
	}
}

// StatusView pairs the canonical status with the raw value it came from, so
// admin screens can still show what is actually persisted.
type StatusView struct {
	Status BookingStatus `json:"status"`
	Raw    string        `json:"rawStatus"`
	Color  string        `json:"color"`
}

func NewStatusView(raw string) StatusView {
	normalized := NormalizeStatus(raw)
	return StatusView{Status: normalized, Raw: raw, Color: normalized.BadgeColor()}
}
