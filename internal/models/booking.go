package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/pricing"
	"github.com/kornnellio/adventuretime-sub001/internal/schedule"
)

// PaymentIntent is the provisional booking record created at checkout,
// before the payment provider has answered. The phone number is collected
// just-in-time, after the intent exists but before the redirect. Once the
// provider confirms, a durable Booking is created and the intent is
// superseded in listings.
type PaymentIntent struct {
	ID             uuid.UUID               `bson:"id" json:"id"`
	AdventureID    uuid.UUID               `bson:"adventureId" json:"adventureId"`
	AdventureTitle string                  `bson:"adventureTitle" json:"adventureTitle"`
	UserID         uuid.UUID               `bson:"userId" json:"userId"`
	Selection      pricing.VesselSelection `bson:"selection" json:"selection"`
	DateRange      schedule.DateRange      `bson:"dateRange" json:"dateRange"`
	Coupon         *pricing.AppliedCoupon  `bson:"coupon,omitempty" json:"coupon,omitempty"`
	Pricing        pricing.Summary         `bson:"pricing" json:"pricing"`
	Phone          string                  `bson:"phone,omitempty" json:"phone,omitempty"`
	PaymentStatus  string                  `bson:"paymentStatus" json:"paymentStatus"`
	ProviderRef    string                  `bson:"providerRef,omitempty" json:"providerRef,omitempty"`
	CreatedAt      time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time               `bson:"updatedAt" json:"updatedAt"`
}

// Booking is the durable reservation created once payment is confirmed.
// Status is stored raw; presentation goes through NormalizeStatus.
type Booking struct {
	ID             uuid.UUID               `bson:"id" json:"id"`
	IntentID       uuid.UUID               `bson:"intentId" json:"intentId"`
	AdventureID    uuid.UUID               `bson:"adventureId" json:"adventureId"`
	AdventureTitle string                  `bson:"adventureTitle" json:"adventureTitle"`
	UserID         uuid.UUID               `bson:"userId" json:"userId"`
	Selection      pricing.VesselSelection `bson:"selection" json:"selection"`
	DateRange      schedule.DateRange      `bson:"dateRange" json:"dateRange"`
	Coupon         *pricing.AppliedCoupon  `bson:"coupon,omitempty" json:"coupon,omitempty"`
	Pricing        pricing.Summary         `bson:"pricing" json:"pricing"`
	Phone          string                  `bson:"phone,omitempty" json:"phone,omitempty"`
	Status         string                  `bson:"status" json:"status"`
	CreatedAt      time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time               `bson:"updatedAt" json:"updatedAt"`
}

// BookingView is a booking or intent prepared for presentation: the raw
// status is kept for audit display, the canonical status drives the badge.
type BookingView struct {
	ID             uuid.UUID               `json:"id"`
	Kind           string                  `json:"kind"` // "booking" or "intent"
	AdventureID    uuid.UUID               `json:"adventureId"`
	AdventureTitle string                  `json:"adventureTitle"`
	Selection      pricing.VesselSelection `json:"selection"`
	DateRange      schedule.DateRange      `json:"dateRange"`
	Pricing        pricing.Summary         `json:"pricing"`
	Status         StatusView              `json:"status"`
	CreatedAt      time.Time               `json:"createdAt"`
}

func (b *Booking) View() BookingView {
	return BookingView{
		ID:             b.ID,
		Kind:           "booking",
		AdventureID:    b.AdventureID,
		AdventureTitle: b.AdventureTitle,
		Selection:      b.Selection,
		DateRange:      b.DateRange,
		Pricing:        b.Pricing,
		Status:         NewStatusView(b.Status),
		CreatedAt:      b.CreatedAt,
	}
}

func (pi *PaymentIntent) View() BookingView {
	return BookingView{
		ID:             pi.ID,
		Kind:           "intent",
		AdventureID:    pi.AdventureID,
		AdventureTitle: pi.AdventureTitle,
		Selection:      pi.Selection,
		DateRange:      pi.DateRange,
		Pricing:        pi.Pricing,
		Status:         NewStatusView(pi.PaymentStatus),
		CreatedAt:      pi.CreatedAt,
	}
}

// Order is the denormalized purchase record kept on the user document for
// admin display. It mirrors booking fields but is never the pricing source
// of truth.
type Order struct {
	BookingID      uuid.UUID       `bson:"bookingId" json:"bookingId"`
	AdventureTitle string          `bson:"adventureTitle" json:"adventureTitle"`
	Pricing        pricing.Summary `bson:"pricing" json:"pricing"`
	Status         string          `bson:"status" json:"status"`
	PlacedAt       time.Time       `bson:"placedAt" json:"placedAt"`
}
