package pricing

import "math"

// DefaultAdvancePercentage is applied when an adventure does not configure
// its own advance-payment split.
const DefaultAdvancePercentage = 30

// VesselSelection maps each vessel type to the number of units chosen for a
// booking. The bson/json keys are the legacy field names used by the store
// and the frontend; they must not change.
type VesselSelection struct {
	SingleKayaks int `json:"caiacSingle" bson:"caiacSingle" validate:"min=0"`
	DoubleKayaks int `json:"caiacDublu" bson:"caiacDublu" validate:"min=0"`
	SUPBoards    int `json:"placaSUP" bson:"placaSUP" validate:"min=0"`
}

// Units returns the total number of vessels selected.
func (s VesselSelection) Units() int {
	return s.SingleKayaks + s.DoubleKayaks + s.SUPBoards
}

// People returns the number of person-slots occupied. A double kayak seats
// two; everything else seats one.
func (s VesselSelection) People() int {
	return s.SingleKayaks + s.DoubleKayaks*2 + s.SUPBoards
}

// IsEmpty reports whether no units are selected. Checkout is blocked on an
// empty selection.
func (s VesselSelection) IsEmpty() bool {
	return s.Units() == 0
}

// DiscountKind is the coupon discount model.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// AppliedCoupon carries just what pricing needs from a validated coupon.
type AppliedCoupon struct {
	Code  string       `json:"code" bson:"code"`
	Kind  DiscountKind `json:"type" bson:"type"`
	Value float64      `json:"value" bson:"value"`
}

// Summary is the full price breakdown returned to the booking flow.
type Summary struct {
	BasePrice       float64 `json:"basePrice" bson:"basePrice"`
	Discount        float64 `json:"discount" bson:"discount"`
	TotalPrice      float64 `json:"totalPrice" bson:"totalPrice"`
	AdvancePayment  float64 `json:"advancePaymentAmount" bson:"advancePaymentAmount"`
	RemainingAmount float64 `json:"remainingAmount" bson:"remainingAmount"`
	TotalPeople     int     `json:"totalPeople" bson:"totalPeople"`
}

// BasePrice computes the undiscounted price for a selection at the given
// per-person rate. Doubles are billed at twice the rate; no rounding here.
func BasePrice(rate float64, sel VesselSelection) float64 {
	return float64(sel.SingleKayaks)*rate + float64(sel.DoubleKayaks)*rate*2 + float64(sel.SUPBoards)*rate
}

// Discount computes the coupon discount against basePrice. Percentage
// coupons round to the nearest unit; fixed coupons are capped at basePrice
// so the remaining total never goes negative.
func Discount(kind DiscountKind, value, basePrice float64) float64 {
	if basePrice <= 0 || value <= 0 {
		return 0
	}
	switch kind {
	case DiscountPercentage:
		d := math.Round(basePrice * value / 100)
		if d > basePrice {
			return basePrice
		}
		return d
	case DiscountFixed:
		return math.Min(value, basePrice)
	default:
		return 0
	}
}

// Split derives the upfront-payable amount and the cash-on-day remainder
// from the advance-payment percentage. A non-positive or out-of-range
// percentage falls back to DefaultAdvancePercentage.
func Split(totalPrice float64, advancePct int) (advance, remaining float64) {
	if totalPrice <= 0 {
		return 0, 0
	}
	if advancePct <= 0 || advancePct > 100 {
		advancePct = DefaultAdvancePercentage
	}
	advance = math.Round(totalPrice * float64(advancePct) / 100)
	remaining = math.Round(totalPrice - advance)
	return advance, remaining
}

// Quote produces the complete pricing summary for a selection. The coupon
// discount is always re-derived from the current base price, never carried
// over from a previous quote.
func Quote(rate float64, sel VesselSelection, coupon *AppliedCoupon, advancePct int) Summary {
	base := BasePrice(rate, sel)

	var discount float64
	if coupon != nil {
		discount = Discount(coupon.Kind, coupon.Value, base)
	}

	total := base - discount
	if total < 0 {
		total = 0
	}

	advance, remaining := Split(total, advancePct)

	return Summary{
		BasePrice:       base,
		Discount:        discount,
		TotalPrice:      total,
		AdvancePayment:  advance,
		RemainingAmount: remaining,
		TotalPeople:     sel.People(),
	}
}
