package pricing

import "testing"

func TestBasePriceAndPeople(t *testing.T) {
	// 2 singles + 1 double at rate 100 -> 200 + 200 = 400, 4 people
	sel := VesselSelection{SingleKayaks: 2, DoubleKayaks: 1, SUPBoards: 0}

	if got := BasePrice(100, sel); got != 400 {
		t.Errorf("BasePrice = %v, expected 400", got)
	}
	if got := sel.People(); got != 4 {
		t.Errorf("People = %v, expected 4", got)
	}
	if sel.IsEmpty() {
		t.Error("selection with units should not be empty")
	}
}

func TestBasePriceNeverNegative(t *testing.T) {
	counts := []VesselSelection{
		{},
		{SingleKayaks: 1},
		{DoubleKayaks: 3},
		{SUPBoards: 5},
		{SingleKayaks: 2, DoubleKayaks: 2, SUPBoards: 2},
	}
	for _, sel := range counts {
		if got := BasePrice(150, sel); got < 0 {
			t.Errorf("BasePrice(%+v) = %v, must never be negative", sel, got)
		}
	}
}

func TestEmptySelection(t *testing.T) {
	sel := VesselSelection{}
	if !sel.IsEmpty() {
		t.Error("zero selection should be empty")
	}
	if got := BasePrice(100, sel); got != 0 {
		t.Errorf("BasePrice of empty selection = %v, expected 0", got)
	}
}

func TestPercentageDiscount(t *testing.T) {
	// 20% off 400 -> 80
	if got := Discount(DiscountPercentage, 20, 400); got != 80 {
		t.Errorf("Discount = %v, expected 80", got)
	}
}

func TestPercentageDiscountBounds(t *testing.T) {
	for _, value := range []float64{0, 10, 50, 100, 150} {
		got := Discount(DiscountPercentage, value, 400)
		if got < 0 || got > 400 {
			t.Errorf("Discount(percentage, %v, 400) = %v, out of [0, basePrice]", value, got)
		}
	}
}

func TestFixedDiscountCappedAtBasePrice(t *testing.T) {
	if got := Discount(DiscountFixed, 50, 400); got != 50 {
		t.Errorf("Discount = %v, expected 50", got)
	}
	// fixed value above base price is capped
	if got := Discount(DiscountFixed, 1000, 400); got != 400 {
		t.Errorf("Discount = %v, expected 400", got)
	}
}

func TestDiscountOnZeroBase(t *testing.T) {
	if got := Discount(DiscountPercentage, 20, 0); got != 0 {
		t.Errorf("Discount on zero base = %v, expected 0", got)
	}
	if got := Discount(DiscountFixed, 50, 0); got != 0 {
		t.Errorf("Discount on zero base = %v, expected 0", got)
	}
}

func TestSplit(t *testing.T) {
	// 30% of 320 -> 96 up front, 224 on the day
	advance, remaining := Split(320, 30)
	if advance != 96 {
		t.Errorf("advance = %v, expected 96", advance)
	}
	if remaining != 224 {
		t.Errorf("remaining = %v, expected 224", remaining)
	}
}

func TestSplitDefaultsPercentage(t *testing.T) {
	advance, _ := Split(100, 0)
	if advance != 30 {
		t.Errorf("advance with missing percentage = %v, expected default 30%%", advance)
	}
	advance, _ = Split(100, 130)
	if advance != 30 {
		t.Errorf("advance with out-of-range percentage = %v, expected default 30%%", advance)
	}
}

func TestSplitSumsToTotal(t *testing.T) {
	for _, total := range []float64{1, 99, 320, 333, 1001.5} {
		for _, pct := range []int{10, 30, 33, 50, 100} {
			advance, remaining := Split(total, pct)
			diff := advance + remaining - total
			if diff < -1 || diff > 1 {
				t.Errorf("Split(%v, %v): advance+remaining = %v, drifts more than 1 from total",
					total, pct, advance+remaining)
			}
		}
	}
}

func TestQuoteScenario(t *testing.T) {
	// scenario: 2 singles + 1 double at 100/person, 20%% coupon, 30%% advance
	sel := VesselSelection{SingleKayaks: 2, DoubleKayaks: 1}
	coupon := &AppliedCoupon{Code: "VARA20", Kind: DiscountPercentage, Value: 20}

	s := Quote(100, sel, coupon, 30)

	if s.BasePrice != 400 {
		t.Errorf("BasePrice = %v, expected 400", s.BasePrice)
	}
	if s.Discount != 80 {
		t.Errorf("Discount = %v, expected 80", s.Discount)
	}
	if s.TotalPrice != 320 {
		t.Errorf("TotalPrice = %v, expected 320", s.TotalPrice)
	}
	if s.AdvancePayment != 96 {
		t.Errorf("AdvancePayment = %v, expected 96", s.AdvancePayment)
	}
	if s.RemainingAmount != 224 {
		t.Errorf("RemainingAmount = %v, expected 224", s.RemainingAmount)
	}
	if s.TotalPeople != 4 {
		t.Errorf("TotalPeople = %v, expected 4", s.TotalPeople)
	}
}

func TestQuoteRecomputesDiscountOnNewSelection(t *testing.T) {
	coupon := &AppliedCoupon{Code: "VARA20", Kind: DiscountPercentage, Value: 20}

	first := Quote(100, VesselSelection{SingleKayaks: 2, DoubleKayaks: 1}, coupon, 30)
	// user adds a SUP board after applying the coupon; the discount must
	// follow the new base price, not stay frozen
	second := Quote(100, VesselSelection{SingleKayaks: 2, DoubleKayaks: 1, SUPBoards: 1}, coupon, 30)

	if second.BasePrice != 500 {
		t.Errorf("BasePrice = %v, expected 500", second.BasePrice)
	}
	if second.Discount != 100 {
		t.Errorf("Discount = %v, expected 100 (recomputed), first was %v", second.Discount, first.Discount)
	}
}

func TestQuoteFixedCouponFloorsAtZero(t *testing.T) {
	coupon := &AppliedCoupon{Code: "CADOU", Kind: DiscountFixed, Value: 900}
	s := Quote(100, VesselSelection{SingleKayaks: 1}, coupon, 30)

	if s.TotalPrice != 0 {
		t.Errorf("TotalPrice = %v, expected 0", s.TotalPrice)
	}
	if s.AdvancePayment != 0 || s.RemainingAmount != 0 {
		t.Errorf("split of zero total = (%v, %v), expected (0, 0)", s.AdvancePayment, s.RemainingAmount)
	}
}

func TestQuoteWithoutCoupon(t *testing.T) {
	s := Quote(120, VesselSelection{SUPBoards: 2}, nil, 50)
	if s.Discount != 0 {
		t.Errorf("Discount = %v, expected 0", s.Discount)
	}
	if s.TotalPrice != 240 {
		t.Errorf("TotalPrice = %v, expected 240", s.TotalPrice)
	}
	if s.AdvancePayment != 120 {
		t.Errorf("AdvancePayment = %v, expected 120", s.AdvancePayment)
	}
}
