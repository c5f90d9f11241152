package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
	"github.com/kornnellio/adventuretime-sub001/internal/pricing"
)

type CouponService struct {
	couponRepo models.CouponRepo
}

func NewCouponService(couponRepo models.CouponRepo) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
	}
}

// ValidationResult is what the coupon form gets back. An invalid code is a
// normal outcome the customer can correct, so it travels in the result, not
// as an error.
type ValidationResult struct {
	Valid    bool                   `json:"valid"`
	Message  string                 `json:"message,omitempty"`
	Coupon   *pricing.AppliedCoupon `json:"coupon,omitempty"`
	Discount float64                `json:"discount,omitempty"`
}

func invalid(message string) ValidationResult {
	return ValidationResult{Valid: false, Message: message}
}

// Validate checks a coupon code against the current booking context and
// computes the discount it would yield on basePrice. Matching is
// case-insensitive.
func (cs *CouponService) Validate(ctx context.Context, code, adventureID string, basePrice float64) (ValidationResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return invalid("coupon code is required"), nil
	}

	coupon, err := cs.couponRepo.GetCouponByCode(ctx, code)
	if err != nil {
		return ValidationResult{}, err
	}
	if coupon == nil {
		return invalid("coupon code not found"), nil
	}
	if !coupon.Active {
		return invalid("coupon is no longer active"), nil
	}
	if !coupon.ExpiresAt.IsZero() && coupon.ExpiresAt.Before(time.Now()) {
		return invalid("coupon has expired"), nil
	}
	if coupon.AdventureID != "" && coupon.AdventureID != adventureID {
		return invalid("coupon is not valid for this adventure"), nil
	}

	applied := coupon.Applied()
	return ValidationResult{
		Valid:    true,
		Coupon:   applied,
		Discount: pricing.Discount(applied.Kind, applied.Value, basePrice),
	}, nil
}

func (cs *CouponService) CreateCoupon(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error) {
	if err := models.Validate.Struct(coupon); err != nil {
		return nil, fmt.Errorf("invalid coupon data provided: %v", err)
	}

	existing, err := cs.couponRepo.GetCouponByCode(ctx, coupon.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("coupon code already exists")
	}

	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	coupon.Active = true
	coupon.CreatedAt = time.Now()

	if err := cs.couponRepo.CreateCoupon(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (cs *CouponService) ListCoupons(ctx context.Context, offset, limit int) ([]*models.Coupon, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	return cs.couponRepo.ListCoupons(ctx, offset, limit)
}

func (cs *CouponService) DeactivateCoupon(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid coupon ID")
	}
	return cs.couponRepo.DeactivateCoupon(ctx, id)
}

func (cs *CouponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid coupon ID")
	}
	return cs.couponRepo.DeleteCoupon(ctx, id)
}
