package services

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/cache"
	"github.com/kornnellio/adventuretime-sub001/internal/helpers"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
	"github.com/kornnellio/adventuretime-sub001/internal/payments"
	"github.com/kornnellio/adventuretime-sub001/internal/pricing"
	"github.com/kornnellio/adventuretime-sub001/internal/schedule"
)

type BookingService struct {
	bookingRepo   models.BookingRepo
	adventureRepo models.AdventureRepo
	userRepo      models.UserRepo
	couponService *CouponService
	payClient     *payments.Client
	cache         *cache.Cache
}

func NewBookingService(
	bookingRepo models.BookingRepo,
	adventureRepo models.AdventureRepo,
	userRepo models.UserRepo,
	couponService *CouponService,
	payClient *payments.Client,
	c *cache.Cache,
) *BookingService {
	return &BookingService{
		bookingRepo:   bookingRepo,
		adventureRepo: adventureRepo,
		userRepo:      userRepo,
		couponService: couponService,
		payClient:     payClient,
		cache:         c,
	}
}

type CheckoutRequest struct {
	AdventureID uuid.UUID               `json:"adventureId" validate:"required"`
	StartDate   time.Time               `json:"startDate" validate:"required"`
	Selection   pricing.VesselSelection `json:"selection"`
	CouponCode  string                  `json:"couponCode,omitempty"`
}

type CheckoutResult struct {
	Intent   *models.PaymentIntent `json:"intent"`
	Redirect payments.Redirect     `json:"redirect"`
}

// Checkout creates a payment intent for the selected adventure date and
// returns the provider redirect. Everything price-related is recomputed here
// from the stored adventure; nothing the client sent is trusted beyond the
// selection counts and the coupon code.
func (bs *BookingService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*CheckoutResult, error) {
	if err := models.Validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("invalid checkout data provided: %v", err)
	}
	if req.Selection.SingleKayaks < 0 || req.Selection.DoubleKayaks < 0 || req.Selection.SUPBoards < 0 {
		return nil, fmt.Errorf("vessel counts cannot be negative")
	}
	if req.Selection.IsEmpty() {
		return nil, fmt.Errorf("at least one vessel must be selected")
	}

	adventure, err := bs.adventureRepo.GetAdventureByID(ctx, req.AdventureID)
	if err != nil {
		return nil, err
	}
	if adventure == nil {
		return nil, fmt.Errorf("adventure not found")
	}

	if err := checkVesselAvailability(adventure.Vessels, req.Selection); err != nil {
		return nil, err
	}

	dateRange, err := matchDateRange(adventure.Dates, req.StartDate)
	if err != nil {
		return nil, err
	}

	basePrice := pricing.BasePrice(adventure.Price, req.Selection)

	var applied *pricing.AppliedCoupon
	if req.CouponCode != "" {
		result, err := bs.couponService.Validate(ctx, req.CouponCode, adventure.ID.String(), basePrice)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, fmt.Errorf("invalid coupon: %s", result.Message)
		}
		applied = result.Coupon
	}

	quote := pricing.Quote(adventure.Price, req.Selection, applied, adventure.AdvancePaymentPercentage)

	now := time.Now()
	intent := &models.PaymentIntent{
		ID:             uuid.New(),
		AdventureID:    adventure.ID,
		AdventureTitle: adventure.Title,
		UserID:         userID,
		Selection:      req.Selection,
		DateRange:      dateRange,
		Coupon:         applied,
		Pricing:        quote,
		PaymentStatus:  "pending",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := bs.bookingRepo.CreateIntent(ctx, intent); err != nil {
		return nil, err
	}

	redirect := bs.payClient.BuildRedirect(intent.ID, quote.AdvancePayment, adventure.Title)

	return &CheckoutResult{Intent: intent, Redirect: redirect}, nil
}

func checkVesselAvailability(available models.VesselAvailability, sel pricing.VesselSelection) error {
	if sel.SingleKayaks > 0 && !available.SingleKayak {
		return fmt.Errorf("single kayaks are not available for this adventure")
	}
	if sel.DoubleKayaks > 0 && !available.DoubleKayak {
		return fmt.Errorf("double kayaks are not available for this adventure")
	}
	if sel.SUPBoards > 0 && !available.SUPBoard {
		return fmt.Errorf("SUP boards are not available for this adventure")
	}
	return nil
}

// matchDateRange finds the adventure date range starting on the requested
// calendar day. Past ranges are bookable only until their cutoff, which
// Resolve has already folded into IsPast.
func matchDateRange(ranges []schedule.DateRange, start time.Time) (schedule.DateRange, error) {
	for _, r := range ranges {
		y1, m1, d1 := r.StartDate.Date()
		y2, m2, d2 := start.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			if r.IsPast {
				return schedule.DateRange{}, fmt.Errorf("selected date is no longer bookable")
			}
			return r, nil
		}
	}
	return schedule.DateRange{}, fmt.Errorf("selected date is not offered for this adventure")
}

// AttachPhone stores the contact number on an existing intent. Ownership is
// enforced here so one customer cannot write onto another's intent.
func (bs *BookingService) AttachPhone(ctx context.Context, userID, intentID uuid.UUID, phone string) (*models.PaymentIntent, error) {
	if !helpers.IsValidPhone(phone) {
		return nil, fmt.Errorf("invalid phone number")
	}

	intent, err := bs.bookingRepo.GetIntentByID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent == nil {
		return nil, nil
	}
	if intent.UserID != userID {
		return nil, fmt.Errorf("intent does not belong to this user")
	}

	return bs.bookingRepo.AttachPhone(ctx, intentID, phone)
}

// HandleCallback processes a provider IPN. On a confirmed payment it creates
// the durable booking and appends the order to the user document; repeated
// notifications for the same intent are idempotent.
func (bs *BookingService) HandleCallback(ctx context.Context, form url.Values) error {
	result, err := bs.payClient.ParseCallback(form)
	if err != nil {
		return err
	}

	intent, err := bs.bookingRepo.UpdateIntentStatus(ctx, result.OrderID, result.Status, result.ProviderRef)
	if err != nil {
		return err
	}
	if intent == nil {
		return fmt.Errorf("payment intent not found")
	}

	bs.cache.Delete(ctx, cache.IntentStatusKey(intent.ID))

	if result.Status != "confirmed" {
		return nil
	}

	existing, err := bs.bookingRepo.GetBookingByIntentID(ctx, intent.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	now := time.Now()
	booking := &models.Booking{
		ID:             uuid.New(),
		IntentID:       intent.ID,
		AdventureID:    intent.AdventureID,
		AdventureTitle: intent.AdventureTitle,
		UserID:         intent.UserID,
		Selection:      intent.Selection,
		DateRange:      intent.DateRange,
		Coupon:         intent.Coupon,
		Pricing:        intent.Pricing,
		Phone:          intent.Phone,
		Status:         "confirmed",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := bs.bookingRepo.CreateBooking(ctx, booking); err != nil {
		return err
	}

	order := models.Order{
		BookingID:      booking.ID,
		AdventureTitle: booking.AdventureTitle,
		Pricing:        booking.Pricing,
		Status:         booking.Status,
		PlacedAt:       now,
	}
	return bs.userRepo.AppendOrder(ctx, booking.UserID, order)
}

// StatusPayload is what the polling endpoint returns. Cached for the length
// of one poll interval so a page full of tabs does not hammer Mongo.
type StatusPayload struct {
	IntentID  uuid.UUID         `json:"intentId"`
	Status    models.StatusView `json:"status"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (bs *BookingService) IntentStatus(ctx context.Context, userID, intentID uuid.UUID, isAdmin bool) (*StatusPayload, error) {
	key := cache.IntentStatusKey(intentID)

	var cached StatusPayload
	if bs.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	intent, err := bs.bookingRepo.GetIntentByID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent == nil {
		return nil, nil
	}
	if intent.UserID != userID && !isAdmin {
		return nil, fmt.Errorf("intent does not belong to this user")
	}

	payload := &StatusPayload{
		IntentID:  intent.ID,
		Status:    models.NewStatusView(intent.PaymentStatus),
		UpdatedAt: intent.UpdatedAt,
	}
	bs.cache.Set(ctx, key, payload, cache.IntentStatusTTL)
	return payload, nil
}

// ListUserBookings merges durable bookings with in-flight intents. An intent
// whose booking already exists is dropped so the purchase shows up once.
func (bs *BookingService) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]models.BookingView, error) {
	bookings, err := bs.bookingRepo.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	intents, err := bs.bookingRepo.ListIntentsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	superseded := make(map[uuid.UUID]bool, len(bookings))
	views := make([]models.BookingView, 0, len(bookings)+len(intents))
	for _, b := range bookings {
		superseded[b.IntentID] = true
		views = append(views, b.View())
	}
	for _, pi := range intents {
		if superseded[pi.ID] {
			continue
		}
		views = append(views, pi.View())
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

func (bs *BookingService) ListBookings(ctx context.Context, status string, offset, limit int) ([]*models.Booking, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	return bs.bookingRepo.ListBookings(ctx, status, offset, limit)
}

func (bs *BookingService) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string) (*models.Booking, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid booking ID")
	}
	if models.NormalizeStatus(status) == models.StatusUnknown {
		return nil, fmt.Errorf("unrecognized booking status: %s", status)
	}
	return bs.bookingRepo.UpdateBookingStatus(ctx, id, status)
}
