package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
	"github.com/kornnellio/adventuretime-sub001/internal/pricing"
	"github.com/kornnellio/adventuretime-sub001/internal/services"
)

type stubCouponRepo struct {
	coupon *models.Coupon
}

func (s *stubCouponRepo) CreateCoupon(ctx context.Context, c *models.Coupon) error { return nil }

func (s *stubCouponRepo) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	if s.coupon != nil && strings.EqualFold(code, s.coupon.Code) {
		return s.coupon, nil
	}
	return nil, nil
}

func (s *stubCouponRepo) ListCoupons(ctx context.Context, offset, limit int) ([]*models.Coupon, int, error) {
	return nil, 0, nil
}

func (s *stubCouponRepo) DeactivateCoupon(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubCouponRepo) DeleteCoupon(ctx context.Context, id uuid.UUID) error     { return nil }

func validateCouponRouter(repo *stubCouponRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/coupons/validate", ValidateCoupon(services.NewCouponService(repo)))
	return r
}

func TestValidateCouponEndpoint(t *testing.T) {
	router := validateCouponRouter(&stubCouponRepo{coupon: &models.Coupon{
		ID:     uuid.New(),
		Code:   "vara25",
		Kind:   pricing.DiscountPercentage,
		Value:  25,
		Active: true,
	}})

	body := `{"code":"VARA25","basePrice":540}`
	req := httptest.NewRequest(http.MethodPost, "/coupons/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", w.Code)
	}

	var resp models.ApiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %T", resp.Data)
	}
	if data["valid"] != true {
		t.Errorf("valid = %v, expected true", data["valid"])
	}
	if data["discount"] != float64(135) {
		t.Errorf("discount = %v, expected 135", data["discount"])
	}
}

// A wrong code is a user-correctable outcome: 200 with valid=false, never an
// error status.
func TestValidateCouponEndpointUnknownCode(t *testing.T) {
	router := validateCouponRouter(&stubCouponRepo{})

	body := `{"code":"nope","basePrice":300}`
	req := httptest.NewRequest(http.MethodPost, "/coupons/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", w.Code)
	}

	var resp models.ApiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %T", resp.Data)
	}
	if data["valid"] != false {
		t.Errorf("valid = %v, expected false", data["valid"])
	}
	if data["message"] == "" {
		t.Error("expected a correction message")
	}
}
