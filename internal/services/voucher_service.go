package services

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/kornnellio/adventuretime-sub001/internal/helpers"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
	"github.com/kornnellio/adventuretime-sub001/internal/payments"
	"github.com/kornnellio/adventuretime-sub001/internal/pricing"
)

// ProcessingFeePercentage is added on top of the voucher amount to cover the
// card processing cost; the recipient still receives the full amount.
const ProcessingFeePercentage = 2

const (
	minVoucherAmount = 50
	maxVoucherAmount = 5000
)

type VoucherService struct {
	voucherRepo models.VoucherRepo
	couponRepo  models.CouponRepo
	payClient   *payments.Client
}

func NewVoucherService(voucherRepo models.VoucherRepo, couponRepo models.CouponRepo, payClient *payments.Client) *VoucherService {
	return &VoucherService{
		voucherRepo: voucherRepo,
		couponRepo:  couponRepo,
		payClient:   payClient,
	}
}

type VoucherPurchaseRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	RecipientName string  `json:"recipientName,omitempty"`
}

type VoucherPurchaseResult struct {
	Voucher  *models.VoucherPurchase `json:"voucher"`
	Redirect payments.Redirect       `json:"redirect"`
}

// Purchase creates a voucher payment record and the provider redirect. The
// charged amount is the voucher value plus the processing fee.
func (vs *VoucherService) Purchase(ctx context.Context, userID uuid.UUID, req VoucherPurchaseRequest) (*VoucherPurchaseResult, error) {
	if err := models.Validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("invalid voucher data provided: %v", err)
	}
	if req.Amount < minVoucherAmount || req.Amount > maxVoucherAmount {
		return nil, fmt.Errorf("voucher amount must be between %d and %d RON", minVoucherAmount, maxVoucherAmount)
	}

	now := time.Now()
	voucher := &models.VoucherPurchase{
		ID:            uuid.New(),
		UserID:        userID,
		Amount:        req.Amount,
		ProcessingFee: math.Round(req.Amount * ProcessingFeePercentage / 100),
		RecipientName: req.RecipientName,
		PaymentStatus: "pending",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := vs.voucherRepo.CreateVoucher(ctx, voucher); err != nil {
		return nil, err
	}

	redirect := vs.payClient.BuildRedirect(voucher.ID, voucher.Amount+voucher.ProcessingFee, "Gift voucher")

	return &VoucherPurchaseResult{Voucher: voucher, Redirect: redirect}, nil
}

// HandleCallback processes the provider IPN for a voucher purchase. On
// confirmation a fixed-value coupon is minted for the recipient; repeated
// confirmations keep the original code.
func (vs *VoucherService) HandleCallback(ctx context.Context, form url.Values) error {
	result, err := vs.payClient.ParseCallback(form)
	if err != nil {
		return err
	}

	voucher, err := vs.voucherRepo.GetVoucherByID(ctx, result.OrderID)
	if err != nil {
		return err
	}
	if voucher == nil {
		return fmt.Errorf("voucher not found")
	}

	couponCode := voucher.CouponCode
	if result.Status == "confirmed" && couponCode == "" {
		couponCode, err = helpers.GenerateVoucherCode()
		if err != nil {
			return err
		}
	}

	// The code lands on the voucher in the same write as the status, before
	// the coupon insert. A failure between the two is healed on the
	// provider's IPN retry without a second code ever being minted.
	if _, err := vs.voucherRepo.UpdateVoucherStatus(ctx, voucher.ID, result.Status, couponCode, result.ProviderRef); err != nil {
		return err
	}

	if result.Status != "confirmed" {
		return nil
	}

	existing, err := vs.couponRepo.GetCouponByCode(ctx, couponCode)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	return vs.couponRepo.CreateCoupon(ctx, &models.Coupon{
		ID:        uuid.New(),
		Code:      couponCode,
		Kind:      pricing.DiscountFixed,
		Value:     voucher.Amount,
		Active:    true,
		CreatedAt: time.Now(),
	})
}

func (vs *VoucherService) GetVoucherByID(ctx context.Context, id uuid.UUID) (*models.VoucherPurchase, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid voucher ID")
	}
	return vs.voucherRepo.GetVoucherByID(ctx, id)
}

func (vs *VoucherService) ListVouchers(ctx context.Context, offset, limit int) ([]*models.VoucherPurchase, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	return vs.voucherRepo.ListVouchers(ctx, offset, limit)
}

// RenderPDF builds the downloadable gift voucher with the coupon code both
// printed and QR-encoded. Only paid vouchers render.
func (vs *VoucherService) RenderPDF(ctx context.Context, userID, voucherID uuid.UUID, isAdmin bool) ([]byte, error) {
	voucher, err := vs.voucherRepo.GetVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, fmt.Errorf("voucher not found")
	}
	if voucher.UserID != userID && !isAdmin {
		return nil, fmt.Errorf("voucher does not belong to this user")
	}
	if models.NormalizeStatus(voucher.PaymentStatus) != models.StatusConfirmed || voucher.CouponCode == "" {
		return nil, fmt.Errorf("voucher is not paid yet")
	}

	qrPNG, err := qrcode.Encode(voucher.CouponCode, qrcode.Medium, 128)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %v", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 15, "AdventureTime Gift Voucher", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	recipient := voucher.RecipientName
	if recipient == "" {
		recipient = "the bearer"
	}
	pdf.MultiCell(0, 10, fmt.Sprintf(
		"This voucher entitles %s to %.0f RON off any adventure.\n\nCode: %s\nIssued: %s",
		recipient,
		voucher.Amount,
		voucher.CouponCode,
		voucher.UpdatedAt.Format("02 Jan 2006"),
	), "", "L", false)

	imgOpts := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 60, 40, 40, false, imgOpts, 0, "")

	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 10, "Enter the code at checkout or show this voucher at the meeting point.", "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render voucher PDF: %v", err)
	}
	return buf.Bytes(), nil
}
