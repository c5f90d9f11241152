package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VoucherPurchase is a gift-card transaction: the buyer pays the voucher
// amount plus a processing fee, and on payment confirmation a fixed-value
// coupon code is generated for the recipient. Vouchers are independent of
// any adventure.
type VoucherPurchase struct {
	ID            uuid.UUID `bson:"id" json:"id"`
	UserID        uuid.UUID `bson:"userId" json:"userId"`
	Amount        float64   `bson:"amount" json:"amount" validate:"required,gt=0"`
	ProcessingFee float64   `bson:"processingFee" json:"processingFee"`
	CouponCode    string    `bson:"couponCode,omitempty" json:"couponCode,omitempty"`
	RecipientName string    `bson:"recipientName,omitempty" json:"recipientName,omitempty"`
	PaymentStatus string    `bson:"paymentStatus" json:"paymentStatus"`
	ProviderRef   string    `bson:"providerRef,omitempty" json:"providerRef,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

type VoucherRepo interface {
	CreateVoucher(ctx context.Context, voucher *VoucherPurchase) error
	GetVoucherByID(ctx context.Context, id uuid.UUID) (*VoucherPurchase, error)
	UpdateVoucherStatus(ctx context.Context, id uuid.UUID, status, couponCode, providerRef string) (*VoucherPurchase, error)
	ListVouchers(ctx context.Context, offset, limit int) ([]*VoucherPurchase, int, error)
}

func (mdb *MongodbRepo) CreateVoucher(ctx context.Context, voucher *VoucherPurchase) error {
	if _, err := mdb.collection(VouchersColName).InsertOne(ctx, voucher); err != nil {
		return fmt.Errorf("error inserting voucher: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetVoucherByID(ctx context.Context, id uuid.UUID) (*VoucherPurchase, error) {
	var voucher VoucherPurchase
	err := mdb.collection(VouchersColName).FindOne(ctx, bson.M{"id": id}).Decode(&voucher)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding voucher: %v", err)
	}
	return &voucher, nil
}

func (mdb *MongodbRepo) UpdateVoucherStatus(ctx context.Context, id uuid.UUID, status, couponCode, providerRef string) (*VoucherPurchase, error) {
	set := bson.M{"paymentStatus": status, "updatedAt": time.Now()}
	if couponCode != "" {
		set["couponCode"] = couponCode
	}
	if providerRef != "" {
		set["providerRef"] = providerRef
	}

	res := mdb.collection(VouchersColName).FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var voucher VoucherPurchase
	if err := res.Decode(&voucher); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating voucher status: %v", err)
	}
	return &voucher, nil
}

func (mdb *MongodbRepo) ListVouchers(ctx context.Context, offset, limit int) ([]*VoucherPurchase, int, error) {
	col := mdb.collection(VouchersColName)

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("error counting vouchers: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, fmt.Errorf("error finding vouchers: %v", err)
	}
	defer cursor.Close(ctx)

	var vouchers []*VoucherPurchase
	for cursor.Next(ctx) {
		var v VoucherPurchase
		if err := cursor.Decode(&v); err != nil {
			return nil, 0, fmt.Errorf("error decoding voucher: %v", err)
		}
		vouchers = append(vouchers, &v)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}
	return vouchers, int(total), nil
}
