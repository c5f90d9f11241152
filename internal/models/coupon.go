package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/pricing"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Coupon is a discount code. A coupon may be restricted to one adventure;
// an empty AdventureID means it applies everywhere. Codes are stored
// lowercase and matched case-insensitively.
type Coupon struct {
	ID          uuid.UUID            `bson:"id" json:"id"`
	Code        string               `bson:"code" json:"code" validate:"required"`
	Kind        pricing.DiscountKind `bson:"type" json:"type" validate:"required,oneof=percentage fixed"`
	Value       float64              `bson:"value" json:"value" validate:"required,gt=0"`
	AdventureID string               `bson:"adventureId,omitempty" json:"adventureId,omitempty"`
	ExpiresAt   time.Time            `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	Active      bool                 `bson:"active" json:"active"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
}

// Applied converts a stored coupon into what pricing consumes.
func (c *Coupon) Applied() *pricing.AppliedCoupon {
	return &pricing.AppliedCoupon{Code: c.Code, Kind: c.Kind, Value: c.Value}
}

type CouponRepo interface {
	CreateCoupon(ctx context.Context, coupon *Coupon) error
	GetCouponByCode(ctx context.Context, code string) (*Coupon, error)
	ListCoupons(ctx context.Context, offset, limit int) ([]*Coupon, int, error)
	DeactivateCoupon(ctx context.Context, id uuid.UUID) error
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
}

func (mdb *MongodbRepo) CreateCoupon(ctx context.Context, coupon *Coupon) error {
	coupon.Code = strings.ToLower(strings.TrimSpace(coupon.Code))
	if _, err := mdb.collection(CouponsColName).InsertOne(ctx, coupon); err != nil {
		return fmt.Errorf("error inserting coupon: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetCouponByCode(ctx context.Context, code string) (*Coupon, error) {
	code = strings.ToLower(strings.TrimSpace(code))

	var coupon Coupon
	err := mdb.collection(CouponsColName).FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding coupon: %v", err)
	}
	return &coupon, nil
}

func (mdb *MongodbRepo) ListCoupons(ctx context.Context, offset, limit int) ([]*Coupon, int, error) {
	col := mdb.collection(CouponsColName)

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("error counting coupons: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, fmt.Errorf("error finding coupons: %v", err)
	}
	defer cursor.Close(ctx)

	var coupons []*Coupon
	for cursor.Next(ctx) {
		var c Coupon
		if err := cursor.Decode(&c); err != nil {
			return nil, 0, fmt.Errorf("error decoding coupon: %v", err)
		}
		coupons = append(coupons, &c)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}
	return coupons, int(total), nil
}

func (mdb *MongodbRepo) DeactivateCoupon(ctx context.Context, id uuid.UUID) error {
	res, err := mdb.collection(CouponsColName).UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"active": false}},
	)
	if err != nil {
		return fmt.Errorf("error deactivating coupon: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("coupon not found")
	}
	return nil
}

func (mdb *MongodbRepo) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	res, err := mdb.collection(CouponsColName).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting coupon: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("coupon not found")
	}
	return nil
}
