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

type BookingRepo interface {
	CreateIntent(ctx context.Context, intent *PaymentIntent) error
	GetIntentByID(ctx context.Context, id uuid.UUID) (*PaymentIntent, error)
	AttachPhone(ctx context.Context, id uuid.UUID, phone string) (*PaymentIntent, error)
	UpdateIntentStatus(ctx context.Context, id uuid.UUID, status, providerRef string) (*PaymentIntent, error)
	ExpireStaleIntents(ctx context.Context, olderThan time.Time) (int64, error)

	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByIntentID(ctx context.Context, intentID uuid.UUID) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string) (*Booking, error)
	ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error)
	ListIntentsByUser(ctx context.Context, userID uuid.UUID) ([]*PaymentIntent, error)
	ListBookings(ctx context.Context, status string, offset, limit int) ([]*Booking, int, error)
}

func (mdb *MongodbRepo) CreateIntent(ctx context.Context, intent *PaymentIntent) error {
	if _, err := mdb.collection(PaymentIntentsColName).InsertOne(ctx, intent); err != nil {
		return fmt.Errorf("error inserting payment intent: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetIntentByID(ctx context.Context, id uuid.UUID) (*PaymentIntent, error) {
	var intent PaymentIntent
	err := mdb.collection(PaymentIntentsColName).FindOne(ctx, bson.M{"id": id}).Decode(&intent)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding payment intent: %v", err)
	}
	return &intent, nil
}

func (mdb *MongodbRepo) AttachPhone(ctx context.Context, id uuid.UUID, phone string) (*PaymentIntent, error) {
	res := mdb.collection(PaymentIntentsColName).FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"phone": phone, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var intent PaymentIntent
	if err := res.Decode(&intent); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error attaching phone: %v", err)
	}
	return &intent, nil
}

func (mdb *MongodbRepo) UpdateIntentStatus(ctx context.Context, id uuid.UUID, status, providerRef string) (*PaymentIntent, error) {
	set := bson.M{"paymentStatus": status, "updatedAt": time.Now()}
	if providerRef != "" {
		set["providerRef"] = providerRef
	}

	res := mdb.collection(PaymentIntentsColName).FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var intent PaymentIntent
	if err := res.Decode(&intent); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating intent status: %v", err)
	}
	return &intent, nil
}

// ExpireStaleIntents marks intents stuck in pending/processing as expired.
// Called by the background cron, not by request handlers.
func (mdb *MongodbRepo) ExpireStaleIntents(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := mdb.collection(PaymentIntentsColName).UpdateMany(ctx,
		bson.M{
			"paymentStatus": bson.M{"$in": []string{"pending", "processing", "pending_payment"}},
			"createdAt":     bson.M{"$lt": olderThan},
		},
		bson.M{"$set": bson.M{"paymentStatus": "expired", "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("error expiring stale intents: %v", err)
	}
	return res.ModifiedCount, nil
}

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) error {
	if _, err := mdb.collection(BookingsColName).InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error inserting booking: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetBookingByIntentID(ctx context.Context, intentID uuid.UUID) (*Booking, error) {
	var booking Booking
	err := mdb.collection(BookingsColName).FindOne(ctx, bson.M{"intentId": intentID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding booking: %v", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string) (*Booking, error) {
	res := mdb.collection(BookingsColName).FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var booking Booking
	if err := res.Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating booking status: %v", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error) {
	cursor, err := mdb.collection(BookingsColName).Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %v", err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	for cursor.Next(ctx) {
		var b Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %v", err)
		}
		bookings = append(bookings, &b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return bookings, nil
}

func (mdb *MongodbRepo) ListIntentsByUser(ctx context.Context, userID uuid.UUID) ([]*PaymentIntent, error) {
	cursor, err := mdb.collection(PaymentIntentsColName).Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		return nil, fmt.Errorf("error finding payment intents: %v", err)
	}
	defer cursor.Close(ctx)

	var intents []*PaymentIntent
	for cursor.Next(ctx) {
		var pi PaymentIntent
		if err := cursor.Decode(&pi); err != nil {
			return nil, fmt.Errorf("error decoding payment intent: %v", err)
		}
		intents = append(intents, &pi)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return intents, nil
}

func (mdb *MongodbRepo) ListBookings(ctx context.Context, status string, offset, limit int) ([]*Booking, int, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	col := mdb.collection(BookingsColName)
	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %v", err)
	}

	cursor, err := col.Find(ctx, query, options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, fmt.Errorf("error finding bookings: %v", err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	for cursor.Next(ctx) {
		var b Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, 0, fmt.Errorf("error decoding booking: %v", err)
		}
		bookings = append(bookings, &b)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}
	return bookings, int(total), nil
}
