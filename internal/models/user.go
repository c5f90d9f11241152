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

// User holds the customer profile plus the denormalized order history shown
// in the admin panel. Orders mirror booking fields for display only.
type User struct {
	ID        uuid.UUID `bson:"id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	FullName  string    `bson:"fullName" json:"fullName,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role      string    `bson:"role" json:"role"`
	Orders    []Order   `bson:"orders,omitempty" json:"orders,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type UserRepo interface {
	AppendOrder(ctx context.Context, userID uuid.UUID, order Order) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*User, int, error)
}

// AppendOrder pushes the order onto the user document, creating the
// document if this is the user's first purchase.
func (mdb *MongodbRepo) AppendOrder(ctx context.Context, userID uuid.UUID, order Order) error {
	now := time.Now()
	_, err := mdb.collection(UsersColName).UpdateOne(ctx,
		bson.M{"id": userID},
		bson.M{
			"$push": bson.M{"orders": order},
			"$set":  bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{
				"id":        userID,
				"role":      "customer",
				"createdAt": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("error appending order: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := mdb.collection(UsersColName).FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding user: %v", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) ListUsers(ctx context.Context, offset, limit int) ([]*User, int, error) {
	col := mdb.collection(UsersColName)

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("error counting users: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, fmt.Errorf("error finding users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []*User
	for cursor.Next(ctx) {
		var u User
		if err := cursor.Decode(&u); err != nil {
			return nil, 0, fmt.Errorf("error decoding user: %v", err)
		}
		users = append(users, &u)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}
	return users, int(total), nil
}
