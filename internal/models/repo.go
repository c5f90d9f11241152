package models

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

const (
	DbName = "adventuretime"

	AdventuresColName     = "adventures"
	CategoriesColName     = "categories"
	CouponsColName        = "coupons"
	BookingsColName       = "bookings"
	PaymentIntentsColName = "payment_intents"
	VouchersColName       = "vouchers"
	UsersColName          = "users"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
}

func MongodbNewRepo(mongodbClient *mongo.Client) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
	}
}

func (mdb *MongodbRepo) collection(name string) *mongo.Collection {
	return mdb.mongodbClient.Database(DbName).Collection(name)
}
