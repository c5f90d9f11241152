package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/schedule"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdventureRepo interface {
	CreateAdventure(ctx context.Context, adventure *Adventure) (*Adventure, error)
	GetAdventureByID(ctx context.Context, id uuid.UUID) (*Adventure, error)
	ListAdventures(ctx context.Context, filter AdventureFilter, offset, limit int) ([]*Adventure, int, error)
	UpdateAdventure(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Adventure, error)
	DeleteAdventure(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, category *Category) error
	ListCategories(ctx context.Context) ([]*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// decodeAdventure unmarshals a raw document twice: once into the Adventure
// struct and once into a schedule.Source, so the three historical date
// shapes all resolve without touching the stored record.
func decodeAdventure(raw bson.Raw, now time.Time) (*Adventure, error) {
	var adv Adventure
	if err := bson.Unmarshal(raw, &adv); err != nil {
		return nil, fmt.Errorf("error decoding adventure: %v", err)
	}

	var src schedule.Source
	if err := bson.Unmarshal(raw, &src); err != nil {
		return nil, fmt.Errorf("error decoding adventure dates: %v", err)
	}

	adv.Dates = schedule.Resolve(src, now)
	if next, ok := schedule.NextOccurrence(adv.Dates); ok {
		adv.NextDate = &next
	}
	return &adv, nil
}

// adventureDoc builds the document to persist. Dates are written explicitly
// in the current {startDate, endDate} pair-array shape.
func adventureDoc(adventure *Adventure) (bson.M, error) {
	data, err := bson.Marshal(adventure)
	if err != nil {
		return nil, fmt.Errorf("error marshaling adventure: %v", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error building adventure document: %v", err)
	}
	doc["dates"] = adventure.DateRanges
	return doc, nil
}

func (mdb *MongodbRepo) CreateAdventure(ctx context.Context, adventure *Adventure) (*Adventure, error) {
	doc, err := adventureDoc(adventure)
	if err != nil {
		return nil, err
	}

	if _, err := mdb.collection(AdventuresColName).InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("error inserting adventure: %v", err)
	}

	return mdb.GetAdventureByID(ctx, adventure.ID)
}

func (mdb *MongodbRepo) GetAdventureByID(ctx context.Context, id uuid.UUID) (*Adventure, error) {
	var raw bson.Raw
	err := mdb.collection(AdventuresColName).FindOne(ctx, bson.M{"id": id}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding adventure: %v", err)
	}

	return decodeAdventure(raw, time.Now())
}

func (mdb *MongodbRepo) ListAdventures(ctx context.Context, filter AdventureFilter, offset, limit int) ([]*Adventure, int, error) {
	query := bson.M{}
	if filter.CategoryID != "" {
		query["categoryId"] = filter.CategoryID
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.Location != "" {
		query["location"] = bson.M{"$regex": filter.Location, "$options": "i"}
	}

	col := mdb.collection(AdventuresColName)

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting adventures: %v", err)
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error finding adventures: %v", err)
	}
	defer cursor.Close(ctx)

	now := time.Now()
	var adventures []*Adventure
	for cursor.Next(ctx) {
		adv, err := decodeAdventure(cursor.Current, now)
		if err != nil {
			return nil, 0, err
		}
		adventures = append(adventures, adv)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}

	return adventures, int(total), nil
}

func (mdb *MongodbRepo) UpdateAdventure(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Adventure, error) {
	updates["updatedAt"] = time.Now()

	res := mdb.collection(AdventuresColName).FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var raw bson.Raw
	if err := res.Decode(&raw); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating adventure: %v", err)
	}

	return decodeAdventure(raw, time.Now())
}

func (mdb *MongodbRepo) DeleteAdventure(ctx context.Context, id uuid.UUID) error {
	res, err := mdb.collection(AdventuresColName).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting adventure: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("adventure not found")
	}
	return nil
}

func (mdb *MongodbRepo) CreateCategory(ctx context.Context, category *Category) error {
	if _, err := mdb.collection(CategoriesColName).InsertOne(ctx, category); err != nil {
		return fmt.Errorf("error inserting category: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) ListCategories(ctx context.Context) ([]*Category, error) {
	cursor, err := mdb.collection(CategoriesColName).Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, fmt.Errorf("error finding categories: %v", err)
	}
	defer cursor.Close(ctx)

	var categories []*Category
	for cursor.Next(ctx) {
		var c Category
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("error decoding category: %v", err)
		}
		categories = append(categories, &c)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return categories, nil
}

func (mdb *MongodbRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := mdb.collection(CategoriesColName).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting category: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}
