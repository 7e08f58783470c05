package repositories

import (
	"context"
	"errors"
	"time"

	"crm-backend/internal/models"
	"crm-backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrUnknownItemType is returned for a management type outside the fixed set.
var ErrUnknownItemType = errors.New("invalid item type")

// ManagementRepository handles the small reference-data lists (brands,
// products, locations, statuses, sources, ownership). Documents are
// schemaless by design: callers may supply arbitrary fields.
type ManagementRepository struct {
	db *mongo.Database
}

func NewManagementRepository(db *mongo.Database) *ManagementRepository {
	return &ManagementRepository{db: db}
}

func (r *ManagementRepository) collection(itemType string) (*mongo.Collection, error) {
	if !store.ManagementCollections[itemType] {
		return nil, ErrUnknownItemType
	}
	return r.db.Collection(itemType), nil
}

// Insert stores a caller-supplied document with creation metadata and
// returns it with "id" set to the generated identifier.
func (r *ManagementRepository) Insert(ctx context.Context, itemType string, doc bson.M, createdBy string) (bson.M, error) {
	coll, err := r.collection(itemType)
	if err != nil {
		return nil, err
	}

	now := models.TimestampNow(time.Now())
	doc["created_at"] = now
	doc["updated_at"] = now
	doc["created_by"] = createdBy
	delete(doc, "id")
	delete(doc, "_id")

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return formatItem(doc, res.InsertedID.(primitive.ObjectID)), nil
}

// List returns every document in the collection, identifiers stringified.
func (r *ManagementRepository) List(ctx context.Context, itemType string) ([]bson.M, error) {
	coll, err := r.collection(itemType)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []bson.M{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		oid, _ := doc["_id"].(primitive.ObjectID)
		items = append(items, formatItem(doc, oid))
	}
	return items, cur.Err()
}

// Update applies the caller-supplied fields to one document and returns the
// updated document.
func (r *ManagementRepository) Update(ctx context.Context, itemType, id string, doc bson.M, updatedBy string) (bson.M, error) {
	coll, err := r.collection(itemType)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	doc["updated_at"] = models.TimestampNow(time.Now())
	doc["updated_by"] = updatedBy
	delete(doc, "id")
	delete(doc, "_id")

	res, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": doc})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	var updated bson.M
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
		return nil, err
	}
	return formatItem(updated, oid), nil
}

func (r *ManagementRepository) Delete(ctx context.Context, itemType, id string) error {
	coll, err := r.collection(itemType)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// formatItem maps the storage _id to a wire "id" string.
func formatItem(doc bson.M, oid primitive.ObjectID) bson.M {
	out := bson.M{"id": oid.Hex()}
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}
