package repositories

import (
	"context"
	"time"

	"crm-backend/internal/models"
	"crm-backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TargetRepository struct {
	coll *mongo.Collection
}

func NewTargetRepository(db *mongo.Database) *TargetRepository {
	return &TargetRepository{coll: db.Collection(store.CollTargets)}
}

// Upsert sets the target fields for a user, creating the record if absent.
// Achieved fields are never written here; they belong to recalculation.
func (r *TargetRepository) Upsert(ctx context.Context, t *models.Target) error {
	now := models.TimestampNow(time.Now())
	_, err := r.coll.UpdateOne(ctx, bson.M{"user_id": t.UserID}, bson.M{
		"$set": bson.M{
			"sales_target":   t.SalesTarget,
			"invoice_target": t.InvoiceTarget,
			"period":         t.Period,
			"updated_at":     now,
		},
		"$setOnInsert": bson.M{
			"user_id":          t.UserID,
			"sales_achieved":   0.0,
			"invoice_achieved": 0.0,
			"created_at":       now,
		},
	}, options.Update().SetUpsert(true))
	return err
}

func (r *TargetRepository) GetByUser(ctx context.Context, userID string) (*models.Target, error) {
	var t models.Target
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TargetRepository) List(ctx context.Context) ([]*models.Target, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var targets []*models.Target
	if err := cur.All(ctx, &targets); err != nil {
		return nil, err
	}
	return targets, nil
}

// UpdateAchieved writes the recomputed achieved fields. The update is
// deliberately not an upsert: recalculation has no effect until an
// administrator has created the target record. Returns the matched count so
// callers can observe whether a target absorbed the refresh.
func (r *TargetRepository) UpdateAchieved(ctx context.Context, userID string, sales, invoice float64) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{
		"$set": bson.M{
			"sales_achieved":   sales,
			"invoice_achieved": invoice,
			"updated_at":       models.TimestampNow(time.Now()),
		},
	})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DeleteByUser removes a user's target record.
func (r *TargetRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
