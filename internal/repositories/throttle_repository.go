package repositories

import (
	"context"

	"crm-backend/internal/models"
	"crm-backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ThrottleRepository persists per-identity login failure records. Writes are
// read-then-write upserts, so two concurrent failures for the same identity
// can under-count (last write wins). Known race, kept as-is.
type ThrottleRepository struct {
	coll *mongo.Collection
}

func NewThrottleRepository(db *mongo.Database) *ThrottleRepository {
	return &ThrottleRepository{coll: db.Collection(store.CollThrottle)}
}

// Get returns the throttle record for an email, or nil if none exists.
func (r *ThrottleRepository) Get(ctx context.Context, email string) (*models.LoginThrottle, error) {
	var rec models.LoginThrottle
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert replaces the record for rec.Email, creating it if absent.
func (r *ThrottleRepository) Upsert(ctx context.Context, rec *models.LoginThrottle) error {
	fields := bson.M{
		"failed_attempts": rec.FailedAttempts,
		"last_attempt":    rec.LastAttempt,
		"last_ip":         rec.LastIP,
	}
	update := bson.M{"$set": fields}
	if rec.LockedUntil != nil {
		fields["locked_until"] = rec.LockedUntil
	} else {
		update["$unset"] = bson.M{"locked_until": ""}
	}

	_, err := r.coll.UpdateOne(ctx, bson.M{"email": rec.Email}, update,
		options.Update().SetUpsert(true))
	return err
}

// Clear resets the counter and removes the lockout for an email.
func (r *ThrottleRepository) Clear(ctx context.Context, email string) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set":   bson.M{"failed_attempts": 0},
		"$unset": bson.M{"locked_until": ""},
	})
	return err
}
