package store

import (
	"context"
	"time"

	"crm-backend/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. Management collections are the fixed reference-data set;
// anything outside ManagementCollections is rejected at the handler boundary.
const (
	CollAccounts = "users"
	CollLeads    = "leads"
	CollTargets  = "targets"
	CollThrottle = "login_throttle"
	CollEvents   = "events"
	CollTasks    = "tasks"
)

var ManagementCollections = map[string]bool{
	"brands":    true,
	"products":  true,
	"locations": true,
	"statuses":  true,
	"sources":   true,
	"ownership": true,
}

// Connect opens a Mongo client and verifies the connection with a ping.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, err
	}

	return client, client.Database(cfg.Mongo.Database), nil
}

// EnsureIndexes creates the indexes the application relies on:
// the unique email constraint on accounts, lookup indexes on leads,
// and the TTL index that passively reaps expired lockout records.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollAccounts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    map[string]interface{}{"email": 1},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	leadIndexes := []mongo.IndexModel{
		{Keys: map[string]interface{}{"email": 1}},
		{Keys: map[string]interface{}{"assigned_to": 1}},
	}
	if _, err := db.Collection(CollLeads).Indexes().CreateMany(ctx, leadIndexes); err != nil {
		return err
	}

	// TTL expiry on locked_until: Mongo removes the throttle record once the
	// lockout window has passed, which implicitly unlocks the identity even
	// if it is never read again.
	_, err = db.Collection(CollThrottle).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    map[string]interface{}{"locked_until": 1},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

// IsDup reports whether err is a duplicate-key write error.
func IsDup(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
