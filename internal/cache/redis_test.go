package cache

import (
	"context"
	"testing"

	"crm-backend/internal/config"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNew_NoAddressConfigured(t *testing.T) {
	t.Parallel()

	c, err := New(&config.Config{})
	if err == nil {
		t.Fatal("expected an error without a redis address")
	}
	if c != nil {
		t.Fatalf("client = %v, want nil", c)
	}
}

func TestNilClient_DegradesToMiss(t *testing.T) {
	t.Parallel()

	var c *Client
	ctx := context.Background()

	if _, ok := c.GetManagementList(ctx, "brands"); ok {
		t.Fatal("nil client reported a cache hit")
	}
	// Writes and invalidations on a nil client must be silent no-ops.
	c.SetManagementList(ctx, "brands", []bson.M{{"name": "Acme"}})
	c.InvalidateManagementList(ctx, "brands")
}
