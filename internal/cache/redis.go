package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"crm-backend/internal/config"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

// Client wraps the optional Redis connection. The cache is a pure
// accelerator: a nil *Client is valid and degrades every helper to a miss,
// so callers never branch on whether Redis is actually available.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis. When no address is configured or the ping fails it
// returns a nil client alongside the error; the nil client still works.
func New(cfg *config.Config) (*Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, errors.New("no redis address configured")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return &Client{rdb: rdb}, nil
}

func managementKey(itemType string) string {
	return "mgmt:" + itemType
}

// GetManagementList returns the cached reference list if available.
func (c *Client) GetManagementList(ctx context.Context, itemType string) ([]bson.M, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, managementKey(itemType)).Bytes()
	if err != nil {
		return nil, false
	}
	var items []bson.M
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

// SetManagementList caches a reference list for 5 minutes.
func (c *Client) SetManagementList(ctx context.Context, itemType string, items []bson.M) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, managementKey(itemType), data, 5*time.Minute)
}

// InvalidateManagementList drops the cached list after a write.
func (c *Client) InvalidateManagementList(ctx context.Context, itemType string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, managementKey(itemType))
}
