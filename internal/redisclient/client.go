package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client caches narration text in Redis. The service runs fine without
// it; callers treat every error here as a cache miss.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client and verifies connectivity
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetExplanation retrieves cached explanation text for a decision key
func (c *Client) GetExplanation(ctx context.Context, key string) (string, bool, error) {
	text, err := c.rdb.Get(ctx, explanationKey(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get failed: %w", err)
	}
	return text, true, nil
}

// SetExplanation stores explanation text for a decision key with a TTL
func (c *Client) SetExplanation(ctx context.Context, key, text string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, explanationKey(key), text, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

func explanationKey(key string) string {
	return fmt.Sprintf("explanation:%s", key)
}
