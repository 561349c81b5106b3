package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GencZhushi/schedule-builder/config"
)

// Nil is returned by read operations when a key does not exist.
var Nil = goredis.Nil

// Client wraps the Redis connection. It backs the upload rate limiter and,
// when configured, the session store.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and pings it once as a health check.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Rate limiting ──

// CheckRateLimit counts a hit against key within a fixed window and reports
// whether the caller is still under the limit.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// ── Generic key-value (session storage) ──

// SetNX stores val under key with a TTL, failing when the key exists.
func (c *Client) SetNX(ctx context.Context, key, val string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, val, ttl).Result()
}

// Set stores val under key with a TTL, overwriting any previous value.
func (c *Client) Set(ctx context.Context, key, val string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, val, ttl).Err()
}

// GetEx reads key and refreshes its TTL; returns Nil when absent.
func (c *Client) GetEx(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return c.rdb.GetEx(ctx, key, ttl).Result()
}

// Del removes key; removing an absent key is not an error.
func (c *Client) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
