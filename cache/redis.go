package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedNamespace = "revoked"

// Cache is a namespaced wrapper around a Redis client
type Cache struct {
	client redis.UniversalClient
}

// New connects to Redis and pings it once.
func New(ctx context.Context, addr, password string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Cache{client: client}, nil
}

// NewWithClient wraps an existing client
func NewWithClient(client redis.UniversalClient) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Set(ctx context.Context, namespace, key string, value interface{}, ttl time.Duration) error {
	return c.client.Set(ctx, namespace+":"+key, value, ttl).Err()
}

// Exists reports whether namespace:key is present
func (c *Cache) Exists(ctx context.Context, namespace, key string) (bool, error) {
	n, err := c.client.Exists(ctx, namespace+":"+key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	return n > 0, nil
}

// IncrWithExpire increments a counter and starts its window on first use.
// A key found without an expiry gets one on the next hit, so a failed
// EXPIRE cannot pin a counter forever.
func (c *Cache) IncrWithExpire(ctx context.Context, namespace, key string, window time.Duration) (int64, error) {
	countKey := namespace + ":" + key

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	if _, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, countKey)
		ttl = pipe.TTL(ctx, countKey)
		return nil
	}); err != nil {
		return 0, err
	}

	if ttl.Val() < 0 {
		if err := c.client.Expire(ctx, countKey, window).Err(); err != nil {
			return 0, fmt.Errorf("failed to set window on %s: %w", countKey, err)
		}
	}
	return incr.Val(), nil
}

// Revoke implements auth.RevocationStore
func (c *Cache) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return c.Set(ctx, revokedNamespace, jti, 1, ttl)
}

// IsRevoked implements auth.RevocationStore
func (c *Cache) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return c.Exists(ctx, revokedNamespace, jti)
}

func (c *Cache) Close() error {
	return c.client.Close()
}
