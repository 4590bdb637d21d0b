package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache wraps the Redis client used for the access-token revocation
// list. Entries expire on their own once the underlying token would have
// expired anyway.
type RedisCache struct {
	Client *redis.Client
}

// New initializes a Redis client from a URL (redis://host:port/db).
func New(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisCache{Client: redis.NewClient(opts)}, nil
}

// NewFromClient wraps an existing client. Used by tests running against
// miniredis.
func NewFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.Client.Close()
}

func revocationKey(tokenHash string) string {
	return "auth:revoked:" + tokenHash
}

// Revoke denylists a token hash until its natural expiry.
func (c *RedisCache) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	return c.Client.Set(ctx, revocationKey(tokenHash), "1", ttl).Err()
}

// IsRevoked reports whether a token hash has been denylisted.
func (c *RedisCache) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	err := c.Client.Get(ctx, revocationKey(tokenHash)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
