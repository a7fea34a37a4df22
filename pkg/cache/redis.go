package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces keys in a shared Redis database.
const DefaultRedisPrefix = "scrollplot:"

// RedisCache stores entries in Redis under a key prefix. Expiry is Redis's
// own TTL.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to addr and checks the connection. Connection
// failures are retried with backoff.
func NewRedisCache(ctx context.Context, addr, prefix string) (*RedisCache, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: addr}), prefix)

	err := RetryWithBackoff(ctx, func() error {
		return classify(c.client.Ping(ctx).Err())
	})
	if err != nil {
		c.client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client without pinging it.
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Key returns the Redis key used for a cache key.
func (c *RedisCache) Key(key string) string { return c.prefix + key }

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify(err)
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return classify(c.client.Set(ctx, c.Key(key), data, ttl).Err())
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return classify(c.client.Del(ctx, c.Key(key)).Err())
}

// Clear deletes every key under the prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	it := c.client.Scan(ctx, 0, c.prefix+"*", 200).Iterator()
	var batch []string
	for it.Next(ctx) {
		batch = append(batch, it.Val())
		if len(batch) == 200 {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return classify(err)
			}
			batch = batch[:0]
		}
	}
	if err := it.Err(); err != nil {
		return classify(err)
	}
	if len(batch) > 0 {
		return classify(c.client.Del(ctx, batch...).Err())
	}
	return nil
}

func (c *RedisCache) Close() error { return c.client.Close() }

// classify marks network failures as retryable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
	}
	return err
}

var _ Cache = (*RedisCache)(nil)
