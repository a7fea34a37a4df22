// Package cache stores rendered frames.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for preview servers
//   - [NullCache]: stores nothing
//
// Keys come from a [Keyer], which hashes everything that affects a frame's
// bytes (story, dataset, step, format, size) so a changed input never hits a
// stale entry.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/scrollplot/pkg/errors"
)

// Cache is a byte store with optional expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired and
	// corrupt entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry written by this cache.
	Clear(ctx context.Context) error
	Close() error
}

// Backend names a Cache implementation.
type Backend string

const (
	BackendFile  Backend = "file"
	BackendRedis Backend = "redis"
	BackendNone  Backend = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend   Backend
	Dir       string // file backend
	RedisAddr string // redis backend
	Prefix    string // redis key prefix
}

// Open creates the cache described by cfg. An empty backend means file.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendFile, "":
		if cfg.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "file cache needs a directory")
		}
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.RedisAddr, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", cfg.Backend)
}
