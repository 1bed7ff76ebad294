// Package cache stores serialized integration results.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for multi-instance servers
//   - [MongoCache]: durable cache with a TTL index
//   - [NullCache]: stores nothing, used by --no-cache
//
// All backends implement [Cache] and [Clearer]. Values are opaque bytes;
// the pipeline stores solutions encoded by pkg/io.
//
// # Keys
//
// A [Keyer] turns a problem hash plus the options that affect the result
// into a cache key. [ScopedKeyer] prefixes every key so several tenants or
// environments can share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (hit == false) and not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed, or -1
	// when the backend cannot tell.
	Clear(ctx context.Context) (int, error)
}

// Default time-to-live values.
const (
	// TTLSolution applies to cached integration results. Results depend only
	// on their inputs, so the TTL merely bounds storage.
	TTLSolution = 30 * 24 * time.Hour
)
