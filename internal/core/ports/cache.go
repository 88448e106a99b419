package ports

import (
	"context"
	"errors"
	"time"
)

// ErrPrefixUnsupported is returned by backends that cannot enumerate keys.
var ErrPrefixUnsupported = errors.New("cache: prefix invalidation not supported by backend")

// Cache defines the key-value contract every cache backend implements.
// Implementations return errors instead of panicking; CacheService turns
// failures into misses so a broken backend never blocks a request.
type Cache interface {
	// Get returns the raw bytes for key. ok=false if absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key, replacing any prior entry, for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)
	// DeletePrefix removes every key starting with prefix and returns the count.
	// Backends without key enumeration return ErrPrefixUnsupported.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	// SupportsPrefix reports whether DeletePrefix is implemented.
	SupportsPrefix() bool
	// Backend names the implementation for stats and logging.
	Backend() string
}
