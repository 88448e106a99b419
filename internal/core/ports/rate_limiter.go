package ports

import (
	"context"
	"time"
)

// UpstreamLimiter spaces calls to the stats provider. One instance is shared
// by every upstream call in the process and MUST be safe for concurrent use.
type UpstreamLimiter interface {
	// Wait blocks until the caller may issue the next upstream request.
	// It returns ctx.Err() if the context ends first.
	Wait(ctx context.Context) error
}

// WindowCounter provides atomic fixed-window counters for inbound request
// quotas. Implementation should be concurrency-safe.
type WindowCounter interface {
	// IncrementWindow atomically increments the counter for clientID in the current window
	// and ensures the key expires after ttl. Returns the updated count and the window start time.
	IncrementWindow(ctx context.Context, clientID string, window time.Duration, keyPrefix string, ttl time.Duration) (count int, windowStart time.Time, err error)
}

// ClientRateLimiter limits inbound API requests per client.
type ClientRateLimiter interface {
	// Allow consumes one request unit for the client and reports whether it is permitted.
	// remaining: number of additional requests allowed in current window after this one (>=0)
	// limit: configured max requests per window
	// reset: time when the current window resets
	Allow(ctx context.Context, clientID string) (allowed bool, remaining int, limit int, reset time.Time, err error)
}
