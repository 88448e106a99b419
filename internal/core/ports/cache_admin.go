package ports

import (
	"context"

	"github.com/google/uuid"
)

// CacheStats is a point-in-time view of cache activity since process start.
type CacheStats struct {
	Backend          string   `json:"backend"`
	Hits             int64    `json:"hits"`
	Misses           int64    `json:"misses"`
	Sets             int64    `json:"sets"`
	Deletes          int64    `json:"deletes"`
	Errors           int64    `json:"errors"`
	HitRate          float64  `json:"hitRate"`
	PrefixInvalidate bool     `json:"prefixInvalidation"`
	Limitations      []string `json:"limitations,omitempty"`
}

// CacheAdmin exposes operational cache controls.
type CacheAdmin interface {
	Stats(ctx context.Context) CacheStats
	// ClearPlayer removes the cached info, shots and stats of one player and
	// returns how many entries were removed.
	ClearPlayer(ctx context.Context, playerID int) int
	// HealthCheck round-trips a probe key through the backend.
	HealthCheck(ctx context.Context) error
}

// WarmupReport summarizes one warmup run.
type WarmupReport struct {
	RunID         uuid.UUID `json:"runId"`
	PlayersWarmed int       `json:"playersWarmed"`
	ShotsWarmed   int       `json:"shotsWarmed"`
	StatsWarmed   int       `json:"statsWarmed"`
	Errors        []string  `json:"errors"`
}

// Warmer pre-populates the cache for a set of players and seasons.
type Warmer interface {
	Warm(ctx context.Context, playerIDs []int, seasons []string) WarmupReport
}
