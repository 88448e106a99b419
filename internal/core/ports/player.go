package ports

import (
	"context"

	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/avatarctic/shotchart-service/internal/core/domain/upstream"
)

// UpstreamClient issues rate limited provider queries and normalizes the
// results. Upstream failures are absorbed into empty/zero values and reported
// through the Result status.
type UpstreamClient interface {
	Search(ctx context.Context, query string, limit int) upstream.Result[[]player.Player]
	GetInfo(ctx context.Context, playerID int) upstream.Result[*player.Player]
	GetShots(ctx context.Context, playerID int, season, seasonType string) upstream.Result[[]player.Shot]
	GetStats(ctx context.Context, playerID int, season string) upstream.Result[player.Stats]
}

// PlayerService serves aggregated player data through the cache.
type PlayerService interface {
	SearchPlayers(ctx context.Context, query string, limit int) ([]player.Player, error)
	// GetPlayer returns nil without error when the player does not exist.
	GetPlayer(ctx context.Context, playerID int) (*player.Player, error)
	GetShots(ctx context.Context, playerID int, season, seasonType string) ([]player.Shot, error)
	GetStats(ctx context.Context, playerID int, season string) (player.Stats, error)
	GetSeasons(ctx context.Context) ([]string, error)
}
