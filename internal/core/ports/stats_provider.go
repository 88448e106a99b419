package ports

import (
	"context"

	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
)

// StatsProvider is the raw upstream statistics API. Implementations decode
// provider payloads into the strict player.* row types and apply defaults for
// missing fields; they perform no rate limiting or caching.
type StatsProvider interface {
	// AllPlayers returns the full player catalog in provider order.
	AllPlayers(ctx context.Context) ([]player.CatalogEntry, error)
	// PlayerDetails returns enrichment fields, or nil when the provider has no row.
	PlayerDetails(ctx context.Context, playerID int) (*player.Details, error)
	// ShotChart returns shot detail rows for a player season.
	ShotChart(ctx context.Context, playerID int, season, seasonType string) ([]player.ShotRow, error)
	// SeasonDashboard returns the season's overall totals, or nil when absent.
	SeasonDashboard(ctx context.Context, playerID int, season string) (*player.SeasonTotals, error)
	// CareerTotals returns per-season regular season totals, oldest first.
	CareerTotals(ctx context.Context, playerID int) ([]player.SeasonTotals, error)
}
