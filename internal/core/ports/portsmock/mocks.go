package portsmock

import (
	"context"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/avatarctic/shotchart-service/internal/core/domain/upstream"
	"github.com/avatarctic/shotchart-service/internal/core/ports"
)

// CacheMock is a lightweight mock for ports.Cache
type CacheMock struct {
	GetFn          func(ctx context.Context, key string) ([]byte, bool, error)
	SetFn          func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFn       func(ctx context.Context, key string) (bool, error)
	DeletePrefixFn func(ctx context.Context, prefix string) (int, error)
	BackendName    string
	Prefix         bool
}

func (m *CacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return nil, false, nil
}
func (m *CacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value, ttl)
	}
	return nil
}
func (m *CacheMock) Delete(ctx context.Context, key string) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	return false, nil
}
func (m *CacheMock) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if m.DeletePrefixFn != nil {
		return m.DeletePrefixFn(ctx, prefix)
	}
	return 0, ports.ErrPrefixUnsupported
}
func (m *CacheMock) SupportsPrefix() bool { return m.Prefix }
func (m *CacheMock) Backend() string {
	if m.BackendName != "" {
		return m.BackendName
	}
	return "mock"
}

// StatsProviderMock is a lightweight mock for ports.StatsProvider
type StatsProviderMock struct {
	AllPlayersFn      func(ctx context.Context) ([]player.CatalogEntry, error)
	PlayerDetailsFn   func(ctx context.Context, playerID int) (*player.Details, error)
	ShotChartFn       func(ctx context.Context, playerID int, season, seasonType string) ([]player.ShotRow, error)
	SeasonDashboardFn func(ctx context.Context, playerID int, season string) (*player.SeasonTotals, error)
	CareerTotalsFn    func(ctx context.Context, playerID int) ([]player.SeasonTotals, error)
}

func (m *StatsProviderMock) AllPlayers(ctx context.Context) ([]player.CatalogEntry, error) {
	if m.AllPlayersFn != nil {
		return m.AllPlayersFn(ctx)
	}
	return nil, nil
}
func (m *StatsProviderMock) PlayerDetails(ctx context.Context, playerID int) (*player.Details, error) {
	if m.PlayerDetailsFn != nil {
		return m.PlayerDetailsFn(ctx, playerID)
	}
	return nil, nil
}
func (m *StatsProviderMock) ShotChart(ctx context.Context, playerID int, season, seasonType string) ([]player.ShotRow, error) {
	if m.ShotChartFn != nil {
		return m.ShotChartFn(ctx, playerID, season, seasonType)
	}
	return nil, nil
}
func (m *StatsProviderMock) SeasonDashboard(ctx context.Context, playerID int, season string) (*player.SeasonTotals, error) {
	if m.SeasonDashboardFn != nil {
		return m.SeasonDashboardFn(ctx, playerID, season)
	}
	return nil, nil
}
func (m *StatsProviderMock) CareerTotals(ctx context.Context, playerID int) ([]player.SeasonTotals, error) {
	if m.CareerTotalsFn != nil {
		return m.CareerTotalsFn(ctx, playerID)
	}
	return nil, nil
}

// UpstreamClientMock is a lightweight mock for ports.UpstreamClient
type UpstreamClientMock struct {
	SearchFn   func(ctx context.Context, query string, limit int) upstream.Result[[]player.Player]
	GetInfoFn  func(ctx context.Context, playerID int) upstream.Result[*player.Player]
	GetShotsFn func(ctx context.Context, playerID int, season, seasonType string) upstream.Result[[]player.Shot]
	GetStatsFn func(ctx context.Context, playerID int, season string) upstream.Result[player.Stats]
}

func (m *UpstreamClientMock) Search(ctx context.Context, query string, limit int) upstream.Result[[]player.Player] {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query, limit)
	}
	return upstream.Empty([]player.Player{})
}
func (m *UpstreamClientMock) GetInfo(ctx context.Context, playerID int) upstream.Result[*player.Player] {
	if m.GetInfoFn != nil {
		return m.GetInfoFn(ctx, playerID)
	}
	return upstream.NotFound[*player.Player]()
}
func (m *UpstreamClientMock) GetShots(ctx context.Context, playerID int, season, seasonType string) upstream.Result[[]player.Shot] {
	if m.GetShotsFn != nil {
		return m.GetShotsFn(ctx, playerID, season, seasonType)
	}
	return upstream.Empty([]player.Shot{})
}
func (m *UpstreamClientMock) GetStats(ctx context.Context, playerID int, season string) upstream.Result[player.Stats] {
	if m.GetStatsFn != nil {
		return m.GetStatsFn(ctx, playerID, season)
	}
	return upstream.Empty(player.ZeroStats())
}

// PlayerServiceMock is a lightweight mock for ports.PlayerService
type PlayerServiceMock struct {
	SearchPlayersFn func(ctx context.Context, query string, limit int) ([]player.Player, error)
	GetPlayerFn     func(ctx context.Context, playerID int) (*player.Player, error)
	GetShotsFn      func(ctx context.Context, playerID int, season, seasonType string) ([]player.Shot, error)
	GetStatsFn      func(ctx context.Context, playerID int, season string) (player.Stats, error)
	GetSeasonsFn    func(ctx context.Context) ([]string, error)
}

func (m *PlayerServiceMock) SearchPlayers(ctx context.Context, query string, limit int) ([]player.Player, error) {
	if m.SearchPlayersFn != nil {
		return m.SearchPlayersFn(ctx, query, limit)
	}
	return []player.Player{}, nil
}
func (m *PlayerServiceMock) GetPlayer(ctx context.Context, playerID int) (*player.Player, error) {
	if m.GetPlayerFn != nil {
		return m.GetPlayerFn(ctx, playerID)
	}
	return nil, nil
}
func (m *PlayerServiceMock) GetShots(ctx context.Context, playerID int, season, seasonType string) ([]player.Shot, error) {
	if m.GetShotsFn != nil {
		return m.GetShotsFn(ctx, playerID, season, seasonType)
	}
	return []player.Shot{}, nil
}
func (m *PlayerServiceMock) GetStats(ctx context.Context, playerID int, season string) (player.Stats, error) {
	if m.GetStatsFn != nil {
		return m.GetStatsFn(ctx, playerID, season)
	}
	return player.ZeroStats(), nil
}
func (m *PlayerServiceMock) GetSeasons(ctx context.Context) ([]string, error) {
	if m.GetSeasonsFn != nil {
		return m.GetSeasonsFn(ctx)
	}
	return []string{}, nil
}

// CacheAdminMock is a lightweight mock for ports.CacheAdmin
type CacheAdminMock struct {
	StatsFn       func(ctx context.Context) ports.CacheStats
	ClearPlayerFn func(ctx context.Context, playerID int) int
	HealthCheckFn func(ctx context.Context) error
}

func (m *CacheAdminMock) Stats(ctx context.Context) ports.CacheStats {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return ports.CacheStats{Backend: "mock"}
}
func (m *CacheAdminMock) ClearPlayer(ctx context.Context, playerID int) int {
	if m.ClearPlayerFn != nil {
		return m.ClearPlayerFn(ctx, playerID)
	}
	return 0
}
func (m *CacheAdminMock) HealthCheck(ctx context.Context) error {
	if m.HealthCheckFn != nil {
		return m.HealthCheckFn(ctx)
	}
	return nil
}

// WarmerMock is a lightweight mock for ports.Warmer
type WarmerMock struct {
	WarmFn func(ctx context.Context, playerIDs []int, seasons []string) ports.WarmupReport
}

func (m *WarmerMock) Warm(ctx context.Context, playerIDs []int, seasons []string) ports.WarmupReport {
	if m.WarmFn != nil {
		return m.WarmFn(ctx, playerIDs, seasons)
	}
	return ports.WarmupReport{Errors: []string{}}
}

// LimiterMock is a lightweight mock for ports.UpstreamLimiter
type LimiterMock struct {
	WaitFn func(ctx context.Context) error
}

func (m *LimiterMock) Wait(ctx context.Context) error {
	if m.WaitFn != nil {
		return m.WaitFn(ctx)
	}
	return nil
}

// ClientRateLimiterMock is a lightweight mock for ports.ClientRateLimiter
type ClientRateLimiterMock struct {
	AllowFn func(ctx context.Context, clientID string) (bool, int, int, time.Time, error)
}

func (m *ClientRateLimiterMock) Allow(ctx context.Context, clientID string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, clientID)
	}
	return true, 1, 1, time.Now().Add(time.Minute), nil
}

// HealthCheckerMock is a lightweight mock for ports.HealthChecker
type HealthCheckerMock struct {
	NameValue string
	CheckFn   func(ctx context.Context) error
}

func (m *HealthCheckerMock) Name() string { return m.NameValue }
func (m *HealthCheckerMock) Check(ctx context.Context) error {
	if m.CheckFn != nil {
		return m.CheckFn(ctx)
	}
	return nil
}
