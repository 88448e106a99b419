package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/avatarctic/shotchart-service/internal/core/domain/upstream"
	"github.com/avatarctic/shotchart-service/internal/core/ports/portsmock"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var testCatalog = []player.CatalogEntry{
	{ID: 201935, FirstName: "James", LastName: "Harden", FullName: "James Harden", IsActive: true},
	{ID: 201939, FirstName: "Stephen", LastName: "Curry", FullName: "Stephen Curry", IsActive: true},
	{ID: 2544, FirstName: "LeBron", LastName: "James", FullName: "LeBron James", IsActive: true},
	{ID: 1627750, FirstName: "Jamal", LastName: "Murray", FullName: "Jamal Murray", IsActive: true},
}

func newTestUpstream(provider *portsmock.StatsProviderMock, limiter *portsmock.LimiterMock) *UpstreamClient {
	if limiter == nil {
		limiter = &portsmock.LimiterMock{}
	}
	return NewUpstreamClient(provider, limiter, &UpstreamClientConfig{Timeout: time.Second}, nil)
}

func catalogProvider() *portsmock.StatsProviderMock {
	return &portsmock.StatsProviderMock{
		AllPlayersFn: func(ctx context.Context) ([]player.CatalogEntry, error) { return testCatalog, nil },
	}
}

func TestUpstreamSearch_Scenario(t *testing.T) {
	c := newTestUpstream(catalogProvider(), nil)

	res := c.Search(context.Background(), "jam", 2)
	require.Equal(t, upstream.StatusOK, res.Status)
	require.Len(t, res.Value, 2)
	require.Equal(t, "James Harden", res.Value[0].FullName)
	require.Equal(t, "LeBron James", res.Value[1].FullName)
	require.Equal(t, "https://cdn.nba.com/headshots/nba/latest/1040x760/201935.png", res.Value[0].ImageURL)
	require.Zero(t, res.Value[0].TeamID)
}

func TestUpstreamSearch_NoMatches(t *testing.T) {
	c := newTestUpstream(catalogProvider(), nil)
	res := c.Search(context.Background(), "zzz", 10)
	require.Equal(t, upstream.StatusEmpty, res.Status)
	require.NotNil(t, res.Value)
	require.Empty(t, res.Value)
}

func TestUpstreamSearch_FailureYieldsEmpty(t *testing.T) {
	c := newTestUpstream(&portsmock.StatsProviderMock{
		AllPlayersFn: func(ctx context.Context) ([]player.CatalogEntry, error) { return nil, errors.New("boom") },
	}, nil)
	res := c.Search(context.Background(), "jam", 5)
	require.Equal(t, upstream.StatusFailed, res.Status)
	require.Error(t, res.Err)
	require.Empty(t, res.Value)
}

func TestUpstream_EveryCallPassesLimiter(t *testing.T) {
	var waits atomic.Int32
	limiter := &portsmock.LimiterMock{WaitFn: func(ctx context.Context) error {
		waits.Add(1)
		return nil
	}}
	provider := catalogProvider()
	provider.PlayerDetailsFn = func(ctx context.Context, id int) (*player.Details, error) { return nil, nil }
	c := newTestUpstream(provider, limiter)

	c.Search(context.Background(), "jam", 2)
	c.GetInfo(context.Background(), 2544)
	require.Equal(t, int32(3), waits.Load(), "search=1, info=catalog+details")
}

func TestUpstream_LimiterCancelledIsFailure(t *testing.T) {
	limiter := &portsmock.LimiterMock{WaitFn: func(ctx context.Context) error { return context.Canceled }}
	called := false
	provider := &portsmock.StatsProviderMock{
		ShotChartFn: func(ctx context.Context, id int, season, st string) ([]player.ShotRow, error) {
			called = true
			return nil, nil
		},
	}
	c := newTestUpstream(provider, limiter)
	res := c.GetShots(context.Background(), 1, "2023-24", player.SeasonTypeRegular)
	require.Equal(t, upstream.StatusFailed, res.Status)
	require.ErrorIs(t, res.Err, context.Canceled)
	require.False(t, called)
}

func TestUpstreamGetInfo_Enriched(t *testing.T) {
	provider := catalogProvider()
	provider.PlayerDetailsFn = func(ctx context.Context, id int) (*player.Details, error) {
		require.Equal(t, 2544, id)
		return &player.Details{TeamID: 1610612747, TeamName: "Lakers", Position: "Forward", Jersey: "23"}, nil
	}
	c := newTestUpstream(provider, nil)

	res := c.GetInfo(context.Background(), 2544)
	require.Equal(t, upstream.StatusOK, res.Status)
	require.NotNil(t, res.Value)
	require.Equal(t, "LeBron James", res.Value.FullName)
	require.Equal(t, "Lakers", res.Value.TeamName)
	require.Equal(t, "23", res.Value.JerseyNumber)
}

func TestUpstreamGetInfo_EnrichmentFailureKeepsIdentity(t *testing.T) {
	provider := catalogProvider()
	provider.PlayerDetailsFn = func(ctx context.Context, id int) (*player.Details, error) {
		return nil, errors.New("timeout")
	}
	c := newTestUpstream(provider, nil)

	res := c.GetInfo(context.Background(), 201939)
	require.Equal(t, upstream.StatusOK, res.Status)
	require.Equal(t, "Stephen Curry", res.Value.FullName)
	require.Equal(t, 0, res.Value.TeamID)
	require.Equal(t, "", res.Value.TeamName)
	require.Equal(t, "", res.Value.Position)
	require.Equal(t, "", res.Value.JerseyNumber)
}

func TestUpstreamGetInfo_NotFound(t *testing.T) {
	c := newTestUpstream(catalogProvider(), nil)
	res := c.GetInfo(context.Background(), 42)
	require.Equal(t, upstream.StatusNotFound, res.Status)
	require.Nil(t, res.Value)
	require.NoError(t, res.Err)
	require.False(t, res.Cacheable())
}

func TestUpstreamGetInfo_CatalogFailure(t *testing.T) {
	c := newTestUpstream(&portsmock.StatsProviderMock{
		AllPlayersFn: func(ctx context.Context) ([]player.CatalogEntry, error) { return nil, errors.New("down") },
	}, nil)
	res := c.GetInfo(context.Background(), 2544)
	require.Equal(t, upstream.StatusFailed, res.Status)
	require.Nil(t, res.Value)
}

func TestUpstreamGetShots_MapsAndSkipsOvertime(t *testing.T) {
	provider := &portsmock.StatsProviderMock{
		ShotChartFn: func(ctx context.Context, id int, season, st string) ([]player.ShotRow, error) {
			return []player.ShotRow{
				{GameID: "1", GameEventID: "5", LocX: 10, LocY: 20, ShotDistance: 22, ShotMadeFlag: 1, ShotType: "3PT", Period: 2, MinutesRemaining: 3, SecondsRemaining: 7, ShotZoneBasic: "Above the Break 3"},
				{GameID: "1", GameEventID: "99", Period: 5},
			}, nil
		},
	}
	c := newTestUpstream(provider, nil)
	res := c.GetShots(context.Background(), 2544, "2023-24", player.SeasonTypeRegular)
	require.Equal(t, upstream.StatusOK, res.Status)
	require.Len(t, res.Value, 1)
	require.Equal(t, "shot_1_5", res.Value[0].ID)
	require.Equal(t, "3:07", res.Value[0].TimeRemaining)
	require.True(t, res.Value[0].ShotMade)
}

func TestUpstreamGetShots_LogsSkippedOvertime(t *testing.T) {
	provider := &portsmock.StatsProviderMock{
		ShotChartFn: func(ctx context.Context, id int, season, st string) ([]player.ShotRow, error) {
			return []player.ShotRow{
				{GameID: "1", GameEventID: "5", Period: 4},
				{GameID: "1", GameEventID: "98", Period: 5},
				{GameID: "1", GameEventID: "99", Period: 6},
			}, nil
		},
	}
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	c := NewUpstreamClient(provider, &portsmock.LimiterMock{}, &UpstreamClientConfig{Timeout: time.Second}, logger)

	res := c.GetShots(context.Background(), 2544, "2023-24", player.SeasonTypeRegular)
	require.Len(t, res.Value, 1)

	var skipped *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "skipped overtime shots" {
			skipped = e
		}
	}
	require.NotNil(t, skipped)
	require.Equal(t, logrus.InfoLevel, skipped.Level)
	require.Equal(t, 2, skipped.Data["skipped"])
}

func TestUpstreamGetShots_FailureYieldsEmpty(t *testing.T) {
	provider := &portsmock.StatsProviderMock{
		ShotChartFn: func(ctx context.Context, id int, season, st string) ([]player.ShotRow, error) {
			return nil, errors.New("503")
		},
	}
	res := newTestUpstream(provider, nil).GetShots(context.Background(), 1, "2023-24", player.SeasonTypeRegular)
	require.Equal(t, upstream.StatusFailed, res.Status)
	require.NotNil(t, res.Value)
	require.Empty(t, res.Value)
}

func TestUpstreamGetShots_Timeout(t *testing.T) {
	provider := &portsmock.StatsProviderMock{
		ShotChartFn: func(ctx context.Context, id int, season, st string) ([]player.ShotRow, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	c := NewUpstreamClient(provider, &portsmock.LimiterMock{}, &UpstreamClientConfig{Timeout: 20 * time.Millisecond}, nil)
	res := c.GetShots(context.Background(), 1, "2023-24", player.SeasonTypeRegular)
	require.Equal(t, upstream.StatusFailed, res.Status)
	require.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestUpstreamGetStats_Dashboard(t *testing.T) {
	careerCalled := false
	provider := &portsmock.StatsProviderMock{
		SeasonDashboardFn: func(ctx context.Context, id int, season string) (*player.SeasonTotals, error) {
			return &player.SeasonTotals{FGA: 100, FGM: 50, FGPct: 0.5, FG3A: 40, FG3M: 15, FG3Pct: 0.375}, nil
		},
		CareerTotalsFn: func(ctx context.Context, id int) ([]player.SeasonTotals, error) {
			careerCalled = true
			return nil, nil
		},
	}
	res := newTestUpstream(provider, nil).GetStats(context.Background(), 2544, "2023-24")
	require.Equal(t, upstream.StatusOK, res.Status)
	require.Equal(t, 100, res.Value.TotalAttempts)
	require.Equal(t, 0.375, res.Value.ThreePointPercentage)
	require.Equal(t, 0.0, res.Value.AverageShotDistance)
	require.False(t, careerCalled)
}

func TestUpstreamGetStats_FallbackMatchingSeason(t *testing.T) {
	provider := &portsmock.StatsProviderMock{
		SeasonDashboardFn: func(ctx context.Context, id int, season string) (*player.SeasonTotals, error) {
			return nil, errors.New("dashboard down")
		},
		CareerTotalsFn: func(ctx context.Context, id int) ([]player.SeasonTotals, error) {
			return []player.SeasonTotals{
				{SeasonID: "2022-23", FGA: 10},
				{SeasonID: "2023-24", FGA: 20},
				{SeasonID: "2024-25", FGA: 30},
			}, nil
		},
	}
	res := newTestUpstream(provider, nil).GetStats(context.Background(), 2544, "2023-24")
	require.Equal(t, upstream.StatusOK, res.Status)
	require.Equal(t, 20, res.Value.TotalAttempts)
}

func TestUpstreamGetStats_FallbackMostRecentRow(t *testing.T) {
	provider := &portsmock.StatsProviderMock{
		SeasonDashboardFn: func(ctx context.Context, id int, season string) (*player.SeasonTotals, error) {
			return nil, nil
		},
		CareerTotalsFn: func(ctx context.Context, id int) ([]player.SeasonTotals, error) {
			return []player.SeasonTotals{{SeasonID: "2010-11", FGA: 10}, {SeasonID: "2011-12", FGA: 11}}, nil
		},
	}
	res := newTestUpstream(provider, nil).GetStats(context.Background(), 2544, "2023-24")
	require.Equal(t, upstream.StatusOK, res.Status)
	require.Equal(t, 11, res.Value.TotalAttempts)
}

func TestUpstreamGetStats_BothEmptyIsZero(t *testing.T) {
	res := newTestUpstream(&portsmock.StatsProviderMock{}, nil).GetStats(context.Background(), 2544, "2023-24")
	require.Equal(t, upstream.StatusEmpty, res.Status)
	require.Equal(t, player.ZeroStats(), res.Value)
}

func TestUpstreamGetStats_BothFailIsZero(t *testing.T) {
	provider := &portsmock.StatsProviderMock{
		SeasonDashboardFn: func(ctx context.Context, id int, season string) (*player.SeasonTotals, error) {
			return nil, errors.New("a")
		},
		CareerTotalsFn: func(ctx context.Context, id int) ([]player.SeasonTotals, error) {
			return nil, errors.New("b")
		},
	}
	res := newTestUpstream(provider, nil).GetStats(context.Background(), 2544, "2023-24")
	require.Equal(t, upstream.StatusFailed, res.Status)
	require.Equal(t, player.ZeroStats(), res.Value)
	require.True(t, res.Cacheable())
}
