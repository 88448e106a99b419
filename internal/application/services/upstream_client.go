package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/avatarctic/shotchart-service/internal/core/domain/upstream"
	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// Upstream call kinds used in logs and metrics.
const (
	kindSearch    = "search"
	kindInfo      = "info"
	kindDetails   = "details"
	kindShots     = "shots"
	kindDashboard = "dashboard"
	kindCareer    = "career"
)

const defaultUpstreamTimeout = 30 * time.Second

// UpstreamClient implements ports.UpstreamClient. Every provider call waits on
// the shared limiter and runs under a per-call timeout. Provider failures are
// absorbed into empty or zero values.
type UpstreamClient struct {
	provider ports.StatsProvider
	limiter  ports.UpstreamLimiter
	timeout  time.Duration
	metrics  ports.Metrics
	logger   *logrus.Logger
}

// UpstreamClientConfig groups optional settings of the upstream client.
type UpstreamClientConfig struct {
	Timeout time.Duration
	Metrics ports.Metrics
}

var _ ports.UpstreamClient = (*UpstreamClient)(nil)

func NewUpstreamClient(provider ports.StatsProvider, limiter ports.UpstreamLimiter, cfg *UpstreamClientConfig, logger *logrus.Logger) *UpstreamClient {
	c := &UpstreamClient{provider: provider, limiter: limiter, timeout: defaultUpstreamTimeout, metrics: ports.NopMetrics{}, logger: logger}
	if cfg != nil {
		if cfg.Timeout > 0 {
			c.timeout = cfg.Timeout
		}
		if cfg.Metrics != nil {
			c.metrics = cfg.Metrics
		}
	}
	return c
}

// call runs one provider request behind the limiter. Limiter waits are not
// counted against the call timeout.
func call[T any](ctx context.Context, c *UpstreamClient, kind string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if err := c.limiter.Wait(ctx); err != nil {
		return zero, fmt.Errorf("upstream %s: limiter: %w", kind, err)
	}
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	start := time.Now()
	v, err := fn(callCtx)
	status := "ok"
	if err != nil {
		status = "error"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
		}
	}
	c.metrics.UpstreamCall(kind, status, time.Since(start))
	if err != nil {
		return zero, fmt.Errorf("upstream %s: %w", kind, err)
	}
	return v, nil
}

// Search returns up to limit catalog players whose full, first or last name
// contains query, in catalog order.
func (c *UpstreamClient) Search(ctx context.Context, query string, limit int) upstream.Result[[]player.Player] {
	if limit <= 0 {
		return upstream.Empty([]player.Player{})
	}
	catalog, err := call(ctx, c, kindSearch, c.provider.AllPlayers)
	if err != nil {
		c.degraded(kindSearch, logrus.Fields{"query": query}, err)
		return upstream.Failed([]player.Player{}, err)
	}
	q := strings.ToLower(query)
	matches := make([]player.Player, 0, limit)
	for _, e := range catalog {
		if len(matches) >= limit {
			break
		}
		if !e.Valid() || !e.Matches(q) {
			continue
		}
		matches = append(matches, player.FromCatalog(e))
	}
	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{"query": query, "found": len(matches)}).Info("player search")
	}
	if len(matches) == 0 {
		return upstream.Empty(matches)
	}
	return upstream.OK(matches)
}

// GetInfo returns the catalog identity of a player enriched with team,
// position and jersey. Unknown ids are NotFound; enrichment failures keep the
// identity with default enrichment fields.
func (c *UpstreamClient) GetInfo(ctx context.Context, playerID int) upstream.Result[*player.Player] {
	fields := logrus.Fields{"player_id": playerID}
	catalog, err := call(ctx, c, kindInfo, c.provider.AllPlayers)
	if err != nil {
		c.degraded(kindInfo, fields, err)
		return upstream.Failed[*player.Player](nil, err)
	}
	var found *player.CatalogEntry
	for i := range catalog {
		if catalog[i].ID == playerID {
			found = &catalog[i]
			break
		}
	}
	if found == nil || !found.Valid() {
		if c.logger != nil {
			c.logger.WithFields(fields).Warn("player not found in catalog")
		}
		return upstream.NotFound[*player.Player]()
	}

	p := player.FromCatalog(*found)
	details, err := call(ctx, c, kindDetails, func(ctx context.Context) (*player.Details, error) {
		return c.provider.PlayerDetails(ctx, playerID)
	})
	switch {
	case err != nil:
		c.degraded(kindDetails, fields, err)
	case details != nil:
		p.Enrich(*details)
	}
	return upstream.OK(&p)
}

// GetShots returns the player's shots for a season. Shots outside regulation
// periods are skipped.
func (c *UpstreamClient) GetShots(ctx context.Context, playerID int, season, seasonType string) upstream.Result[[]player.Shot] {
	fields := logrus.Fields{"player_id": playerID, "season": season, "season_type": seasonType}
	rows, err := call(ctx, c, kindShots, func(ctx context.Context) ([]player.ShotRow, error) {
		return c.provider.ShotChart(ctx, playerID, season, seasonType)
	})
	if err != nil {
		c.degraded(kindShots, fields, err)
		return upstream.Failed([]player.Shot{}, err)
	}
	shots := make([]player.Shot, 0, len(rows))
	skipped := 0
	for _, r := range rows {
		s, ok := player.ShotFromRow(r)
		if !ok {
			skipped++
			continue
		}
		shots = append(shots, s)
	}
	if c.logger != nil {
		if skipped > 0 {
			c.logger.WithFields(fields).WithField("skipped", skipped).Info("skipped overtime shots")
		}
		c.logger.WithFields(fields).WithField("shots", len(shots)).Info("retrieved shots")
	}
	if len(shots) == 0 {
		return upstream.Empty(shots)
	}
	return upstream.OK(shots)
}

// GetStats returns the season aggregate. It prefers the season dashboard,
// falls back to career totals (matching season, else the most recent row)
// and finally to zero stats.
func (c *UpstreamClient) GetStats(ctx context.Context, playerID int, season string) upstream.Result[player.Stats] {
	fields := logrus.Fields{"player_id": playerID, "season": season}
	totals, dashErr := call(ctx, c, kindDashboard, func(ctx context.Context) (*player.SeasonTotals, error) {
		return c.provider.SeasonDashboard(ctx, playerID, season)
	})
	if dashErr == nil && totals != nil {
		return upstream.OK(c.checkedStats(*totals, fields))
	}
	if dashErr != nil {
		c.degraded(kindDashboard, fields, dashErr)
	} else if c.logger != nil {
		c.logger.WithFields(fields).Info("no dashboard rows, trying career totals")
	}

	career, careerErr := call(ctx, c, kindCareer, func(ctx context.Context) ([]player.SeasonTotals, error) {
		return c.provider.CareerTotals(ctx, playerID)
	})
	if careerErr != nil {
		c.degraded(kindCareer, fields, careerErr)
		err := careerErr
		if dashErr != nil {
			err = errors.Join(dashErr, careerErr)
		}
		return upstream.Failed(player.ZeroStats(), err)
	}
	if len(career) == 0 {
		if c.logger != nil {
			c.logger.WithFields(fields).Warn("no stats found")
		}
		return upstream.Empty(player.ZeroStats())
	}
	picked := career[len(career)-1]
	for _, t := range career {
		if t.SeasonID == season {
			picked = t
			break
		}
	}
	return upstream.OK(c.checkedStats(picked, fields))
}

func (c *UpstreamClient) checkedStats(t player.SeasonTotals, fields logrus.Fields) player.Stats {
	stats := player.StatsFromTotals(t)
	if !stats.Consistent() && c.logger != nil {
		c.logger.WithFields(fields).WithFields(logrus.Fields{
			"fga": stats.TotalAttempts, "fgm": stats.TotalMade,
			"fg_pct": stats.FieldGoalPercentage, "fg3_pct": stats.ThreePointPercentage,
		}).Warn("upstream stats outside expected ranges")
	}
	return stats
}

func (c *UpstreamClient) degraded(kind string, fields logrus.Fields, err error) {
	if c.logger != nil {
		c.logger.WithFields(fields).WithField("kind", kind).WithError(err).Warn("upstream call failed, serving fallback")
	}
}
