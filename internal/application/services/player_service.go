package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/avatarctic/shotchart-service/internal/core/domain/cachekey"
	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/avatarctic/shotchart-service/internal/core/domain/upstream"
	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// PlayerService implements ports.PlayerService as a read-through cache over
// the upstream client. Concurrent misses on one key share a single fetch.
type PlayerService struct {
	cache    *CacheService
	upstream ports.UpstreamClient
	seasons  SeasonRange
	coalesce bool
	sf       singleflight.Group
	logger   *logrus.Logger
}

// SeasonRange bounds the season labels served by GetSeasons.
type SeasonRange struct {
	FirstYear int
	LastYear  int
}

// PlayerServiceConfig groups tunables of the player service.
type PlayerServiceConfig struct {
	Seasons SeasonRange
	// CoalesceMisses shares one upstream fetch between concurrent misses.
	CoalesceMisses bool
}

var _ ports.PlayerService = (*PlayerService)(nil)

func NewPlayerService(cache *CacheService, up ports.UpstreamClient, cfg PlayerServiceConfig, logger *logrus.Logger) *PlayerService {
	return &PlayerService{cache: cache, upstream: up, seasons: cfg.Seasons, coalesce: cfg.CoalesceMisses, logger: logger}
}

// readThrough returns the cached value for key or loads, stores and returns
// it. The load and the cache write are detached from ctx cancellation so an
// abandoned request still populates the cache for the callers sharing it.
func readThrough[T any](ctx context.Context, s *PlayerService, key string, tag cachekey.Tag, load func(ctx context.Context) upstream.Result[T]) (T, error) {
	if v, ok := cacheGet[T](s.cache, ctx, key); ok {
		return v, nil
	}
	fill := func() (any, error) {
		detached := context.WithoutCancel(ctx)
		// another caller may have filled key since the miss above
		if v, ok := cachePeek[T](s.cache, detached, key); ok {
			return v, nil
		}
		res := load(detached)
		if res.Cacheable() {
			cacheSetSilently(s.cache, detached, key, res.Value, cachekey.TTL(tag))
		}
		return res.Value, nil
	}
	if !s.coalesce {
		v, _ := fill()
		return v.(T), nil
	}
	ch := s.sf.DoChan(key, fill)
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			var zero T
			return zero, r.Err
		}
		v, ok := r.Val.(T)
		if !ok {
			var zero T
			return zero, fmt.Errorf("unexpected type from singleflight result for %s", key)
		}
		return v, nil
	}
}

// SearchPlayers matches query case-insensitively; the lowercased query is
// part of the cache key.
func (s *PlayerService) SearchPlayers(ctx context.Context, query string, limit int) ([]player.Player, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	return readThrough(ctx, s, cachekey.SearchKey(q, limit), cachekey.TagPlayerSearch, func(ctx context.Context) upstream.Result[[]player.Player] {
		return s.upstream.Search(ctx, q, limit)
	})
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID int) (*player.Player, error) {
	return readThrough(ctx, s, cachekey.PlayerInfoKey(playerID), cachekey.TagPlayerInfo, func(ctx context.Context) upstream.Result[*player.Player] {
		res := s.upstream.GetInfo(ctx, playerID)
		if res.Status == upstream.StatusFailed {
			// no identity to serve; do not cache an absent player
			return upstream.NotFound[*player.Player]()
		}
		return res
	})
}

func (s *PlayerService) GetShots(ctx context.Context, playerID int, season, seasonType string) ([]player.Shot, error) {
	return readThrough(ctx, s, cachekey.PlayerShotsKey(playerID, season, seasonType), cachekey.TagPlayerShots, func(ctx context.Context) upstream.Result[[]player.Shot] {
		return s.upstream.GetShots(ctx, playerID, season, seasonType)
	})
}

func (s *PlayerService) GetStats(ctx context.Context, playerID int, season string) (player.Stats, error) {
	return readThrough(ctx, s, cachekey.PlayerStatsKey(playerID, season), cachekey.TagPlayerStats, func(ctx context.Context) upstream.Result[player.Stats] {
		return s.upstream.GetStats(ctx, playerID, season)
	})
}

// GetSeasons lists season labels newest first. Computed locally.
func (s *PlayerService) GetSeasons(ctx context.Context) ([]string, error) {
	return readThrough(ctx, s, cachekey.SeasonsKey(), cachekey.TagSeasons, func(context.Context) upstream.Result[[]string] {
		return upstream.OK(player.SeasonLabels(s.seasons.FirstYear, s.seasons.LastYear))
	})
}
