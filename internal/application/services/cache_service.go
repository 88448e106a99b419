package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/domain/cachekey"
	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/sirupsen/logrus"
)

const healthProbeKey = cachekey.Namespace + "health_check"

// CacheService wraps a ports.Cache backend. Backend failures are logged and
// reported as a miss, false or 0; they are never returned to callers.
type CacheService struct {
	cache        ports.Cache
	metrics      ports.Metrics
	logger       *logrus.Logger
	knownSeasons []string

	hits    atomic.Int64
	misses  atomic.Int64
	sets    atomic.Int64
	deletes atomic.Int64
	errors  atomic.Int64
}

// CacheServiceConfig groups optional collaborators of the cache service.
type CacheServiceConfig struct {
	Metrics ports.Metrics
	// KnownSeasons are the season labels tried when a player is cleared on a
	// backend without prefix invalidation.
	KnownSeasons []string
}

func NewCacheService(cache ports.Cache, cfg *CacheServiceConfig, logger *logrus.Logger) *CacheService {
	s := &CacheService{cache: cache, metrics: ports.NopMetrics{}, logger: logger}
	if cfg != nil {
		if cfg.Metrics != nil {
			s.metrics = cfg.Metrics
		}
		s.knownSeasons = cfg.KnownSeasons
	}
	return s
}

func (s *CacheService) Get(ctx context.Context, key string) ([]byte, bool) {
	tag := string(cachekey.TagOf(key))
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.fail("get", key, err)
		ok = false
	}
	if !ok {
		s.misses.Add(1)
		s.metrics.CacheLookup(tag, false)
		return nil, false
	}
	s.hits.Add(1)
	s.metrics.CacheLookup(tag, true)
	if s.logger != nil {
		s.logger.WithField("key", key).Debug("cache hit")
	}
	return b, true
}

// peek reads key without touching the hit and miss counters. Used to re-check
// the cache after a miss has already been recorded.
func (s *CacheService) peek(ctx context.Context, key string) ([]byte, bool) {
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.fail("get", key, err)
		return nil, false
	}
	return b, ok
}

func (s *CacheService) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.fail("set", key, err)
		return false
	}
	s.sets.Add(1)
	return true
}

func (s *CacheService) Delete(ctx context.Context, key string) bool {
	removed, err := s.cache.Delete(ctx, key)
	if err != nil {
		s.fail("delete", key, err)
		return false
	}
	if removed {
		s.deletes.Add(1)
	}
	return removed
}

// InvalidatePrefix removes every key starting with prefix. Backends without
// key enumeration report 0.
func (s *CacheService) InvalidatePrefix(ctx context.Context, prefix string) int {
	n, err := s.cache.DeletePrefix(ctx, prefix)
	if errors.Is(err, ports.ErrPrefixUnsupported) {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"prefix": prefix, "backend": s.cache.Backend()}).Warn("cache: prefix invalidation unsupported")
		}
		return 0
	}
	if err != nil {
		s.fail("delete_prefix", prefix, err)
		return 0
	}
	s.deletes.Add(int64(n))
	return n
}

func (s *CacheService) ClearPlayer(ctx context.Context, playerID int) int {
	removed := 0
	if s.Delete(ctx, cachekey.PlayerInfoKey(playerID)) {
		removed++
	}
	for _, tag := range []cachekey.Tag{cachekey.TagPlayerShots, cachekey.TagPlayerStats} {
		n, err := s.cache.DeletePrefix(ctx, cachekey.Prefix(tag, playerID))
		switch {
		case err == nil:
			s.deletes.Add(int64(n))
			removed += n
		case errors.Is(err, ports.ErrPrefixUnsupported):
			removed += s.clearKnownVariations(ctx, tag, playerID)
		default:
			s.fail("delete_prefix", cachekey.Prefix(tag, playerID), err)
		}
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"player_id": playerID, "removed": removed}).Info("cache: cleared player")
	}
	return removed
}

func (s *CacheService) clearKnownVariations(ctx context.Context, tag cachekey.Tag, playerID int) int {
	removed := 0
	for _, season := range s.knownSeasons {
		var keys []string
		if tag == cachekey.TagPlayerShots {
			keys = []string{
				cachekey.PlayerShotsKey(playerID, season, player.SeasonTypeRegular),
				cachekey.PlayerShotsKey(playerID, season, player.SeasonTypePlayoffs),
			}
		} else {
			keys = []string{cachekey.PlayerStatsKey(playerID, season)}
		}
		for _, k := range keys {
			if s.Delete(ctx, k) {
				removed++
			}
		}
	}
	return removed
}

func (s *CacheService) Stats(_ context.Context) ports.CacheStats {
	hits, misses := s.hits.Load(), s.misses.Load()
	st := ports.CacheStats{
		Backend:          s.cache.Backend(),
		Hits:             hits,
		Misses:           misses,
		Sets:             s.sets.Load(),
		Deletes:          s.deletes.Load(),
		Errors:           s.errors.Load(),
		PrefixInvalidate: s.cache.SupportsPrefix(),
	}
	if total := hits + misses; total > 0 {
		st.HitRate = float64(hits) / float64(total)
	}
	if !st.PrefixInvalidate {
		st.Limitations = append(st.Limitations, "prefix invalidation unavailable; player clears use known season variations")
	}
	return st
}

// HealthCheck writes, reads back and deletes a probe key.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	value := []byte(strconv.FormatInt(time.Now().UnixNano(), 10))
	if err := s.cache.Set(ctx, healthProbeKey, value, 10*time.Second); err != nil {
		return fmt.Errorf("cache probe set: %w", err)
	}
	got, ok, err := s.cache.Get(ctx, healthProbeKey)
	if err != nil {
		return fmt.Errorf("cache probe get: %w", err)
	}
	if !ok || !bytes.Equal(got, value) {
		return fmt.Errorf("cache probe value mismatch")
	}
	if _, err := s.cache.Delete(ctx, healthProbeKey); err != nil {
		return fmt.Errorf("cache probe delete: %w", err)
	}
	return nil
}

func (s *CacheService) fail(op, key string, err error) {
	s.errors.Add(1)
	s.metrics.CacheError(op)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"op": op, "key": key, "backend": s.cache.Backend()}).WithError(err).Error("cache backend error")
	}
}

// Utility helpers

func cacheGet[T any](s *CacheService, ctx context.Context, key string) (T, bool) {
	b, ok := s.Get(ctx, key)
	return decodeCached[T](s, key, b, ok)
}

func cachePeek[T any](s *CacheService, ctx context.Context, key string) (T, bool) {
	b, ok := s.peek(ctx, key)
	return decodeCached[T](s, key, b, ok)
}

func decodeCached[T any](s *CacheService, key string, b []byte, ok bool) (T, bool) {
	var v T
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		s.fail("decode", key, err)
		return v, false
	}
	return v, true
}

func cacheSetSilently(s *CacheService, ctx context.Context, key string, v any, ttl time.Duration) bool {
	b, err := json.Marshal(v)
	if err != nil {
		s.fail("encode", key, err)
		return false
	}
	return s.Set(ctx, key, b, ttl)
}
