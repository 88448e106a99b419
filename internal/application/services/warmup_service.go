package services

import (
	"context"
	"fmt"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/avatarctic/shotchart-service/internal/core/ports"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// DefaultWarmupSeasons is how many of the requested seasons are warmed.
const DefaultWarmupSeasons = 2

// WarmupService pre-populates the cache by issuing the same reads clients
// would, so warmed entries use the normal keys and TTLs.
type WarmupService struct {
	players    ports.PlayerService
	maxSeasons int
	clock      clockwork.Clock
	logger     *logrus.Logger
}

// WarmupConfig groups tunables of the warmup service.
type WarmupConfig struct {
	MaxSeasons int
	Clock      clockwork.Clock
}

var _ ports.Warmer = (*WarmupService)(nil)

func NewWarmupService(players ports.PlayerService, cfg *WarmupConfig, logger *logrus.Logger) *WarmupService {
	s := &WarmupService{players: players, maxSeasons: DefaultWarmupSeasons, clock: clockwork.NewRealClock(), logger: logger}
	if cfg != nil {
		if cfg.MaxSeasons > 0 {
			s.maxSeasons = cfg.MaxSeasons
		}
		if cfg.Clock != nil {
			s.clock = cfg.Clock
		}
	}
	return s
}

// Warm loads info for each player, then shots and stats for the first
// maxSeasons seasons. Failures are recorded in the report and do not stop
// the run.
func (s *WarmupService) Warm(ctx context.Context, playerIDs []int, seasons []string) ports.WarmupReport {
	report := ports.WarmupReport{RunID: uuid.New(), Errors: []string{}}
	if len(seasons) > s.maxSeasons {
		seasons = seasons[:s.maxSeasons]
	}
	log := s.entry().WithField("run_id", report.RunID.String())
	log.WithFields(logrus.Fields{"players": len(playerIDs), "seasons": seasons}).Info("cache warmup started")
	start := s.clock.Now()

	for _, id := range playerIDs {
		if ctx.Err() != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("warmup interrupted: %v", ctx.Err()))
			break
		}
		p, err := s.players.GetPlayer(ctx, id)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("player %d: %v", id, err))
			continue
		}
		if p == nil {
			report.Errors = append(report.Errors, fmt.Sprintf("player %d: not found", id))
			continue
		}
		report.PlayersWarmed++
		for _, season := range seasons {
			if _, err := s.players.GetShots(ctx, id, season, player.SeasonTypeRegular); err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("shots %d %s: %v", id, season, err))
			} else {
				report.ShotsWarmed++
			}
			if _, err := s.players.GetStats(ctx, id, season); err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("stats %d %s: %v", id, season, err))
			} else {
				report.StatsWarmed++
			}
		}
	}

	log.WithFields(logrus.Fields{
		"players_warmed": report.PlayersWarmed,
		"shots_warmed":   report.ShotsWarmed,
		"stats_warmed":   report.StatsWarmed,
		"errors":         len(report.Errors),
		"elapsed":        s.clock.Since(start).String(),
	}).Info("cache warmup finished")
	return report
}

// Run warms once immediately and then every interval until ctx is done.
func (s *WarmupService) Run(ctx context.Context, interval time.Duration, playerIDs []int, seasons []string) {
	s.Warm(ctx, playerIDs, seasons)
	if interval <= 0 {
		return
	}
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.Warm(ctx, playerIDs, seasons)
		}
	}
}

func (s *WarmupService) entry() *logrus.Entry {
	if s.logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		return logrus.NewEntry(l)
	}
	return logrus.NewEntry(s.logger)
}
