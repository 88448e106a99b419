package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/avatarctic/shotchart-service/internal/core/ports/portsmock"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestWarmup_LimitsSeasonsAndCounts(t *testing.T) {
	var mu sync.Mutex
	var shotSeasons []string
	players := &portsmock.PlayerServiceMock{
		GetPlayerFn: func(ctx context.Context, id int) (*player.Player, error) {
			if id == 42 {
				return nil, nil
			}
			return &player.Player{ID: id}, nil
		},
		GetShotsFn: func(ctx context.Context, id int, season, st string) ([]player.Shot, error) {
			mu.Lock()
			shotSeasons = append(shotSeasons, season)
			mu.Unlock()
			require.Equal(t, player.SeasonTypeRegular, st)
			return []player.Shot{}, nil
		},
	}
	w := NewWarmupService(players, nil, nil)

	report := w.Warm(context.Background(), []int{201939, 42, 2544}, []string{"2024-25", "2023-24", "2022-23"})
	require.NotEqual(t, uuid.Nil, report.RunID)
	require.Equal(t, 2, report.PlayersWarmed)
	require.Equal(t, 4, report.ShotsWarmed)
	require.Equal(t, 4, report.StatsWarmed)
	require.Len(t, report.Errors, 1)
	require.Contains(t, report.Errors[0], "player 42")
	require.NotContains(t, shotSeasons, "2022-23")
}

func TestWarmup_ErrorsDoNotStopRun(t *testing.T) {
	players := &portsmock.PlayerServiceMock{
		GetPlayerFn: func(ctx context.Context, id int) (*player.Player, error) {
			if id == 1 {
				return nil, errors.New("boom")
			}
			return &player.Player{ID: id}, nil
		},
		GetStatsFn: func(ctx context.Context, id int, season string) (player.Stats, error) {
			return player.Stats{}, errors.New("stats down")
		},
	}
	w := NewWarmupService(players, &WarmupConfig{MaxSeasons: 1}, nil)

	report := w.Warm(context.Background(), []int{1, 2}, []string{"2024-25", "2023-24"})
	require.Equal(t, 1, report.PlayersWarmed)
	require.Equal(t, 1, report.ShotsWarmed)
	require.Equal(t, 0, report.StatsWarmed)
	require.Len(t, report.Errors, 2)
}

func TestWarmup_CancelledContext(t *testing.T) {
	w := NewWarmupService(&portsmock.PlayerServiceMock{}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report := w.Warm(ctx, []int{1, 2}, []string{"2024-25"})
	require.Equal(t, 0, report.PlayersWarmed)
	require.Len(t, report.Errors, 1)
}

func TestWarmup_RunRepeatsOnInterval(t *testing.T) {
	clk := clockwork.NewFakeClock()
	var mu sync.Mutex
	runs := 0
	players := &portsmock.PlayerServiceMock{
		GetPlayerFn: func(ctx context.Context, id int) (*player.Player, error) {
			mu.Lock()
			runs++
			mu.Unlock()
			return &player.Player{ID: id}, nil
		},
	}
	w := NewWarmupService(players, &WarmupConfig{Clock: clk}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx, time.Hour, []int{1}, []string{"2024-25"})
		close(done)
	}()
	require.NoError(t, clk.BlockUntilContext(ctx, 1))
	clk.Advance(time.Hour)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return runs == 2
	}, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
