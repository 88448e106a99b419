package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type counterStub struct {
	count int
	err   error
	start time.Time
}

func (c *counterStub) IncrementWindow(_ context.Context, _ string, _ time.Duration, _ string, _ time.Duration) (int, time.Time, error) {
	c.count++
	return c.count, c.start, c.err
}

func TestClientRateLimit_AllowsUpToBurst(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	counter := &counterStub{start: start}
	svc := NewClientRateLimitService(counter, &ClientRateLimitConfig{RequestsPerMinute: 2, BurstMultiplier: 1.5}, nil)

	allowed, remaining, limit, reset, err := svc.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.True(t, allowed)
	require.Equal(t, 2, remaining)
	require.Equal(t, 2, limit)
	require.Equal(t, start.Add(time.Minute), reset)

	_, _, _, _, _ = svc.Allow(context.Background(), "1.2.3.4")
	allowed, remaining, _, _, _ = svc.Allow(context.Background(), "1.2.3.4")
	require.True(t, allowed)
	require.Equal(t, 0, remaining)

	allowed, _, _, _, err = svc.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestClientRateLimit_FailOpen(t *testing.T) {
	svc := NewClientRateLimitService(&counterStub{err: errors.New("down")}, nil, nil)
	allowed, _, limit, _, err := svc.Allow(context.Background(), "c")
	require.Error(t, err)
	require.True(t, allowed)
	require.Equal(t, 120, limit)
}
