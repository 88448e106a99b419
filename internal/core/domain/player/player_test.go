package player_test

import (
	"testing"

	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/stretchr/testify/require"
)

func TestShotFromRow_Scenario(t *testing.T) {
	shot, ok := player.ShotFromRow(player.ShotRow{
		GameID:           "1",
		GameEventID:      "5",
		LocX:             10,
		LocY:             20,
		ShotDistance:     22,
		ShotMadeFlag:     1,
		ShotType:         "3PT",
		Period:           2,
		MinutesRemaining: 3,
		SecondsRemaining: 7,
		ShotZoneBasic:    "Above the Break 3",
	})
	require.True(t, ok)
	require.Equal(t, player.Shot{
		ID:            "shot_1_5",
		LocationX:     10,
		LocationY:     20,
		ShotDistance:  22,
		ShotMade:      true,
		ShotType:      "3PT",
		Period:        2,
		TimeRemaining: "3:07",
		ShotZone:      "Above the Break 3",
	}, shot)
}

func TestShotFromRow_OvertimeSkipped(t *testing.T) {
	_, ok := player.ShotFromRow(player.ShotRow{Period: 5})
	require.False(t, ok)
	_, ok = player.ShotFromRow(player.ShotRow{Period: 0})
	require.False(t, ok)
}

func TestShotFromRow_NegativeDistanceFloored(t *testing.T) {
	shot, ok := player.ShotFromRow(player.ShotRow{Period: 1, ShotDistance: -3})
	require.True(t, ok)
	require.Equal(t, 0, shot.ShotDistance)
	require.False(t, shot.ShotMade)
	require.Equal(t, "0:00", shot.TimeRemaining)
}

func TestFromCatalog(t *testing.T) {
	p := player.FromCatalog(player.CatalogEntry{ID: 2544, FirstName: "LeBron", LastName: "James", FullName: "  LeBron James "})
	require.Equal(t, "LeBron James", p.FullName)
	require.Equal(t, "https://cdn.nba.com/headshots/nba/latest/1040x760/2544.png", p.ImageURL)
	require.Zero(t, p.TeamID)

	p.Enrich(player.Details{TeamID: 1610612747, TeamName: "Lakers", Position: "Forward", Jersey: "23"})
	require.Equal(t, "Lakers", p.TeamName)
	require.Equal(t, "23", p.JerseyNumber)
}

func TestFromCatalog_FullNameFallback(t *testing.T) {
	p := player.FromCatalog(player.CatalogEntry{ID: 7, FirstName: "Nene", LastName: ""})
	require.Equal(t, "Nene", p.FullName)
}

func TestCatalogEntry_Matches(t *testing.T) {
	e := player.CatalogEntry{ID: 1, FirstName: "Jamal", LastName: "Murray", FullName: "Jamal Murray"}
	require.True(t, e.Matches("jam"))
	require.True(t, e.Matches("murr"))
	require.True(t, e.Matches("l m"))
	require.False(t, e.Matches("harden"))
}

func TestStats_Consistent(t *testing.T) {
	require.True(t, player.ZeroStats().Consistent())
	require.True(t, player.StatsFromTotals(player.SeasonTotals{FGA: 10, FGM: 5, FGPct: 0.5, FG3A: 4, FG3M: 1, FG3Pct: 0.25}).Consistent())
	require.False(t, player.Stats{TotalAttempts: 1, TotalMade: 2}.Consistent())
	require.False(t, player.Stats{FieldGoalPercentage: 45.2}.Consistent())
}
