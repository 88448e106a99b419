package nbastats

import (
	"context"
	"strconv"
	"strings"

	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/avatarctic/shotchart-service/internal/core/ports"
)

const (
	endpointAllPlayers = "commonallplayers"
	endpointPlayerInfo = "commonplayerinfo"
	endpointShotChart  = "shotchartdetail"
	endpointDashboard  = "playerdashboardbyyearoveryear"
	endpointCareer     = "playercareerstats"
)

var _ ports.StatsProvider = (*Client)(nil)

func (c *Client) AllPlayers(ctx context.Context) ([]player.CatalogEntry, error) {
	params := map[string]string{
		"LeagueID":            leagueID,
		"IsOnlyCurrentSeason": "0",
	}
	if c.catalogSeason != "" {
		params["Season"] = c.catalogSeason
	}
	sets, err := c.get(ctx, endpointAllPlayers, params)
	if err != nil {
		return nil, err
	}
	rs, ok := sets.named("CommonAllPlayers")
	if !ok {
		return []player.CatalogEntry{}, nil
	}
	entries := make([]player.CatalogEntry, 0, len(rs.RowSet))
	for _, r := range rs.rows() {
		first, last := splitLastCommaFirst(r.text("DISPLAY_LAST_COMMA_FIRST"))
		e := player.CatalogEntry{
			ID:        r.integer("PERSON_ID"),
			FirstName: first,
			LastName:  last,
			FullName:  r.text("DISPLAY_FIRST_LAST"),
			IsActive:  r.integer("ROSTERSTATUS") == 1,
		}
		if !e.Valid() {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// splitLastCommaFirst turns "James, LeBron" into ("LeBron", "James"). Single
// names without a comma are returned as the first name.
func splitLastCommaFirst(s string) (first, last string) {
	l, f, ok := strings.Cut(s, ",")
	if !ok {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(f), strings.TrimSpace(l)
}

func (c *Client) PlayerDetails(ctx context.Context, playerID int) (*player.Details, error) {
	sets, err := c.get(ctx, endpointPlayerInfo, map[string]string{
		"PlayerID": strconv.Itoa(playerID),
		"LeagueID": leagueID,
	})
	if err != nil {
		return nil, err
	}
	rs, ok := sets.named("CommonPlayerInfo")
	if !ok {
		return nil, nil
	}
	rows := rs.rows()
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &player.Details{
		TeamID:   r.integer("TEAM_ID"),
		TeamName: r.text("TEAM_NAME"),
		Position: r.text("POSITION"),
		Jersey:   r.text("JERSEY"),
	}, nil
}

func (c *Client) ShotChart(ctx context.Context, playerID int, season, seasonType string) ([]player.ShotRow, error) {
	sets, err := c.get(ctx, endpointShotChart, map[string]string{
		"PlayerID":       strconv.Itoa(playerID),
		"TeamID":         "0",
		"LeagueID":       leagueID,
		"Season":         season,
		"SeasonType":     seasonType,
		"ContextMeasure": "FGA",
		"LastNGames":     "0",
		"Month":          "0",
		"OpponentTeamID": "0",
		"Period":         "0",
		"PlayerPosition": "",
		"ContextFilter":  "",
		"GameID":         "",
		"DateFrom":       "",
		"DateTo":         "",
		"Location":       "",
		"Outcome":        "",
		"SeasonSegment":  "",
		"VsConference":   "",
		"VsDivision":     "",
		"RookieYear":     "",
		"GameSegment":    "",
		"AheadBehind":    "",
		"ClutchTime":     "",
		"PointDiff":      "",
		"RangeType":      "",
		"StartPeriod":    "",
		"EndPeriod":      "",
		"StartRange":     "",
		"EndRange":       "",
	})
	if err != nil {
		return nil, err
	}
	rs, ok := sets.named("Shot_Chart_Detail")
	if !ok {
		return []player.ShotRow{}, nil
	}
	out := make([]player.ShotRow, 0, len(rs.RowSet))
	for _, r := range rs.rows() {
		out = append(out, player.ShotRow{
			GameID:           r.text("GAME_ID"),
			GameEventID:      r.text("GAME_EVENT_ID"),
			LocX:             r.integer("LOC_X"),
			LocY:             r.integer("LOC_Y"),
			ShotDistance:     r.integer("SHOT_DISTANCE"),
			ShotMadeFlag:     r.integer("SHOT_MADE_FLAG"),
			ShotType:         r.text("SHOT_TYPE"),
			Period:           r.integer("PERIOD"),
			MinutesRemaining: r.integer("MINUTES_REMAINING"),
			SecondsRemaining: r.integer("SECONDS_REMAINING"),
			ShotZoneBasic:    r.text("SHOT_ZONE_BASIC"),
		})
	}
	return out, nil
}

func (c *Client) SeasonDashboard(ctx context.Context, playerID int, season string) (*player.SeasonTotals, error) {
	sets, err := c.get(ctx, endpointDashboard, map[string]string{
		"PlayerID":       strconv.Itoa(playerID),
		"Season":         season,
		"SeasonType":     player.SeasonTypeRegular,
		"LeagueID":       leagueID,
		"MeasureType":    "Base",
		"PerMode":        "Totals",
		"PlusMinus":      "N",
		"PaceAdjust":     "N",
		"Rank":           "N",
		"LastNGames":     "0",
		"Month":          "0",
		"OpponentTeamID": "0",
		"Period":         "0",
		"DateFrom":       "",
		"DateTo":         "",
		"GameSegment":    "",
		"Location":       "",
		"Outcome":        "",
		"SeasonSegment":  "",
		"VsConference":   "",
		"VsDivision":     "",
	})
	if err != nil {
		return nil, err
	}
	rs, ok := sets.named("OverallPlayerDashboard")
	if !ok {
		return nil, nil
	}
	rows := rs.rows()
	if len(rows) == 0 {
		return nil, nil
	}
	t := totalsFromRow(rows[0])
	if t.SeasonID == "" {
		t.SeasonID = rows[0].text("GROUP_VALUE")
	}
	return &t, nil
}

func (c *Client) CareerTotals(ctx context.Context, playerID int) ([]player.SeasonTotals, error) {
	sets, err := c.get(ctx, endpointCareer, map[string]string{
		"PlayerID": strconv.Itoa(playerID),
		"PerMode":  "Totals",
		"LeagueID": leagueID,
	})
	if err != nil {
		return nil, err
	}
	rs, ok := sets.named("SeasonTotalsRegularSeason")
	if !ok {
		return []player.SeasonTotals{}, nil
	}
	out := make([]player.SeasonTotals, 0, len(rs.RowSet))
	for _, r := range rs.rows() {
		out = append(out, totalsFromRow(r))
	}
	return out, nil
}

func totalsFromRow(r row) player.SeasonTotals {
	return player.SeasonTotals{
		SeasonID: r.text("SEASON_ID"),
		FGM:      r.integer("FGM"),
		FGA:      r.integer("FGA"),
		FGPct:    r.decimal("FG_PCT"),
		FG3M:     r.integer("FG3M"),
		FG3A:     r.integer("FG3A"),
		FG3Pct:   r.decimal("FG3_PCT"),
	}
}
