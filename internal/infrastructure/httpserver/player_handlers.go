package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
	"github.com/labstack/echo/v4"
)

type searchRequest struct {
	Query string `query:"q" validate:"required,min=2,max=100"`
	Limit int    `query:"limit" validate:"min=1,max=50"`
}

type playerRequest struct {
	PlayerID int `param:"id" validate:"min=1,max=9999999"`
}

type shotsRequest struct {
	PlayerID   int    `param:"id" validate:"min=1,max=9999999"`
	Season     string `query:"season" validate:"season"`
	SeasonType string `query:"season_type" validate:"season_type"`
}

type statsRequest struct {
	PlayerID int    `param:"id" validate:"min=1,max=9999999"`
	Season   string `query:"season" validate:"season"`
}

func (s *Server) testEndpoint(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "success",
		"message":   "NBA Shot Chart API is working",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) searchPlayers(c echo.Context) error {
	req := searchRequest{Limit: defaultSearchLimit}
	if err := echo.QueryParamsBinder(c).String("q", &req.Query).Int("limit", &req.Limit).BindError(); err != nil {
		return bindError(err)
	}
	req.Query = strings.TrimSpace(req.Query)
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	players, err := s.players.SearchPlayers(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		return err
	}
	players = nonNil(players)
	return c.JSON(http.StatusOK, map[string]any{
		"data":  players,
		"query": req.Query,
		"count": len(players),
	})
}

func (s *Server) getPlayer(c echo.Context) error {
	var req playerRequest
	if err := bindPlayerID(c, &req.PlayerID); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	p, err := s.players.GetPlayer(c.Request().Context(), req.PlayerID)
	if err != nil {
		return err
	}
	if p == nil {
		return newAPIError(http.StatusNotFound, CodePlayerNotFound, fmt.Sprintf("Player with ID %d not found", req.PlayerID))
	}
	return c.JSON(http.StatusOK, map[string]any{"data": p})
}

func (s *Server) getPlayerShots(c echo.Context) error {
	req := shotsRequest{Season: s.currentSeason(), SeasonType: player.SeasonTypeRegular}
	if err := bindPlayerID(c, &req.PlayerID); err != nil {
		return err
	}
	if err := echo.QueryParamsBinder(c).String("season", &req.Season).String("season_type", &req.SeasonType).BindError(); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	shots, err := s.players.GetShots(c.Request().Context(), req.PlayerID, req.Season, req.SeasonType)
	if err != nil {
		return err
	}
	shots = nonNil(shots)
	return c.JSON(http.StatusOK, map[string]any{
		"data":        shots,
		"player_id":   req.PlayerID,
		"season":      req.Season,
		"season_type": req.SeasonType,
		"count":       len(shots),
	})
}

func (s *Server) getPlayerStats(c echo.Context) error {
	req := statsRequest{Season: s.currentSeason()}
	if err := bindPlayerID(c, &req.PlayerID); err != nil {
		return err
	}
	if err := echo.QueryParamsBinder(c).String("season", &req.Season).BindError(); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	stats, err := s.players.GetStats(c.Request().Context(), req.PlayerID, req.Season)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":      stats,
		"player_id": req.PlayerID,
		"season":    req.Season,
	})
}

func (s *Server) getSeasons(c echo.Context) error {
	seasons, err := s.players.GetSeasons(c.Request().Context())
	if err != nil {
		return err
	}
	seasons = nonNil(seasons)
	return c.JSON(http.StatusOK, map[string]any{
		"data":  seasons,
		"count": len(seasons),
	})
}

func bindPlayerID(c echo.Context, dst *int) error {
	if err := echo.PathParamsBinder(c).Int("id", dst).BindError(); err != nil {
		return bindError(err)
	}
	return nil
}

func (s *Server) currentSeason() string {
	if s.config != nil && s.config.CurrentSeason != "" {
		return s.config.CurrentSeason
	}
	return player.SeasonLabel(time.Now().Year() - 1)
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
