package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type warmRequest struct {
	PlayerIDs []int    `json:"playerIds" validate:"max=50,dive,min=1,max=9999999"`
	Seasons   []string `json:"seasons" validate:"max=30,dive,season"`
}

func (s *Server) getCacheStats(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"data": s.cacheAdmin.Stats(c.Request().Context())})
}

func (s *Server) clearPlayerCache(c echo.Context) error {
	var req playerRequest
	if err := bindPlayerID(c, &req.PlayerID); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	deleted := s.cacheAdmin.ClearPlayer(c.Request().Context(), req.PlayerID)
	if s.logger != nil {
		s.logger.WithField("player_id", req.PlayerID).WithField("deleted", deleted).Info("player cache cleared")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": map[string]any{"playerId": req.PlayerID, "deleted": deleted},
	})
}

func (s *Server) warmCache(c echo.Context) error {
	var req warmRequest
	if err := c.Bind(&req); err != nil {
		return newAPIError(http.StatusBadRequest, CodeInvalidRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}
	if len(req.PlayerIDs) == 0 && s.config != nil {
		req.PlayerIDs = s.config.WarmPlayerIDs
	}
	if len(req.Seasons) == 0 {
		if s.config != nil && len(s.config.WarmSeasons) > 0 {
			req.Seasons = s.config.WarmSeasons
		} else {
			req.Seasons = []string{s.currentSeason()}
		}
	}

	report := s.warmer.Warm(c.Request().Context(), req.PlayerIDs, req.Seasons)
	return c.JSON(http.StatusOK, map[string]any{"data": report})
}
