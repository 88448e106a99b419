package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error codes rendered in the {"error":{"code","message"}} envelope.
const (
	CodeMissingQuery        = "MISSING_QUERY"
	CodeQueryTooShort       = "QUERY_TOO_SHORT"
	CodeQueryTooLong        = "QUERY_TOO_LONG"
	CodeInvalidLimit        = "INVALID_LIMIT"
	CodeInvalidPlayerID     = "INVALID_PLAYER_ID"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeInvalidSeasonFormat = "INVALID_SEASON_FORMAT"
	CodeInvalidSeasonType   = "INVALID_SEASON_TYPE"
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeRateLimited         = "RATE_LIMITED"
	CodeUnavailable         = "SERVICE_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
)

// APIError is returned by handlers for failures that have a stable code.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string { return e.Code + ": " + e.Message }

func newAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorDetail `json:"error"`
}

// handleError replaces echo's default error handler so every failure,
// including router 404/405 and middleware rejections, uses one envelope.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	apiErr := s.toAPIError(err, c)

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(apiErr.Status)
	} else {
		writeErr = c.JSON(apiErr.Status, errorEnvelope{Error: errorDetail{Code: apiErr.Code, Message: apiErr.Message}})
	}
	if writeErr != nil && s.logger != nil {
		s.logger.WithError(writeErr).Warn("failed to write error response")
	}
}

func (s *Server) toAPIError(err error, c echo.Context) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return newAPIError(httpErr.Code, codeForStatus(httpErr.Code), msg)
	}
	if s.logger != nil {
		s.logger.WithError(err).WithField("path", c.Request().URL.Path).Error("unhandled request error")
	}
	return newAPIError(http.StatusInternalServerError, CodeInternal, "An internal error occurred")
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeInvalidRequest
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	case http.StatusTooManyRequests:
		return CodeRateLimited
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	}
	if status >= http.StatusInternalServerError {
		return CodeInternal
	}
	return CodeInvalidRequest
}
