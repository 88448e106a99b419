package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.logger == nil {
				return next(c)
			}
			start := time.Now()
			err := next(c)
			fields := logrus.Fields{
				"method":      c.Request().Method,
				"path":        c.Path(),
				"query":       c.QueryString(),
				"client_ip":   c.RealIP(),
				"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if err != nil {
				m.logger.WithFields(fields).WithError(err).Info("request failed")
			} else {
				m.logger.WithFields(fields).WithField("status", c.Response().Status).Debug("request served")
			}
			return err
		}
	}
}
