package http

import (
	"strconv"
	"strings"
	"time"

	"parcelhub/internal/core/application/access"
	"parcelhub/internal/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const identityKey = "identity"

// RequireToken verifies the bearer token and stores the caller's identity
// on the context.
func RequireToken(gate *access.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				token = ""
			}

			id, err := gate.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// identityOf returns the identity stored by RequireToken.
func identityOf(c echo.Context) access.Identity {
	id, _ := c.Get(identityKey).(access.Identity)
	return id
}

// Observe logs every request and feeds the HTTP collectors. m may be nil.
func Observe(logger *zap.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			latency := time.Since(start)

			if m != nil {
				m.HTTPRequests.WithLabelValues(req.Method, path, strconv.Itoa(status)).Inc()
				m.HTTPRequestDuration.WithLabelValues(req.Method, path, strconv.Itoa(status)).Observe(latency.Seconds())
			}
			logger.Info("request",
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", req.Method),
				zap.String("path", path),
				zap.Int("status", status),
				zap.Duration("latency", latency),
			)
			return nil
		}
	}
}
