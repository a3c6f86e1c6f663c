package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// quietPaths are probe endpoints whose repeated successes are only logged
// once. Failures are always logged.
var quietPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided and propagates it through
// the response header and echo context.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
	)

	// shouldLog reports whether a probe response is worth a line: the
	// first success after start or after a failure, and every failure.
	shouldLog := func(path string, ok bool) bool {
		if _, quiet := quietPaths[path]; !quiet {
			return true
		}
		mu.Lock()
		defer mu.Unlock()
		if !ok {
			seen[path] = false
			return true
		}
		if seen[path] {
			return false
		}
		seen[path] = true
		return true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			status := c.Response().Status
			path := c.Request().URL.Path
			if !shouldLog(path, status < http.StatusBadRequest) {
				return err
			}

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}

			log.Log(c.Request().Context(), level, "request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}
