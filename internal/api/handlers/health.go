package handlers

import (
	"net/http"
	"sync/atomic"

	"github.com/labstack/echo/v4"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	ready atomic.Bool
}

// NewHealthHandler creates a new HealthHandler. It reports not ready until
// SetReady(true) is called.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// SetReady flips the readiness state, e.g. false while draining on shutdown.
func (h *HealthHandler) SetReady(v bool) {
	h.ready.Store(v)
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 once the server accepts work, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if !h.ready.Load() {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
