package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness. Uptime is measured from handler
// construction, which happens once at startup.
type HealthHandler struct {
	environment string
	startedAt   time.Time
}

// NewHealthHandler creates a new handler instance.
func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment, startedAt: time.Now()}
}

// Check handles GET /api/health requests.
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.startedAt).Seconds(),
		"environment": h.environment,
	})
}
