package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	h "eventsapi/internal/delivery/http/helpers"
)

// Pinger reports whether a dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

type HealthController struct {
	Logger  *slog.Logger
	DB      Pinger
	Timeout time.Duration
}

func NewHealthController(logger *slog.Logger, db Pinger) *HealthController {
	return &HealthController{Logger: logger, DB: db, Timeout: 2 * time.Second}
}

// Health godoc
// @Summary Health check
// @Description Reports ok when the database answers a ping.
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.Timeout)
	defer cancel()
	if err := c.DB.PingContext(ctx); err != nil {
		c.Logger.WarnContext(r.Context(), "health check failed", "err", err)
		h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeUnavailable, "database unavailable")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
}
