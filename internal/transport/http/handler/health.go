package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// HealthHandler handles the health-check endpoint.
type HealthHandler struct {
	checks map[string]Check
	log    *zap.Logger
}

func NewHealthHandler(log *zap.Logger, checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks, log: log}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.Warn("health check failed", zap.String("check", name), zap.Error(err))
			writeDetail(w, http.StatusServiceUnavailable, "unhealthy", name+" unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ok"})
}
