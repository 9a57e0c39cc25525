package api

import (
	"context"
	"net/http"
	"time"
)

const readyTimeout = 2 * time.Second

// Checker is an external dependency that can report its health.
type Checker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.checkers))
	for _, c := range h.checkers {
		if err := c.HealthCheck(ctx); err != nil {
			checks[c.Name()] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[c.Name()] = "ok"
	}

	resp := map[string]any{"status": "ready", "checks": checks}
	if status != http.StatusOK {
		resp["status"] = "unavailable"
	}
	JSON(w, status, resp)
}
