package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rahalah/travel-gateway/internal/backend"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	backend backend.Client
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(client backend.Client) *HealthHandler {
	return &HealthHandler{
		backend: client,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.backend.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "backend unreachable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
