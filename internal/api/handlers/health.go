package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/internlink/server/internal/storage"
)

// HealthHandler serves the liveness and readiness endpoints. Liveness is
// unconditional; readiness pings the database.
type HealthHandler struct {
	Repo    storage.Repository
	Version string
}

func NewHealthHandler(repo storage.Repository, version string) *HealthHandler {
	return &HealthHandler{Repo: repo, Version: version}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: h.Version})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ready", Version: h.Version})
}
