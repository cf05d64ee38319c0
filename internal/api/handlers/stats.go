package handlers

import (
	"net/http"

	"github.com/internlink/server/internal/api/problem"
	"github.com/internlink/server/internal/domain/stats"
)

type StatsHandler struct {
	Service *stats.Service
	Env     string
}

func NewStatsHandler(service *stats.Service, env string) *StatsHandler {
	return &StatsHandler{Service: service, Env: env}
}

// Dashboard handles GET /api/stats with the admin dashboard counters.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.Collect(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
