package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/internlink/server/internal/api/middleware"
	"github.com/internlink/server/internal/api/problem"
	"github.com/internlink/server/internal/domain/internships"
)

type InternshipsHandler struct {
	Service *internships.Service
	Env     string
}

func NewInternshipsHandler(service *internships.Service, env string) *InternshipsHandler {
	return &InternshipsHandler{Service: service, Env: env}
}

type createInternshipRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Slots       int    `json:"slots" validate:"gte=0"`
}

// List handles GET /api/internships. Unauthenticated; newest first.
func (h *InternshipsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /api/internships. Admin-gated; the owning admin id
// comes from the verified identity, never the request body.
func (h *InternshipsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", nil, h.Env)
		return
	}

	var req createInternshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}
	if err := validate.Struct(req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Missing or invalid fields", err, h.Env)
		return
	}

	_, err := h.Service.Create(r.Context(), identity, internships.CreateParams{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Duration:    req.Duration,
		Slots:       req.Slots,
	})
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeMessage(w, http.StatusCreated, "Internship created successfully")
}
