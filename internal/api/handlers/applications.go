package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/internlink/server/internal/api/middleware"
	"github.com/internlink/server/internal/api/problem"
	"github.com/internlink/server/internal/domain/applications"
	"github.com/internlink/server/internal/storage"
)

type ApplicationsHandler struct {
	Service *applications.Service
	Env     string
	// MaxUploadBytes caps the multipart memory buffer on apply.
	MaxUploadBytes int64
}

func NewApplicationsHandler(service *applications.Service, env string, maxUploadBytes int64) *ApplicationsHandler {
	return &ApplicationsHandler{Service: service, Env: env, MaxUploadBytes: maxUploadBytes}
}

// Apply handles POST /api/apply. Student-gated multipart form with
// internship_id, cover_letter, and an optional cv file part.
func (h *ApplicationsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", nil, h.Env)
		return
	}

	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid multipart form", err, h.Env)
		return
	}

	rawID := r.FormValue("internship_id")
	if rawID == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Internship ID required", nil, h.Env, problem.WithDetail("internship_id is required"))
		return
	}
	internshipID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || internshipID <= 0 {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid internship ID", err, h.Env)
		return
	}

	params := applications.ApplyParams{
		InternshipID: internshipID,
		CoverLetter:  r.FormValue("cover_letter"),
	}

	if file, header, err := r.FormFile("cv"); err == nil {
		defer file.Close()
		params.CVFilename = header.Filename
		params.CV = file
	} else if !errors.Is(err, http.ErrMissingFile) {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid file upload", err, h.Env)
		return
	}

	if _, err := h.Service.Apply(r.Context(), identity, params); err != nil {
		if errors.Is(err, storage.ErrAlreadyApplied) {
			problem.Write(w, r, http.StatusBadRequest, problem.TypeConflict, "Already applied", err, h.Env, problem.WithDetail("already applied"))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeMessage(w, http.StatusCreated, "Application submitted successfully")
}

// Mine handles GET /api/status: the caller's applications, newest first.
func (h *ApplicationsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", nil, h.Env)
		return
	}

	items, err := h.Service.ListForStudent(r.Context(), identity)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// All handles GET /api/applications: every application with applicant and
// internship detail, newest first.
func (h *ApplicationsHandler) All(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListAll(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Approve handles POST /api/applications/{id}/approve.
func (h *ApplicationsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Approve, "Application approved successfully")
}

// Reject handles POST /api/applications/{id}/reject.
func (h *ApplicationsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Reject, "Application rejected successfully")
}

func (h *ApplicationsHandler) decide(w http.ResponseWriter, r *http.Request, decision func(ctx context.Context, id int64) error, message string) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid application ID", err, h.Env)
		return
	}

	if err := decision(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Application not found", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeMessage(w, http.StatusOK, message)
}
