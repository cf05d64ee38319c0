package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/internlink/server/internal/api/middleware"
	"github.com/internlink/server/internal/api/problem"
	"github.com/internlink/server/internal/auth"
	"github.com/internlink/server/internal/domain/accounts"
	"github.com/internlink/server/internal/storage"
)

type AuthHandler struct {
	Accounts   *accounts.Service
	JWTManager *auth.JWTManager
	Env        string
}

func NewAuthHandler(accountsSvc *accounts.Service, jwtManager *auth.JWTManager, env string) *AuthHandler {
	return &AuthHandler{Accounts: accountsSvc, JWTManager: jwtManager, Env: env}
}

type registerStudentRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Course   string `json:"course"`
	Year     int    `json:"year"`
}

type registerAdminRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

// RegisterStudent handles POST /api/register/student.
func (h *AuthHandler) RegisterStudent(w http.ResponseWriter, r *http.Request) {
	var req registerStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}
	if err := validate.Struct(req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Missing or invalid fields", err, h.Env)
		return
	}

	_, err := h.Accounts.RegisterStudent(r.Context(), accounts.RegisterStudentParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Course:   req.Course,
		Year:     req.Year,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			problem.Write(w, r, http.StatusBadRequest, problem.TypeConflict, "Email already exists", err, h.Env, problem.WithDetail("email already exists"))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeMessage(w, http.StatusCreated, "Student registered successfully")
}

// RegisterAdmin handles POST /api/register/admin.
func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req registerAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}
	if err := validate.Struct(req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Missing or invalid fields", err, h.Env)
		return
	}

	_, err := h.Accounts.RegisterAdmin(r.Context(), accounts.RegisterAdminParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			problem.Write(w, r, http.StatusBadRequest, problem.TypeConflict, "Email already exists", err, h.Env, problem.WithDetail("email already exists"))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeMessage(w, http.StatusCreated, "Admin registered successfully")
}

// Login handles POST /api/login. The issued token carries {id, email, role}.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}
	if err := validate.Struct(req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Email and password are required", err, h.Env)
		return
	}

	identity, err := h.Accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Invalid credentials", nil, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	token, err := h.JWTManager.Generate(identity)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, Role: string(identity.Role)})
}

type meResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Me handles GET /api/me. It echoes the verified token identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", nil, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{ID: identity.ID, Email: identity.Email, Role: string(identity.Role)})
}
