package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/internlink/server/internal/config"
	"github.com/internlink/server/internal/domain/accounts"
	"github.com/internlink/server/internal/storage/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer runs the full stack against a throwaway SQLite file:
// migrations, seeded admin, router, and middleware.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	root := t.TempDir()
	dbPath := filepath.Join(root, "internlink.db")
	require.NoError(t, sqlite.MigrateUp(dbPath))

	db, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	repo, err := sqlite.NewRepository(db)
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	frontendDir := filepath.Join(root, "frontend")
	require.NoError(t, os.MkdirAll(frontendDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(frontendDir, "index.html"), []byte("<html>app</html>"), 0o644))

	cfg := config.Config{
		Auth:        config.AuthConfig{JWTSecret: "test-secret", JWTExpiry: 24 * time.Hour},
		Uploads:     config.UploadsConfig{Dir: filepath.Join(root, "uploads"), MaxBytes: 16 << 20},
		Frontend:    config.FrontendConfig{Dir: frontendDir},
		RateLimit:   config.RateLimitConfig{PublicPerMinute: 0, LoginPerMinute: 0},
		Environment: "test",
	}

	logger := zerolog.Nop()
	seeder := accounts.NewService(repo.Accounts(), logger)
	require.NoError(t, seeder.SeedAdmin(context.Background(), "Admin User", "admin@example.com", "admin123"))

	server := httptest.NewServer(NewRouter(cfg, logger, repo))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func login(t *testing.T, server *httptest.Server, email, password string) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, server.URL+"/api/login", "", map[string]any{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func registerStudent(t *testing.T, server *httptest.Server, email string) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, server.URL+"/api/register/student", "", map[string]any{
		"name": "Ada Lovelace", "email": email, "password": "secret1", "course": "CS", "year": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	return login(t, server, email, "secret1")
}

func TestPortalFlow(t *testing.T) {
	server := newTestServer(t)

	adminToken := login(t, server, "admin@example.com", "admin123")
	studentToken := registerStudent(t, server, "ada@example.com")

	// Admin posts an internship.
	resp := doJSON(t, http.MethodPost, server.URL+"/api/internships", adminToken, map[string]any{
		"title": "Backend Intern", "company": "Initech", "duration": "3 months", "slots": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Listing is public.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/internships", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var internships []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	decodeBody(t, resp, &internships)
	require.Len(t, internships, 1)

	// Student applies with a resume.
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("internship_id", "1"))
	require.NoError(t, writer.WriteField("cover_letter", "Please consider me."))
	part, err := writer.CreateFormFile("cv", "resume.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/apply", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+studentToken)
	applyResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, applyResp.StatusCode)
	applyResp.Body.Close()

	// Student sees the pending application with internship detail.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/status", studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
		Title  string `json:"title"`
	}
	decodeBody(t, resp, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, "Pending", mine[0].Status)
	assert.Equal(t, "Backend Intern", mine[0].Title)

	// Admin approves it.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/applications/1/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/status", studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &mine)
	assert.Equal(t, "Approved", mine[0].Status)

	// Dashboard counts reflect the state.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var counts map[string]int64
	decodeBody(t, resp, &counts)
	assert.Equal(t, int64(1), counts["total_internships"])
	assert.Equal(t, int64(1), counts["total_applications"])
	assert.Equal(t, int64(1), counts["approved_applications"])
	assert.Equal(t, int64(0), counts["pending_applications"])
	assert.Equal(t, int64(1), counts["total_students"])
}

func TestRoleGates(t *testing.T) {
	server := newTestServer(t)

	adminToken := login(t, server, "admin@example.com", "admin123")
	studentToken := registerStudent(t, server, "ada@example.com")

	// Student token on an admin route.
	resp := doJSON(t, http.MethodPost, server.URL+"/api/internships", studentToken, map[string]any{
		"title": "Nope", "company": "Nope",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admin token on a student route.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/status", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// No token at all.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/applications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestMeEchoesIdentity(t *testing.T) {
	server := newTestServer(t)
	token := registerStudent(t, server, "ada@example.com")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decodeBody(t, resp, &me)
	assert.Equal(t, "ada@example.com", me.Email)
	assert.Equal(t, "student", me.Role)
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/login")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "POST", resp.Header.Get("Allow"))
}

func TestHealthEndpoints(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestSPAFallback(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<html>app</html>", body.String())
}

func TestMetricsExposed(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
