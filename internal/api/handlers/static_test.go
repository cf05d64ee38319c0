package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFrontendDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	return dir
}

func TestSPAServesExistingFile(t *testing.T) {
	handler := NewSPAHandler(newFrontendDir(t))

	req := httptest.NewRequest(http.MethodGet, "/app.js", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())
}

func TestSPAFallsBackToIndex(t *testing.T) {
	handler := NewSPAHandler(newFrontendDir(t))

	for _, path := range []string{"/", "/dashboard", "/internships/42"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "<html>app</html>", rec.Body.String(), path)
	}
}

func TestSPARejectsTraversal(t *testing.T) {
	dir := newFrontendDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(dir), "secret.txt"), []byte("top secret"), 0o644))
	handler := NewSPAHandler(dir)

	req := httptest.NewRequest(http.MethodGet, "/../secret.txt", nil)
	req.URL.Path = "/../secret.txt"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.NotEqual(t, "top secret", rec.Body.String())
}

func TestSPAMethodNotAllowed(t *testing.T) {
	handler := NewSPAHandler(newFrontendDir(t))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
