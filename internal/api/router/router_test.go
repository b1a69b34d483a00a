package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grillshine/grillshine/internal/admin"
	"github.com/grillshine/grillshine/internal/quotes"
	"github.com/grillshine/grillshine/pkg/logging"
)

func newTestRouter(t *testing.T, apiSecret string) http.Handler {
	t.Helper()
	logger := logging.Default()
	repo := quotes.NewInMemoryRepository()
	sessions := admin.NewMemorySessionStore()

	creds, err := admin.NewCredentials("admin", "sekrit", "")
	require.NoError(t, err)

	return New(&Config{
		Logger:        logger,
		IntakeHandler: quotes.NewHandler(quotes.HandlerConfig{Repo: repo, Logger: logger}),
		AdminHandler: admin.NewHandler(admin.HandlerConfig{
			Repo:        repo,
			Sessions:    sessions,
			Credentials: creds,
			Logger:      logger,
		}),
		Sessions:      sessions,
		APIAuthSecret: apiSecret,
	})
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, "")

	for _, path := range []string{"/health", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	}
}

func TestAdminRequiresSession(t *testing.T) {
	router := newTestRouter(t, "")

	for _, path := range []string{"/admin", "/admin/dashboard", "/admin/export", "/admin/delete/1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"), path)
	}
}

func TestAPIRequiresToken(t *testing.T) {
	router := newTestRouter(t, "api-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIClosedWithoutSecret(t *testing.T) {
	router := newTestRouter(t, "")

	token := signToken(t, "some-other-secret")
	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIWithValidToken(t *testing.T) {
	router := newTestRouter(t, "api-secret")

	token := signToken(t, "api-secret")
	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestAPICSVWithValidToken(t *testing.T) {
	router := newTestRouter(t, "api-secret")

	token := signToken(t, "api-secret")
	req := httptest.NewRequest(http.MethodGet, "/api/quotes.csv", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
}

func TestAPIRejectsWrongSignature(t *testing.T) {
	router := newTestRouter(t, "api-secret")

	token := signToken(t, "wrong-secret")
	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFileServersRefuseDirectoryListings(t *testing.T) {
	uploadsDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(uploadsDir, "2026-09-01"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uploadsDir, "2026-09-01", "grill.jpg"), []byte("jpg"), 0o644))

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>hi</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(staticDir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "assets", "style.css"), []byte("body{}"), 0o644))

	logger := logging.Default()
	repo := quotes.NewInMemoryRepository()
	sessions := admin.NewMemorySessionStore()
	creds, err := admin.NewCredentials("admin", "sekrit", "")
	require.NoError(t, err)

	router := New(&Config{
		Logger:        logger,
		IntakeHandler: quotes.NewHandler(quotes.HandlerConfig{Repo: repo, Logger: logger}),
		AdminHandler: admin.NewHandler(admin.HandlerConfig{
			Repo:        repo,
			Sessions:    sessions,
			Credentials: creds,
			Logger:      logger,
		}),
		Sessions:   sessions,
		StaticDir:  staticDir,
		UploadsDir: uploadsDir,
	})

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, get("/uploads/2026-09-01/grill.jpg"))
	assert.Equal(t, http.StatusNotFound, get("/uploads/"), "uploads root must not list")
	assert.Equal(t, http.StatusNotFound, get("/uploads/2026-09-01/"), "dated folder must not list")

	assert.Equal(t, http.StatusOK, get("/"), "index still served at the root")
	assert.Equal(t, http.StatusOK, get("/assets/style.css"))
	assert.Equal(t, http.StatusNotFound, get("/assets/"), "asset folder must not list")
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "exporter",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
