package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/magda-harmony/internal/config"
	"github.com/Conceptual-Machines/magda-harmony/internal/services"
)

func setupRouter(t *testing.T, origins []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Environment: "test", CORSOrigins: origins}
	composer, err := services.NewComposerFromConfig(cfg, services.ComposerOptions{})
	require.NoError(t, err)
	return SetupRouter(composer, cfg, nil, "test")
}

func TestRouter_RequestID(t *testing.T) {
	router := setupRouter(t, []string{"*"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	supplied := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", supplied)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, supplied, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get("X-Request-ID"))
}

func TestRouter_CORS(t *testing.T) {
	router := setupRouter(t, []string{"https://studio.example"})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/progressions", nil)
	req.Header.Set("Origin", "https://studio.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://studio.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Composition-ID")

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Progression(t *testing.T) {
	router := setupRouter(t, []string{"*"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/progressions",
		strings.NewReader(`{"prompt":"a very dark forest walk","seed":42}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Body.String(), `"seed":42`)
}

func TestRouter_NotFound(t *testing.T) {
	router := setupRouter(t, []string{"*"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
