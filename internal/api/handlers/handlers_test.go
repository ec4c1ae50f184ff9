package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/magda-harmony/internal/corpus"
	"github.com/Conceptual-Machines/magda-harmony/internal/emotion"
	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/internal/services"
)

// setupTestRouter wires every handler onto a bare router backed by the embedded data
func setupTestRouter(t *testing.T) (*gin.Engine, *Counters) {
	t.Helper()
	lexicon, err := emotion.DefaultLexicon()
	require.NoError(t, err)
	c, err := corpus.Default()
	require.NoError(t, err)
	composer, err := services.NewComposer(lexicon, c, services.ComposerOptions{})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	counters := &Counters{}

	router.GET("/health", NewHealthHandler(composer).HealthCheck)
	router.GET("/api/metrics", NewMetricsHandler("test", composer, counters).GetMetrics)
	router.POST("/api/v1/emotions/match", NewEmotionHandler(composer).Match)
	progressions := NewProgressionHandler(composer, counters)
	router.POST("/api/v1/progressions", progressions.Generate)
	router.POST("/api/v1/progressions/midi", progressions.GenerateMIDI)
	router.GET("/api/v1/sections", NewSectionHandler(composer).List)

	return router, counters
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Corpus struct {
			Patterns    int      `json:"patterns"`
			KeyProfiles int      `json:"key_profiles"`
			Sections    []string `json:"sections"`
		} `json:"corpus"`
		Lexicon struct {
			Phrases int `json:"phrases"`
		} `json:"lexicon"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 50, resp.Corpus.Patterns)
	assert.Equal(t, []string{"intro", "verse", "chorus"}, resp.Corpus.Sections)
	assert.Positive(t, resp.Lexicon.Phrases)
}

func TestMatch(t *testing.T) {
	router, _ := setupTestRouter(t)

	tests := []struct {
		name           string
		body           any
		expectedStatus int
	}{
		{name: "prompt", body: MatchRequest{Prompt: "a dark stormy night"}, expectedStatus: http.StatusOK},
		{name: "empty prompt", body: MatchRequest{}, expectedStatus: http.StatusOK},
		{name: "malformed json", body: "{not json", expectedStatus: http.StatusBadRequest},
		{name: "prompt too long", body: MatchRequest{Prompt: strings.Repeat("a", maxPromptLength+1)}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/v1/emotions/match", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestMatch_EmptyPromptIsNeutral(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/emotions/match", MatchRequest{Prompt: ""})
	require.Equal(t, http.StatusOK, w.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, e := range models.AllEmotions {
		assert.Equal(t, models.NeutralBiasValue, resp.Bias[e])
	}
	assert.Equal(t, models.AllEmotions[0], resp.Dominant)
}

func TestGenerate(t *testing.T) {
	router, counters := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/progressions", map[string]any{
		"prompt": "bright hopeful morning",
		"seed":   11,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var comp models.Composition
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comp))
	assert.NotEmpty(t, comp.ID)
	assert.Equal(t, int64(11), comp.Seed)
	assert.Len(t, comp.Sections, 3)
	assert.NotEmpty(t, comp.Chords)
	assert.Equal(t, int64(1), counters.Compositions.Load())
}

func TestGenerate_Errors(t *testing.T) {
	router, counters := setupTestRouter(t)

	tests := []struct {
		name  string
		body  any
		error string
	}{
		{name: "malformed json", body: "{\"prompt\":", error: ""},
		{name: "unknown section", body: map[string]any{"prompt": "calm", "sections": []string{"bridge"}}, error: "unknown section"},
		{name: "prompt too long", body: map[string]any{"prompt": strings.Repeat("x", maxPromptLength+1)}, error: "prompt is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/v1/progressions", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], tt.error)
		})
	}
	assert.Zero(t, counters.Failures.Load())
}

func TestGenerateMIDI(t *testing.T) {
	router, counters := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/progressions/midi", map[string]any{
		"prompt":   "tense chase",
		"seed":     3,
		"sections": []string{"verse"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, midiContentType, w.Header().Get("Content-Type"))
	id := w.Header().Get("X-Composition-ID")
	require.NotEmpty(t, id)
	assert.Contains(t, w.Header().Get("Content-Disposition"), id+".mid")
	assert.Equal(t, "3", w.Header().Get("X-Seed"))
	assert.NotEmpty(t, w.Header().Get("X-Key"))
	assert.NotEmpty(t, w.Header().Get("X-BPM"))
	assert.Equal(t, "MThd", w.Body.String()[:4])

	assert.Equal(t, int64(1), counters.Compositions.Load())
	assert.Equal(t, int64(1), counters.Renders.Load())
}

func TestGetMetrics(t *testing.T) {
	router, _ := setupTestRouter(t)

	doJSON(router, http.MethodPost, "/api/v1/progressions", map[string]any{"prompt": "calm", "seed": 1})

	w := doJSON(router, http.MethodGet, "/api/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp MetricsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
	assert.EqualValues(t, 1, resp.API["compositions"])
	assert.EqualValues(t, 0, resp.API["midi_renders"])
}

func TestListSections(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/sections", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Sections []models.SectionConfig `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Sections, 3)
	assert.Equal(t, "intro", resp.Sections[0].Name)
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5.00s", formatUptime(5e9))
	assert.Equal(t, "2m3.00s", formatUptime(123e9))
	assert.Equal(t, "1h1m1.00s", formatUptime(3661e9))
}
