package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/printcon-atlas/atlas-backend/internal/assistant/service"
	"github.com/printcon-atlas/atlas-backend/internal/catalog/catalogtest"
	catalog "github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/panels"
	"github.com/printcon-atlas/atlas-backend/internal/session/repository"
	"github.com/printcon-atlas/atlas-backend/internal/session/service"
)

type staticCatalog struct{ cat *catalog.Catalog }

func (s staticCatalog) Current() *catalog.Catalog { return s.cat }

type planResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Plan  struct {
		SessionID string `json:"session_id"`
		Visible   int    `json:"visible"`
		State     struct {
			Material string `json:"material_category"`
			Selected string `json:"selected_project"`
		} `json:"state"`
		Detail struct {
			Open bool   `json:"open"`
			Name string `json:"name"`
		} `json:"detail_panel"`
		Chat []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
			Error   bool   `json:"error"`
		} `json:"chat"`
	} `json:"plan"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	lib, err := panels.Load()
	require.NoError(t, err)
	svc := service.NewService(
		repository.NewMemoryStore(time.Hour),
		staticCatalog{cat: catalogtest.Catalog()},
		lib,
		chat.NewOrchestrator(nil, chat.DefaultConfig()),
	)

	r := gin.New()
	New(svc).Register(r.Group("/api/v1/sessions"))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (int, planResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out planResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func TestSessionFlow(t *testing.T) {
	r := setupRouter(t)

	code, created := do(t, r, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, code)
	require.True(t, created.OK)
	id := created.Plan.SessionID
	require.NotEmpty(t, id)
	assert.Equal(t, 7, created.Plan.Visible)

	code, clicked := do(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/events",
		map[string]any{"type": "marker_clicked", "project": "Clay Pavilion"})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, clicked.Plan.Detail.Open)
	assert.Equal(t, "Clay Pavilion", clicked.Plan.State.Selected)

	code, chatted := do(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/chat",
		map[string]any{"message": "metal"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Metal", chatted.Plan.State.Material)
	assert.Empty(t, chatted.Plan.State.Selected)
	require.Len(t, chatted.Plan.Chat, 2)
	assert.True(t, chatted.Plan.Chat[1].Error)
	assert.Equal(t, "Filters applied: Material: Metal\n\n"+chat.MessageUnavailable, chatted.Plan.Chat[1].Content)

	code, viewed := do(t, r, http.MethodGet, "/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Metal", viewed.Plan.State.Material)
	assert.Len(t, viewed.Plan.Chat, 2)
}

func TestSessionErrors(t *testing.T) {
	r := setupRouter(t)

	code, resp := do(t, r, http.MethodGet, "/api/v1/sessions/unknown", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.OK)

	_, created := do(t, r, http.MethodPost, "/api/v1/sessions", nil)
	id := created.Plan.SessionID

	code, resp = do(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/events", map[string]any{"type": "explode"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Error, "invalid event")

	code, _ = do(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/chat", map[string]any{"message": ""})
	assert.Equal(t, http.StatusBadRequest, code)
}
