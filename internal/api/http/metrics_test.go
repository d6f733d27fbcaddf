package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printcon-atlas/atlas-backend/internal/assistant/llm"
)

func TestMetricsHandler(t *testing.T) {
	llm.ResetMetrics()
	t.Cleanup(llm.ResetMetrics)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", MetricsHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		OK      bool           `json:"ok"`
		Metrics map[string]any `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.OK)
	assert.Contains(t, out.Metrics, "generator_calls")
	assert.EqualValues(t, 0, out.Metrics["generator_calls"])
}
