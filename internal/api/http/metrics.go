package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printcon-atlas/atlas-backend/internal/assistant/llm"
)

// MetricsHandler exposes the assistant call counters.
func MetricsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "metrics": llm.GetMetrics().Snapshot()})
}
