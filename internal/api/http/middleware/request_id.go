package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/printcon-atlas/atlas-backend/internal/logging"
)

const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware tags every request with an id, taken from the
// X-Request-Id header or generated, and logs one access line per request.
// The id is echoed back and carried on the request context for NewLogger.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}

		ctx := logging.WithRequestID(c.Request.Context(), rid)
		c.Request = c.Request.WithContext(ctx)
		c.Set("request_id", rid)
		c.Header(RequestIDHeader, rid)

		start := time.Now()
		c.Next()

		logging.NewLogger(ctx).LogInfof("http", "%s %s status=%d latency=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}
