package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/printcon-atlas/atlas-backend/internal/api/http"
	"github.com/printcon-atlas/atlas-backend/internal/api/http/middleware"
	cataloghttp "github.com/printcon-atlas/atlas-backend/internal/catalog/http"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/panels"
	sessionhttp "github.com/printcon-atlas/atlas-backend/internal/session/http"
	sessionsvc "github.com/printcon-atlas/atlas-backend/internal/session/service"
	"github.com/printcon-atlas/atlas-backend/internal/submissions"
)

type V1Deps struct {
	Catalog     cataloghttp.Source
	Panels      *panels.Library
	Sessions    *sessionsvc.Service
	Submissions submissions.Store // nil when SUBMISSIONS_DSN is unset
	AdminAPIKey string
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")

	cataloghttp.Register(api.Group("/catalog"), dep.Catalog)
	panels.Register(api, dep.Panels)
	sessionhttp.New(dep.Sessions).Register(api.Group("/sessions"))

	admin := api.Group("/admin")
	admin.Use(middleware.APIKeyMiddleware(dep.AdminAPIKey))
	admin.GET("/metrics", httpapi.MetricsHandler)

	if dep.Submissions == nil {
		api.POST("/submissions", submissionsDisabled)
		admin.GET("/submissions", submissionsDisabled)
		return
	}
	h := submissions.NewHandler(dep.Submissions)
	h.Register(api.Group("/submissions"))
	h.RegisterAdmin(admin.Group("/submissions"))
}

func submissionsDisabled(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "submissions are not configured"})
}
