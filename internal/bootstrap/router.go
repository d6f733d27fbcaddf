package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/printcon-atlas/atlas-backend/internal/api/http"
	"github.com/printcon-atlas/atlas-backend/internal/api/http/middleware"
	"github.com/printcon-atlas/atlas-backend/internal/api/http/routes"
	catalogsvc "github.com/printcon-atlas/atlas-backend/internal/catalog/service"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/panels"
	sessionsvc "github.com/printcon-atlas/atlas-backend/internal/session/service"
	"github.com/printcon-atlas/atlas-backend/internal/submissions"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	AdminAPIKey    string

	DB    *pgxpool.Pool
	Redis *redis.Client

	Catalog     *catalogsvc.Holder
	Panels      *panels.Library
	Sessions    *sessionsvc.Service
	Submissions submissions.Store
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id", "X-API-Key"},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis, dep.Catalog)
	healthHandler.RegisterRoutes(r)

	routes.RegisterV1(r, routes.V1Deps{
		Catalog:     dep.Catalog,
		Panels:      dep.Panels,
		Sessions:    dep.Sessions,
		Submissions: dep.Submissions,
		AdminAPIKey: dep.AdminAPIKey,
	})

	return r
}
