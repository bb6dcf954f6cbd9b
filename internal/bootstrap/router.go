package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/pms-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/pms-backend/internal/api/http/middleware"
	projectshttp "github.com/GoSim-25-26J-441/pms-backend/internal/projects/http"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	// DB and Redis are only pinged by the health check; either may be nil.
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Repo   service.Repository
	Drafts service.DraftStore
	Logger *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	log := dep.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(log))
	if len(dep.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))

	projects := service.NewProjectService(dep.Repo, log)
	people := service.NewPersonService(dep.Repo, log)
	changes := service.NewChangeSetService(projects, dep.Drafts, log)

	projectshttp.New(projects, people, changes, log).Register(api)

	return r
}
