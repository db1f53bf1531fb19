package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	adminhttp "github.com/GoSim-25-26J-441/project-tracker-backend/internal/admin/http"
	httpapi "github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
	authhttp "github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth/http"
	projecthttp "github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects/http"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Logger      *zap.Logger

	Store storage.Storage
	DB    httpapi.Pinger

	// Identity authenticates the caller, e.g. middleware.FirebaseAuth.
	Identity gin.HandlerFunc

	// Registry serves /metrics. Nil disables metrics.
	Registry *prometheus.Registry

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	if dep.Registry != nil {
		r.Use(middleware.Metrics(dep.Registry))
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(dep.Registry, promhttp.HandlerOpts{})))
	}
	if len(dep.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(dep.Identity, auth.SyncUser(dep.Store))

	authhttp.New().Register(api.Group("/auth"))

	limiter := middleware.NewRateLimiter(dep.RateLimitRPS, dep.RateLimitBurst)
	projecthttp.New(dep.Store).Register(api.Group("/projects"), limiter.Middleware())

	admin := api.Group("/admin")
	admin.Use(auth.RequireAdmin())
	adminhttp.New(dep.Store).Register(admin)

	return r
}
