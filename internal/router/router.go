package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/HafsaFatima26/hospital-management-system/internal/handler"
	auditHandler "github.com/HafsaFatima26/hospital-management-system/internal/handler/audit"
	authHandler "github.com/HafsaFatima26/hospital-management-system/internal/handler/auth"
	dashboardHandler "github.com/HafsaFatima26/hospital-management-system/internal/handler/dashboard"
	patientHandler "github.com/HafsaFatima26/hospital-management-system/internal/handler/patient"
	"github.com/HafsaFatima26/hospital-management-system/internal/middleware"
)

type Config struct {
	RateLimit rate.Limit
	RateBurst int
}

type Router struct {
	engine *gin.Engine
}

func New(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	dashboardH *dashboardHandler.Handler,
	patientH *patientHandler.Handler,
	auditH *auditHandler.Handler,
	healthH *handler.HealthHandler,
	cfg Config,
) *Router {
	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())
	engine.Use(middleware.Metrics())
	if cfg.RateLimit > 0 {
		engine.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateBurst))
	}

	engine.GET("/health", healthH.HealthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	authH.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(auth.Authenticate())
	authH.RegisterRoutes(protected)
	dashboardH.RegisterRoutes(protected)
	patientH.RegisterRoutes(protected)
	auditH.RegisterRoutes(protected)

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
