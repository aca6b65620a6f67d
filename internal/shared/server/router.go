package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pathoai-backend/internal/analyses"
	"pathoai-backend/internal/services/health"
	"pathoai-backend/internal/shared/config"
	"pathoai-backend/internal/shared/metrics"
	"pathoai-backend/internal/shared/server/middleware"
	"pathoai-backend/internal/shared/server/respond"
	"pathoai-backend/internal/usagelimits"
)

const analyzeRateLimitGroup = "ANALYZE"

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config             config.Config
	Health             *health.Service
	UsageLimitsHandler *usagelimits.Handler
	AnalysesHandler    *analyses.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !deps.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				analyzeRateLimitGroup: {Rate: 1, Burst: 10},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/analyze" {
					return analyzeRateLimitGroup
				}
				return ""
			},
		}),
	)

	r.GET("/", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"message": "Welcome to " + deps.Config.AppName,
			"version": "1.0.0",
			"docs":    "/docs",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	r.GET("/metrics", metrics.Handler())

	if deps.UsageLimitsHandler != nil {
		deps.UsageLimitsHandler.RegisterRoutes(r)
	}
	if deps.AnalysesHandler != nil {
		deps.AnalysesHandler.RegisterRoutes(r)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
