package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/runs"
	"resume-tailor/internal/services/health"
	"resume-tailor/internal/shared/config"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/shared/server/respond"
	"resume-tailor/internal/tailor"
	"resume-tailor/internal/web"
)

const tailorRateGroup = "TAILOR"

// RouterDeps carries the handlers mounted on the router.
type RouterDeps struct {
	Config        config.Config
	TailorHandler *tailor.Handler
	RunsHandler   *runs.Handler
	Health        *health.Service
	RateLimiter   *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	limit := middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: tailorRateGroup,
		Limiter:      deps.RateLimiter,
		Rules: map[string]middleware.RateLimitRule{
			tailorRateGroup: {Rate: deps.Config.TailorRatePerSec, Burst: deps.Config.TailorBurst},
		},
	})

	web.RegisterRoutes(r)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status(c.Request.Context()))
	})
	if deps.TailorHandler != nil {
		deps.TailorHandler.RegisterRoutes(api, limit)
	}
	if deps.RunsHandler != nil {
		deps.RunsHandler.RegisterRoutes(api)
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
