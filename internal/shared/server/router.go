package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Suhaibk137/atsclaude/internal/conversions"
	"github.com/Suhaibk137/atsclaude/internal/convert"
	"github.com/Suhaibk137/atsclaude/internal/services/health"
	"github.com/Suhaibk137/atsclaude/internal/shared/config"
	"github.com/Suhaibk137/atsclaude/internal/shared/metrics"
	"github.com/Suhaibk137/atsclaude/internal/shared/server/middleware"
	"github.com/Suhaibk137/atsclaude/internal/shared/server/respond"
	"github.com/Suhaibk137/atsclaude/internal/web"
)

// RouterDeps bundles the handlers the router mounts.
type RouterDeps struct {
	Config            config.Config
	ConvertHandler    *convert.Handler
	ConversionHandler *conversions.Handler
	Health            *health.Service
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
	r.GET("/", web.Index())
	r.GET("/metrics", metrics.Handler())
	if deps.ConvertHandler != nil {
		convertRoutes := r.Group("/")
		if rule := convertRateRule(deps.Config); rule.Rate > 0 && rule.Burst > 0 {
			convertRoutes.Use(middleware.RateLimit("convert", middleware.NewRateLimiter(rule, nil)))
		}
		deps.ConvertHandler.RegisterRoutes(convertRoutes)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status, ok := deps.Health.Status(c.Request.Context())
		if !ok {
			respond.JSON(c, http.StatusServiceUnavailable, status)
			return
		}
		respond.JSON(c, http.StatusOK, status)
	})
	if deps.ConversionHandler != nil {
		deps.ConversionHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Not found")
	})

	return r
}

func convertRateRule(cfg config.Config) middleware.RateLimitRule {
	return middleware.RateLimitRule{Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst}
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
