package handlers

import (
	"github.com/castor-coop/credit-castor/internal/core/services"
	"github.com/castor-coop/credit-castor/internal/middleware"
	"github.com/castor-coop/credit-castor/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies from
// the service container.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	container *services.Container,
) {
	// CORS applies to everything, including the health check
	r.Use(cors.New(corsConfig(cfg)))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, container)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	container *services.Container,
) {
	// Rate limit the whole v1 group per client IP
	rate, _ := limiter.NewRateFromFormatted(cfg.RateLimit)
	ipLimiter := limiter.New(memory.NewStore(), rate)

	v1 := r.Group("/api/v1", middleware.RateLimit(ipLimiter))

	// Delegate route registration to specific handlers, passing required services
	registerHomeRoutes(v1)
	RegisterCalculationRoutes(v1, container.Calculation)
	registerPortageRoutes(v1, container.Portage)
	registerTimelineRoutes(v1, container.Timeline)
	registerRedistributionRoutes(v1, container.Redistribution, container.Portage)
	registerCashFlowRoutes(v1, container.CashFlow)
	if container.Scenario != nil {
		RegisterScenarioRoutes(v1, container.Scenario)
	}
}

// corsConfig builds the CORS policy from configuration. With no configured
// origins any origin is allowed, which suits local single-user use.
func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID")
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	return corsCfg
}
