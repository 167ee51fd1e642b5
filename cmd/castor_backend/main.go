package main

import (
	"context"
	"log/slog"
	"os"

	portsrepo "github.com/castor-coop/credit-castor/internal/core/ports/repositories"
	"github.com/castor-coop/credit-castor/internal/core/services"
	"github.com/castor-coop/credit-castor/internal/handlers"
	"github.com/castor-coop/credit-castor/internal/middleware"
	"github.com/castor-coop/credit-castor/internal/platform/config"
	"github.com/castor-coop/credit-castor/internal/repositories/database/pgsql"
	"github.com/castor-coop/credit-castor/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Credit Castor API
// @version 1.0
// @description Cost and financing calculator for shared housing projects.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Scenario persistence needs a database; every calculation endpoint
	// works without one.
	var repos *portsrepo.RepositoryProvider
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		if err := pgsql.EnsureSchema(context.Background(), dbPool); err != nil {
			logger.Error("Failed to ensure database schema", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Database schema is up to date.")

		provider := pgsql.NewRepositoryProvider(dbPool)
		repos = &provider
	} else {
		logger.Warn("No database configured, scenario persistence is disabled.")
	}

	container := services.NewContainer(repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
