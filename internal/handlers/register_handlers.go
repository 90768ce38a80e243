package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/finance_tracker_app/cmd/docs"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/SscSPs/finance_tracker_app/internal/platform/config"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const healthCheckTimeout = 2 * time.Second

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	registerCustomValidators()

	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/health", healthHandler(services.Health))

	if err := registerAuthRoutes(r, cfg, services); err != nil {
		return err
	}

	if err := setupAPIV1Routes(r, cfg, services, posthogClient); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	apiLimiter, err := middleware.NewMemoryRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RateLimit(apiLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	registerUserRoutes(v1, service.User)
	registerTransactionRoutes(v1, service.Transaction, posthogClient)
	registerSavingsRoutes(v1, service.Savings, posthogClient)
	registerReportingRoutes(v1, service.Reporting)
	return nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsCfg.AddAllowHeaders("Authorization")
	return corsCfg
}

// healthHandler reports 503 while the store cannot be reached.
func healthHandler(health portssvc.HealthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if health == nil {
			c.String(http.StatusOK, "OK")
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()
		if err := health.Ping(ctx); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Health check failed", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "database unavailable"})
			return
		}
		c.String(http.StatusOK, "OK")
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
