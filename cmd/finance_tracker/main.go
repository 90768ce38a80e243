package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/core/services"
	"github.com/SscSPs/finance_tracker_app/internal/handlers"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/SscSPs/finance_tracker_app/internal/platform/config"
	"github.com/SscSPs/finance_tracker_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/finance_tracker_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/SscSPs/finance_tracker_app/pkg/database"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title Finance Tracker API
// @version 1.0
// @description Personal ledger with income-scoped spending, budgets and savings goals.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	svcs := services.NewServiceContainer(cfg, repos)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	if err := handlers.RegisterRoutes(r, cfg, svcs, posthogClient); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore runs migrations and builds the repositories for the configured driver.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, func(), error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		logger.Info("Running database migrations...", slog.String("driver", cfg.DBDriver))
		if err := database.RunSQLiteMigrations(cfg.SQLitePath); err != nil {
			return repositories.RepositoryProvider{}, nil, err
		}
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return repositories.RepositoryProvider{}, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing SQLite database", slog.String("error", err.Error()))
			}
		}
		return sqlite.NewRepositoryProvider(db), closeFn, nil
	default:
		logger.Info("Running database migrations...", slog.String("driver", cfg.DBDriver))
		if err := database.RunPostgresMigrations(cfg.DatabaseURL); err != nil {
			return repositories.RepositoryProvider{}, nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return repositories.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil
	}
}
