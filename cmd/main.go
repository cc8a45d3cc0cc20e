package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/league-brackets/config"
	"github.com/Dosada05/league-brackets/db"
	"github.com/Dosada05/league-brackets/handlers"
	"github.com/Dosada05/league-brackets/metrics"
	"github.com/Dosada05/league-brackets/realtime"
	"github.com/Dosada05/league-brackets/repositories"
	api "github.com/Dosada05/league-brackets/routes"
	"github.com/Dosada05/league-brackets/services"
	"github.com/Dosada05/league-brackets/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 15 * time.Second

// @title           League Brackets API
// @version         1.0
// @description     Single and double elimination bracket generation for league seasons.
// @host            localhost:8080
// @BasePath        /api/v1

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Duration("commit_timeout", cfg.CommitTimeout),
		slog.Bool("archive_enabled", cfg.R2Enabled()),
	)

	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	migrateCtx, cancelMigrate := context.WithTimeout(appCtx, time.Minute)
	err = db.Migrate(migrateCtx, dbConn, db.Migrations, logger)
	cancelMigrate()
	if err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	uploader, err := storage.New(appCtx, storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize bracket archive", slog.Any("error", err))
		os.Exit(1)
	}

	wsHub := realtime.NewHub(logger)
	go wsHub.Run(appCtx)
	logger.Info("WebSocket hub started")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewPrometheusRecorder(registry)

	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	generationRepo := repositories.NewPostgresGenerationRepository(dbConn)

	bracketService := services.NewBracketService(
		matchRepo,
		generationRepo,
		uploader,
		wsHub,
		recorder,
		logger,
		services.BracketServiceConfig{CommitTimeout: cfg.CommitTimeout},
	)

	bracketHandler := handlers.NewBracketHandler(bracketService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger)

	router := chi.NewRouter()
	api.SetupRoutes(router, bracketHandler, webSocketHandler, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Gatherer:       registry,
	})

	// WriteTimeout leaves room for a full commit plus archiving.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.CommitTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			cancelApp()
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}

	cancelApp()
	logger.Info("application exited")
}
