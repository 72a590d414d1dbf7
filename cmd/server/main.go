package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/review-portal/backend/internal/handlers"
	"github.com/anonto42/review-portal/backend/internal/jobs"
	"github.com/anonto42/review-portal/backend/internal/metrics"
	"github.com/anonto42/review-portal/backend/internal/router"
	"github.com/anonto42/review-portal/backend/internal/storage"
	"github.com/anonto42/review-portal/backend/pkg/config"
	"github.com/anonto42/review-portal/backend/pkg/firebase"
	"github.com/anonto42/review-portal/backend/pkg/logging"
	"github.com/anonto42/review-portal/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.New("", "info").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize databases", "error", err)
		os.Exit(1)
	}
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		logger.Error("failed to migrate PostgreSQL", "error", err)
		os.Exit(1)
	}

	// Firebase is optional: without it uploads go to local disk and
	// Firebase login is disabled.
	var (
		blobStore    storage.BlobStore
		firebaseAuth handlers.IDTokenVerifier
		uploadDir    string
	)
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseStorageBucket)
	switch {
	case errors.Is(err, firebase.ErrNotConfigured):
		logger.Info("firebase not configured")
	case err != nil:
		logger.Error("failed to initialize Firebase", "error", err)
		os.Exit(1)
	default:
		firebaseAuth = firebaseApp.AuthClient
		if firebaseApp.Bucket != nil {
			blobStore = storage.NewFirebaseStore(firebaseApp.Bucket, firebaseApp.BucketName)
		}
	}
	if blobStore == nil {
		local, err := storage.NewLocalStore(cfg.UploadDir, cfg.UploadsURL())
		if err != nil {
			logger.Error("failed to prepare upload directory", "error", err)
			os.Exit(1)
		}
		blobStore = local
		uploadDir = cfg.UploadDir
		logger.Info("storing uploads on local disk", "dir", cfg.UploadDir)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e, cfg, logger)

	// Setup routes and dependencies
	repos := router.SetupRoutes(e, router.Dependencies{
		Postgres:          db.Postgres,
		Mongo:             db.MongoDB,
		BlobStore:         blobStore,
		UploadDir:         uploadDir,
		FirebaseAuth:      firebaseAuth,
		JWTSecret:         cfg.JWTSecret,
		JWTTTL:            cfg.JWTTTL,
		DashboardCacheTTL: cfg.DashboardCacheTTL,
		Metrics:           appMetrics,
		Logger:            logger,
	})

	var sweeper *jobs.OrphanSweeper
	if cfg.OrphanSweepInterval > 0 {
		sweeper = jobs.NewOrphanSweeper(repos.Projects, repos.Comments, repos.Notifications, appMetrics, logger)
		if err := sweeper.Start(cfg.OrphanSweepInterval); err != nil {
			logger.Error("failed to start orphan sweep", "error", err)
			os.Exit(1)
		}
	}

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics server listening", "port", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	// Start server
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown failed", "error", err)
	}
	if sweeper != nil {
		if err := sweeper.Stop(); err != nil {
			logger.Error("orphan sweep shutdown failed", "error", err)
		}
	}
}
