// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Api is the entry point for the HappyDog API server.

The server provides the pet care backend: biometric nose-print admission,
cartoon job orchestration, and the post/comment/like social graph.

Usage:

	go run cmd/api/main.go [flags]

The flags/environment variables are:

	SERVER_PORT     Port to listen on (default: 8080)
	ENVIRONMENT     deployment environment (development, production)
	DATABASE_URL    Postgres connection string (required)
	REDIS_URL       Redis connection string (required)

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Establish connections to Postgres and Redis.
 4. Migration: Run idempotent schema updates.
 5. Wiring: Inject dependencies into domain services/handlers.
 6. Server: Bind HTTP listener and handle graceful shutdown.

No business logic lives here. This file is strictly for orchestration and wiring.
*/
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

	"github.com/robfig/cron/v3"

	"github.com/happydog/core/internal/api"
	"github.com/happydog/core/internal/biometric"
	"github.com/happydog/core/internal/cartoon"
	"github.com/happydog/core/internal/notify"
	"github.com/happydog/core/internal/objectstore"
	"github.com/happydog/core/internal/petcare"
	"github.com/happydog/core/internal/platform/config"
	"github.com/happydog/core/internal/platform/constants"
	"github.com/happydog/core/internal/platform/docstore"
	"github.com/happydog/core/internal/platform/migration"
	pgstore "github.com/happydog/core/internal/platform/postgres"
	redisstore "github.com/happydog/core/internal/platform/redis"
	"github.com/happydog/core/internal/platform/revocation"
	"github.com/happydog/core/internal/platform/sec"
	"github.com/happydog/core/internal/social"
	"github.com/happydog/core/internal/users"
	"github.com/happydog/core/internal/vectorindex"
	"github.com/happydog/core/pkg/clock"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries for trace correlation
	log := rawLog.With(slog.String("app", "happydog"))
	slog.SetDefault(log)

	log.Info("happydog_service_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Adjust log level if debug mode is explicitly enabled
	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "happydog"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. A 30s deadline prevents the app from hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// # 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// # 4. Redis
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// # 5. Migrations
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// # 6. Platform Services
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return fmt.Errorf("initialize jwt service: %w", err)
	}

	// # 7. Health Wiring
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// # 8. Shared Foundations
	docs := docstore.NewStore(pool)
	clk := clock.Real{}

	signingKey := []byte(cfg.SessionSecret)

	objectStore := objectstore.NewStore(cfg.ObjectStoreDir, cfg.ObjectStorePublicBaseURL, signingKey)

	index, err := vectorindex.LoadOrCreate(cfg.VectorIndexPath, constants.EmbeddingDimension, log)
	if err != nil {
		return fmt.Errorf("load vector index: %w", err)
	}

	// # 9. Identity & Pet Care
	userStore := users.NewStore(docs)
	userSvc := users.NewService(userStore, clk)

	petStore := petcare.NewStore(docs)
	petSvc := petcare.NewService(docs, petStore, clk)

	// # 10. Notifications
	notifier := notify.NewNotifier(docs, userStore, rdb, clk, log)

	// # 11. Social Graph
	postStore := social.NewPostStore(docs)
	commentStore := social.NewCommentStore(docs)
	likeStore := social.NewLikeStore(docs)
	socialSvc := social.NewService(docs, postStore, commentStore, likeStore, userStore, petStore, objectStore, notifier, clk, log)

	// # 12. Biometric Admission Engine
	biometricSvc := biometric.NewService(docs, petStore, objectStore, index, biometric.StubDetector{}, biometric.StubEmbedder{}, log)

	// # 13. Cartoon Job Orchestrator
	jobStore := cartoon.NewStore(docs)
	breaker := cartoon.NewCircuitBreaker(rdb)
	cartoonSvc := cartoon.NewService(
		jobStore,
		objectStore,
		socialSvc,
		notifier,
		cartoon.StubAnalyzer{},
		cartoon.NewStubGenerator(cfg.ObjectStorePublicBaseURL),
		breaker,
		clk,
		log,
		constants.DefaultWorkerPoolSize,
		constants.DefaultSubmissionQueueDepth,
		constants.DefaultEnqueueTimeout,
	)

	// # 14. Scheduled Jobs
	// Belt-and-suspenders GC and a consistency self-check, both logged and
	// never fatal — a missed sweep just runs again at the next tick.
	revocationStore := revocation.NewStore(pool)
	scheduler := cron.New()
	_, err = scheduler.AddFunc(constants.RevokedTokenSweepSchedule, func() {
		removed, err := revocationStore.SweepExpired(context.Background())
		if err != nil {
			log.Error("revoked_token_sweep_failed", slog.Any("error", err))
			return
		}
		log.Info("revoked_token_sweep_complete", slog.Int64("removed", removed))
	})
	if err != nil {
		return fmt.Errorf("schedule revoked token sweep: %w", err)
	}
	_, err = scheduler.AddFunc(constants.VectorIndexSelfCheckSchedule, func() {
		verified, err := petStore.CountVerified(context.Background())
		if err != nil {
			log.Error("vector_index_self_check_failed", slog.Any("error", err))
			return
		}
		if indexed := int64(index.Count()); indexed != verified {
			log.Error("vector_index_drift_detected",
				slog.Int64("verified_pets", verified),
				slog.Int64("indexed_vectors", indexed),
			)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule vector index self-check: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// # 15. API Assembly
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Uploads:     objectstore.NewHandler(objectStore, userSvc),
		Pets:        api.NewPetsHandler(petSvc, biometricSvc, userSvc),
		Posts:       social.NewHandler(socialSvc, userSvc),
		CartoonJobs: cartoon.NewHandler(cartoonSvc, userSvc),
	}

	// Create a background context for the whole application lifecycle
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// # 16. Lifecycle Handling
	shutdownErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownErr <- fmt.Errorf("http_server_crash: %w", err)
		}
	}()

	log.Info("happydog_api_running", slog.String("port", cfg.ServerPort))

	// Block until signal or error
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-shutdownErr:
		return err
	}

	// Start Graceful Shutdown Sequence
	appCancel() // Signal background workers to stop

	log.Info("shutting_down_api_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("server_shutdown_failed: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()
	if err := cartoonSvc.Shutdown(shutdownCtx); err != nil {
		log.Error("cartoon_worker_drain_failed", slog.Any("error", err))
	}

	log.Info("graceful_shutdown_complete")
	return nil
}
