package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GencZhushi/schedule-builder/config"
	"github.com/GencZhushi/schedule-builder/internal/api/handler"
	"github.com/GencZhushi/schedule-builder/internal/api/router"
	"github.com/GencZhushi/schedule-builder/internal/repository"
	"github.com/GencZhushi/schedule-builder/internal/service"
	"github.com/GencZhushi/schedule-builder/pkg/database"
	applogger "github.com/GencZhushi/schedule-builder/pkg/logger"
	"github.com/GencZhushi/schedule-builder/pkg/redis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting schedule-builder",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("session_store", cfg.Session.Store),
	)

	// 3. Connect to PostgreSQL
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	// 3.1 Run migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("acquire underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. Connect to Redis. Optional unless the session store needs it: with
	// the memory store a failed connection only disables upload rate limiting.
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			if cfg.Session.Store == "redis" {
				logger.Fatal("redis connection failed and session.store=redis", zap.Error(err))
			}
			logger.Warn("redis connection failed, upload rate limiting disabled", zap.Error(err))
			rdb = nil
		}
	}

	// 5. Dependency injection: Repository → Service → Handler
	repo := repository.NewRepository(db, &cfg.Session, rdb)
	svc := service.NewService(cfg, repo, logger)
	h := handler.NewHandler(svc)

	// 5.1 Seed the standard weekday time slots on an empty catalog
	if cfg.Catalog.SeedTimeSlots {
		if err := svc.TimeSlot.SeedStandardSlots(context.Background()); err != nil {
			logger.Fatal("time slot seeding failed", zap.Error(err))
		}
	}

	// 6. Build the router
	engine := router.Setup(cfg, h, rdb, logger)

	// 7. Start the HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 8. Wait for a termination signal, then drain
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
