package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/edarmartinez/job-hunt-os/config"
	"github.com/edarmartinez/job-hunt-os/internal/app"
	"github.com/edarmartinez/job-hunt-os/internal/database"
	"github.com/edarmartinez/job-hunt-os/internal/logger"
	"github.com/edarmartinez/job-hunt-os/internal/server"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Auth.APIKey == "" {
		log.Warn("auth.api_key is not set; all mutating requests will be rejected")
	}

	dbPool, err := database.NewConnectionPool(cfg.DB, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	if err := database.EnsureSchema(context.Background(), dbPool, log); err != nil {
		log.Fatal("failed to ensure database schema", zap.Error(err))
	}

	// Redis is optional; without it the rate limiter is simply not installed.
	application := &app.Application{
		Config:    cfg,
		DBPool:    dbPool,
		Validator: validator.New(),
		Logger:    log,
	}
	if cfg.Redis.Addr != "" {
		redisClient, err := database.NewRedisClient(cfg.Redis, log)
		if err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		application.RedisClient = redisClient
	}

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("application gracefully stopped")
}
