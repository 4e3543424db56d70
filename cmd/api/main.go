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

	"tweetscope/internal/app"
	"tweetscope/internal/config"
	"tweetscope/internal/logging"
	"tweetscope/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(gin.ReleaseMode)

	db, err := app.Connect(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	a, err := app.Build(cfg, db)
	if err != nil {
		slog.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	deps := routes.Dependencies{
		Analyzer: a.Analyzer,
		Results:  a.Store,
	}

	if cfg.RedisURL != "" {
		redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
		if err != nil {
			slog.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}

		asynqClient := asynq.NewClient(redisOpt)
		defer asynqClient.Close()
		deps.Queue = asynqClient
	} else {
		slog.Warn("REDIS_URL not set, job endpoints are disabled")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           routes.SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutdown signal received, shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
