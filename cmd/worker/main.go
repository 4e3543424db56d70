package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tweetscope/internal/app"
	"tweetscope/internal/config"
	"tweetscope/internal/logging"
	"tweetscope/internal/tasks"

	"github.com/hibiken/asynq"
)

// daily at 03:00
const trainingSchedule = "0 3 * * *"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := app.Connect(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("worker connected to database")

	a, err := app.Build(cfg, db)
	if err != nil {
		slog.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})
	trainTask, err := tasks.NewTrainModelsTask()
	if err != nil {
		slog.Error("failed to create training task", "error", err)
		os.Exit(1)
	}

	entryID, err := scheduler.Register(trainingSchedule, trainTask, asynq.Queue("default"))
	if err != nil {
		slog.Error("failed to register periodic task", "error", err)
		os.Exit(1)
	}
	slog.Info("registered periodic task", "type", trainTask.Type(), "entry_id", entryID)

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				"default": 3,
			},
			// analyses and training are CPU bound
			Concurrency: 4,
		},
	)

	// a nil *ingest.Collector must not become a non-nil interface
	var collector tasks.Collector
	if a.Collector != nil {
		collector = a.Collector
	}

	taskProcessor := tasks.NewTaskProcessor(a.Analyzer, a.Trainer, collector)

	mux := asynq.NewServeMux()
	taskProcessor.Register(mux)

	go func() {
		slog.Info("starting asynq scheduler")
		if err := scheduler.Run(); err != nil {
			slog.Error("could not run asynq scheduler", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		slog.Info("starting asynq worker server")
		if err := srv.Run(mux); err != nil {
			slog.Error("could not run asynq worker server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	slog.Info("shutdown signal received, shutting down gracefully")

	scheduler.Shutdown()
	slog.Info("asynq scheduler shut down")

	srv.Shutdown()
	slog.Info("worker process shut down complete")
}
