package main

import (
	"log/slog"
	"os"

	"tweetscope/internal/app"
	"tweetscope/internal/config"
	"tweetscope/internal/handler"
	"tweetscope/internal/logging"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogLevel, "json")

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

	lambda.Start(handler.New(a.Analyzer).Handle)
}
