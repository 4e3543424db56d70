package main

import (
	"log/slog"
	"os"

	"tweetscope/internal/logging"
	"tweetscope/internal/mcp"
)

func main() {
	// stdout carries the protocol; logs go to stderr
	logging.InitLogger(getEnv("LOG_LEVEL", "info"), "text")

	baseURL := getEnv("TWEETSCOPE_BASE_URL", "http://localhost:8080")
	server := mcp.NewServer(baseURL, os.Stdin, os.Stdout)

	slog.Info("mcp shim server starting", "base_url", baseURL)
	if err := server.Serve(); err != nil {
		slog.Error("mcp server failed", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
