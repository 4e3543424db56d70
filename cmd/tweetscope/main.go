package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tweetscope/internal/cli"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	if err := cli.Execute(ctx); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
