// Package cli contains the commands of the tweetscope CLI.
package cli

import (
	"context"
	"encoding/json"
	"io"

	"tweetscope/internal/app"
	"tweetscope/internal/config"
	"tweetscope/internal/logging"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "tweetscope",
	Short: "Hashtag sentiment and bot analysis",
	Long: `tweetscope analyzes stored tweets of a hashtag: sentiment, likely bots and
the most common words.

Example usage:
  tweetscope import tweets.json --hashtag golang   # Store a saved tweet export
  tweetscope collect golang --max 200              # Fetch recent tweets from the X API
  tweetscope analyze golang                        # Analyze and store the summary
  tweetscope train                                 # Train and evaluate sentiment models`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Root exposes the command tree, mainly for tests.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// buildApp loads configuration and wires the application for one command.
func buildApp() (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logging.InitLogger(level, cfg.LogFormat)

	db, err := app.Connect(cfg)
	if err != nil {
		return nil, err
	}

	return app.Build(cfg, db)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
