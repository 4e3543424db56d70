package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	collectMax     int
	collectAnalyze bool
)

var collectCmd = &cobra.Command{
	Use:   "collect <hashtag>",
	Short: "Fetch recent tweets of a hashtag from the X API and store them",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollect,
}

func init() {
	collectCmd.Flags().IntVar(&collectMax, "max", 100, "maximum number of tweets to fetch")
	collectCmd.Flags().BoolVar(&collectAnalyze, "analyze", false, "analyze the hashtag after storing")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	if a.Collector == nil {
		return errors.New("TWITTER_BEARER_TOKEN is not configured")
	}

	ctx := cmd.Context()

	report, err := a.Collector.Collect(ctx, args[0], collectMax)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "fetched %d, inserted %d, skipped %d\n", report.Read, report.Inserted, report.Skipped)

	if !collectAnalyze {
		return nil
	}

	result, err := a.Analyzer.AnalyzeHashtag(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result.Summary)
}
