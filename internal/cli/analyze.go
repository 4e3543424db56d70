package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <hashtag>",
	Short: "Analyze the stored tweets of a hashtag",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	result, err := a.Analyzer.AnalyzeHashtag(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if result.Warning != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", result.Warning)
	}

	return printJSON(cmd.OutOrStdout(), result.Summary)
}
