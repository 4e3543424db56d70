package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importHashtag string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store the tweets of a saved JSON export",
	Long: `Store the tweets of a saved export under a hashtag. The file holds either
{"success": true, "data": {"tweets": [...]}} or a bare array of tweets.
Tweets already stored are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importHashtag, "hashtag", "", "hashtag to store the tweets under (required)")
	_ = importCmd.MarkFlagRequired("hashtag")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	report, err := a.Importer.ImportFile(cmd.Context(), args[0], importHashtag)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "read %d, inserted %d, skipped %d\n", report.Read, report.Inserted, report.Skipped)
	return nil
}
