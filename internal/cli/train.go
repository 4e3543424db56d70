package cli

import (
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train and evaluate sentiment classifiers on every stored tweet",
	Long: `Label every stored tweet with the sentiment analyzer, fit logistic
regression, naive Bayes and a linear SVM on tf-idf features, and append the
held-out evaluation to model_evaluation.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	eval, err := a.Trainer.Train(cmd.Context())
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), eval)
}
