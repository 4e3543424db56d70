package cli

import (
	"fmt"

	"tweetscope/internal/config"
	"tweetscope/internal/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		conn, err := db.InitDB(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return err
		}

		if err := db.Migrate(conn); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "database migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
