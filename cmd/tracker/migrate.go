package main

import (
	"github.com/spf13/cobra"

	"github.com/feral-file/token-tracker/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the tracker tables",
	Long:  "Create the tokens and creator_reputation tables and their indexes when they do not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		// newApp already ran it; running again confirms it is idempotent against this database
		if err := a.store.EnsureSchema(ctx); err != nil {
			return err
		}
		logger.InfoCtx(ctx, "Schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
