package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Suhaibk137/atsclaude/internal/shared/config"
	"github.com/Suhaibk137/atsclaude/internal/shared/storage/db"
)

func migrateCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the conversion ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				databaseURL = config.Load().DatabaseURL
			}
			sqlDB, err := db.Open(cmd.Context(), databaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres URL (default: $DATABASE_URL)")
	return cmd
}
