package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(_ *cobra.Command, _ []string) error {
		if !cfg.PostgresEnabled() {
			return errors.New("postgres is not configured")
		}
		return runMigrations()
	},
}
