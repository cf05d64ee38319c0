package cmd

import (
	"fmt"

	"github.com/internlink/server/internal/storage/postgres"
	"github.com/internlink/server/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var migrateDownSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	Long: `Apply pending schema migrations to the configured database.

Targets PostgreSQL when DATABASE_URL is set, otherwise the local SQLite file.
The serve command applies migrations automatically; this command exists for
operating on the database without starting the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(0)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(migrateDownSteps)
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateDownCmd)
}

func runMigrations(downSteps int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if cfg.Database.UsePostgres() {
		if downSteps > 0 {
			return postgres.MigrateDown(cfg.Database.URL, downSteps)
		}
		return postgres.MigrateUp(cfg.Database.URL)
	}

	if downSteps > 0 {
		return sqlite.MigrateDown(cfg.Database.SQLitePath, downSteps)
	}
	return sqlite.MigrateUp(cfg.Database.SQLitePath)
}
