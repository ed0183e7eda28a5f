package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arshsnaz/zidio-job-platform/internal/config"
	"github.com/arshsnaz/zidio-job-platform/internal/db"
	"github.com/arshsnaz/zidio-job-platform/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long:  "Applies the embedded SQL migrations to the configured PostgreSQL database. Already applied migrations are skipped.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or %s_DATABASE_URL)", config.EnvPrefix)
	}

	audit, err := logging.New(cfg.Log.JSON, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = audit.Sync() }()

	database, err := db.Connect(cmd.Context(), cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	applied, err := database.Migrate(cmd.Context(), audit.Sugar())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", applied)
	return nil
}
