package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nfrf/lightfeedback/internal/core/config"
	"github.com/nfrf/lightfeedback/internal/core/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Ensure the database schema exists and seed projects, then exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dbURL != "" {
		cfg.Database.URL = dbURL
	}

	selector := db.NewSelector(cfg.Database, logger)
	defer selector.Close()

	database, err := selector.DB()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	queries, err := db.LoadQueries()
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	if err := db.EnsureSchema(ctx, database, queries); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	log.Printf("Schema ensured and projects seeded (backend=%s)", selector.Backend())
	return nil
}
