package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nfrf/lightfeedback/internal/core/api"
	"github.com/nfrf/lightfeedback/internal/core/config"
	"github.com/nfrf/lightfeedback/internal/core/db"
	"github.com/nfrf/lightfeedback/internal/core/server"
	"github.com/nfrf/lightfeedback/internal/feedback"
)

const Version = "0.1.0"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP feedback API service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "0.0.0.0", "HTTP server host")
	serveCmd.Flags().Int("port", 8000, "HTTP server port")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("host") {
		host, _ := cmd.Flags().GetString("host")
		cfg.Server.Host = host
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt("port")
		cfg.Server.Port = port
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

	store, err := feedback.NewStore(database, queries)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	service, err := api.NewService(store, logger)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	httpServer, err := server.NewHTTPServer(&cfg.Server, service, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Printf("Starting Light Feedback API v%s on %s:%d (backend=%s)",
		Version, cfg.Server.Host, cfg.Server.Port, selector.Backend())
	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		return httpServer.Shutdown(ctx)
	}
}
