package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
	dbURL      string
)

var rootCmd = &cobra.Command{
	Use:   "lightfeedback",
	Short: "Light Feedback bug and feature tracking API",
	Long:  `Light Feedback tracks bug reports and feature requests against a fixed set of developer-defined projects, backed by SQLite or PostgreSQL with automatic fallback.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "pin the database backend (sqlite://path or postgres://...); skips the preference-and-fallback probe")
}

func Execute() error {
	return rootCmd.Execute()
}
