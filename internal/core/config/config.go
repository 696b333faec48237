// Package config provides configuration management for the Light Feedback API.
package config

import (
	"fmt"

	"github.com/nfrf/lightfeedback/internal/types"
)

// Pagination limits forming part of the external contract.
const (
	PageSizeDefault = 20
	PageSizeMax     = 100
)

// AllowedProjects is the developer-controlled project list. Users can not add
// entries through the API; changing this list is a deploy-time decision. The
// list is seeded into the database idempotently on every startup, and feedback
// creation is validated against it rather than against a live join, so
// historical feedback against removed projects stays readable.
var AllowedProjects = []types.Project{
	{Key: "nfrfscenario", Name: "NFRF Scenario", Active: true},
	{Key: "nfrfconnect", Name: "NFRF Connect", Active: true},
}

// ProjectAllowed reports whether key names a project in AllowedProjects.
func ProjectAllowed(key string) bool {
	for _, p := range AllowedProjects {
		if p.Key == key {
			return true
		}
	}
	return false
}

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
}

// ServerConfig holds configuration for the HTTP API service.
type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

// DatabaseConfig holds backend selection inputs. URL, when set, pins a backend
// explicitly (sqlite://path or postgres://...) and bypasses the
// preference-and-fallback probe.
type DatabaseConfig struct {
	URL        string
	SQLitePath string
	Postgres   PostgresConfig
}

// PostgresConfig holds client/server backend connection parameters.
// Password is environment-only (LF_DB_POSTGRES_PASSWORD); config files
// carrying it are rejected at load time.
type PostgresConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	Schema   string
	SSLMode  string
}

// Default returns configuration with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			},
		},
		Database: DatabaseConfig{
			SQLitePath: "./feedback.db",
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				Name:    "feedback",
				User:    "feedback",
				Schema:  "feedback",
				SSLMode: "disable",
			},
		},
	}
}

// Validate checks port ranges and required fields.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Postgres.Port <= 0 || c.Database.Postgres.Port > 65535 {
		return fmt.Errorf("postgres port must be between 1 and 65535, got %d", c.Database.Postgres.Port)
	}
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("sqlite path cannot be empty")
	}
	if len(c.Server.CORSOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin required")
	}
	return nil
}
