package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
// Environment variables use the LF_ prefix with dots replaced by underscores,
// e.g. LF_SERVER_PORT, LF_DB_POSTGRES_HOST.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.cors_origins", def.Server.CORSOrigins)
	v.SetDefault("db.url", "")
	v.SetDefault("db.sqlite_path", def.Database.SQLitePath)
	v.SetDefault("db.postgres.host", def.Database.Postgres.Host)
	v.SetDefault("db.postgres.port", def.Database.Postgres.Port)
	v.SetDefault("db.postgres.name", def.Database.Postgres.Name)
	v.SetDefault("db.postgres.user", def.Database.Postgres.User)
	v.SetDefault("db.postgres.password", "")
	v.SetDefault("db.postgres.schema", def.Database.Postgres.Schema)
	v.SetDefault("db.postgres.sslmode", def.Database.Postgres.SSLMode)

	// Bind environment variables with LF_ prefix
	v.SetEnvPrefix("LF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Credentials are environment-only; a password in the file is an error.
	if err := validateNoSecretsInConfig(v); err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("server.host"),
			Port:        v.GetInt("server.port"),
			CORSOrigins: v.GetStringSlice("server.cors_origins"),
		},
		Database: DatabaseConfig{
			URL:        v.GetString("db.url"),
			SQLitePath: v.GetString("db.sqlite_path"),
			Postgres: PostgresConfig{
				Host:     v.GetString("db.postgres.host"),
				Port:     v.GetInt("db.postgres.port"),
				Name:     v.GetString("db.postgres.name"),
				User:     v.GetString("db.postgres.user"),
				Password: v.GetString("db.postgres.password"),
				Schema:   v.GetString("db.postgres.schema"),
				SSLMode:  v.GetString("db.postgres.sslmode"),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateNoSecretsInConfig enforces environment-only credentials.
func validateNoSecretsInConfig(v *viper.Viper) error {
	if v.InConfig("db.postgres.password") {
		return fmt.Errorf("database passwords not allowed in config files (use LF_DB_POSTGRES_PASSWORD environment variable)")
	}
	return nil
}
