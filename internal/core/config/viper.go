package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*SessionConfig, error) {
	v := viper.New()

	// Set defaults matching DefaultSessionConfig
	def := DefaultSessionConfig()
	v.SetDefault("session.mocked", def.Mocked)
	v.SetDefault("session.endpoint_url", def.EndpointURL)
	v.SetDefault("session.request_timeout", def.RequestTimeout.String())
	v.SetDefault("session.path_marker", def.PathMarker)
	v.SetDefault("schema.source", "")
	v.SetDefault("schema.file", def.SchemaFile)
	v.SetDefault("schema.database_url", def.DatabaseURL)
	v.SetDefault("export.dir", def.ExportDir)

	// Bind environment variables with QB_ prefix (QB_SESSION_MOCKED, QB_SCHEMA_SOURCE, ...)
	v.SetEnvPrefix("QB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Credentials belong in the environment, never in a checked-in file
	if configPath != "" {
		if err := validateNoCredentialsInConfig(configPath); err != nil {
			return nil, err
		}
	}

	cfg := &SessionConfig{
		Mocked:         v.GetBool("session.mocked"),
		EndpointURL:    strings.TrimRight(v.GetString("session.endpoint_url"), "/"),
		RequestTimeout: v.GetDuration("session.request_timeout"),
		PathMarker:     strings.TrimSpace(v.GetString("session.path_marker")),
		SchemaSource:   strings.ToLower(v.GetString("schema.source")),
		SchemaFile:     v.GetString("schema.file"),
		DatabaseURL:    v.GetString("schema.database_url"),
		ExportDir:      v.GetString("export.dir"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate re-checks cfg after CLI flags have been applied.
func Validate(cfg *SessionConfig) error {
	return validateConfig(cfg)
}

// validateNoCredentialsInConfig rejects a database password written into the config file.
// The file is read on its own so an environment override cannot mask or trigger the check.
func validateNoCredentialsInConfig(configPath string) error {
	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if hasPassword(v.GetString("schema.database_url")) {
		return fmt.Errorf("database passwords not allowed in config files (use QB_SCHEMA_DATABASE_URL environment variable)")
	}
	return nil
}
