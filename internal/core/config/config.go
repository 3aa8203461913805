// Package config provides configuration management for querybuilder sessions.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Schema sources a session can read its SchemaInfo from.
const (
	SourceMock     = "mock"
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourceDatabase = "database"
)

// SessionConfig holds configuration for one editing session and its collaborators.
type SessionConfig struct {
	// Mocked selects the embedded schema and result fixtures instead of the
	// live endpoint. Nothing else in the code inspects the environment to
	// decide this.
	Mocked         bool
	EndpointURL    string
	RequestTimeout time.Duration
	PathMarker     string
	SchemaSource   string
	SchemaFile     string
	DatabaseURL    string
	ExportDir      string
}

// DefaultSessionConfig returns configuration with default values.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		Mocked:         true,
		EndpointURL:    "http://localhost:8000",
		RequestTimeout: 30 * time.Second,
		PathMarker:     "in",
		ExportDir:      "./exports",
	}
}

// EffectiveSchemaSource resolves the schema source. Mocked sessions always use
// mock; a live session without an explicit source reads the endpoint, matching
// where its searches go.
func (c *SessionConfig) EffectiveSchemaSource() string {
	if c.Mocked {
		return SourceMock
	}
	if c.SchemaSource == "" {
		return SourceHTTP
	}
	return c.SchemaSource
}

// RedactedDatabaseURL returns DatabaseURL with any password masked, for logging.
func (c *SessionConfig) RedactedDatabaseURL() string {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil || u.User == nil {
		return c.DatabaseURL
	}
	return u.Redacted()
}

// hasPassword reports whether a connection URL embeds a password.
func hasPassword(dbURL string) bool {
	if !strings.Contains(dbURL, "://") {
		return false
	}
	u, err := url.Parse(dbURL)
	if err != nil || u.User == nil {
		return false
	}
	_, ok := u.User.Password()
	return ok
}

// validateConfig checks timeout, schema source and the URLs each source needs.
func validateConfig(cfg *SessionConfig) error {
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.RequestTimeout)
	}
	if strings.TrimSpace(cfg.PathMarker) == "" {
		return fmt.Errorf("path_marker must not be blank")
	}
	if strings.ContainsAny(strings.TrimSpace(cfg.PathMarker), " .") {
		return fmt.Errorf("path_marker must be a single word, got %q", cfg.PathMarker)
	}

	switch cfg.SchemaSource {
	case "", SourceMock:
	case SourceFile:
		if cfg.SchemaFile == "" {
			return fmt.Errorf("schema.file required when schema.source is %q", SourceFile)
		}
	case SourceHTTP:
	case SourceDatabase:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("schema.database_url required when schema.source is %q", SourceDatabase)
		}
	default:
		return fmt.Errorf("schema.source must be one of mock, file, http, database, got %q", cfg.SchemaSource)
	}

	if !cfg.Mocked {
		if cfg.EndpointURL == "" {
			return fmt.Errorf("session.endpoint_url required for a live session")
		}
		u, err := url.Parse(cfg.EndpointURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("session.endpoint_url must be an absolute http(s) URL, got %q", cfg.EndpointURL)
		}
	}
	return nil
}
