package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/solatis/querybuilder/internal/core/config"
	"github.com/solatis/querybuilder/internal/filter"
	"github.com/solatis/querybuilder/internal/logging"
)

var (
	configFile string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:          "querybuilder",
	Short:        "Build and compile nested search filters",
	Long:         `querybuilder edits condition trees over a published schema and compiles them into the search service's filter expressions.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (json, text)")
	rootCmd.PersistentFlags().Bool("mocked", true, "use embedded schema and results instead of the live service")
	rootCmd.PersistentFlags().String("endpoint", "", "search service base URL")
	rootCmd.PersistentFlags().String("marker", "", "word joining nested field names (e.g. in, em)")
	rootCmd.PersistentFlags().String("db-url", "", "database to derive the schema from when not mocked (sqlite://path or postgres://...)")
}

func Execute() error {
	return rootCmd.Execute()
}

// sessionEnv is what every subcommand needs: resolved config, logger and path normalizer.
type sessionEnv struct {
	cfg   *config.SessionConfig
	log   *slog.Logger
	paths filter.PathNormalizer
}

// loadSessionEnv loads config and applies root flag overrides.
func loadSessionEnv(cmd *cobra.Command) (*sessionEnv, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("mocked") {
		cfg.Mocked, _ = flags.GetBool("mocked")
	}
	if flags.Changed("endpoint") {
		cfg.EndpointURL, _ = flags.GetString("endpoint")
	}
	if flags.Changed("marker") {
		cfg.PathMarker, _ = flags.GetString("marker")
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL, _ = flags.GetString("db-url")
		cfg.SchemaSource = config.SourceDatabase
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.NewLogger(logLevel, logFormat, cmd.ErrOrStderr())
	log.Debug("configuration loaded",
		slog.String("component", "config"),
		slog.Bool("mocked", cfg.Mocked),
		slog.String("schema_source", cfg.EffectiveSchemaSource()),
		slog.String("database_url", cfg.RedactedDatabaseURL()))

	return &sessionEnv{
		cfg:   cfg,
		log:   log,
		paths: filter.NewPathNormalizer(cfg.PathMarker),
	}, nil
}
