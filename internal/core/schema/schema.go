// Package schema loads the SchemaInfo an editing session works against.
//
// Every provider returns attribute names in readable form. Sources that speak
// canonical dotted paths (the search service, the database catalog, the
// embedded fixture) are rendered through the session's PathNormalizer, so
// compiling a selected attribute yields the path the service published.
package schema

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/solatis/querybuilder/internal/core/config"
	"github.com/solatis/querybuilder/internal/core/endpoint"
	"github.com/solatis/querybuilder/internal/filter"
	"github.com/solatis/querybuilder/internal/logging"
	"github.com/solatis/querybuilder/internal/types"
)

// Provider fetches the schema once per session.
type Provider interface {
	Fetch(ctx context.Context) (*types.SchemaInfo, error)
}

// New selects the provider configured for cfg.
func New(cfg *config.SessionConfig, log *slog.Logger) (Provider, error) {
	if log == nil {
		log = logging.Discard()
	}
	paths := filter.NewPathNormalizer(cfg.PathMarker)

	switch source := cfg.EffectiveSchemaSource(); source {
	case config.SourceMock:
		return NewMockProvider(paths), nil
	case config.SourceFile:
		return NewFileProvider(cfg.SchemaFile, paths), nil
	case config.SourceHTTP:
		return NewHTTPProvider(endpoint.NewClient(cfg.EndpointURL, cfg.RequestTimeout, log), paths, log), nil
	case config.SourceDatabase:
		return NewDatabaseProvider(cfg.DatabaseURL, paths, log), nil
	default:
		return nil, fmt.Errorf("unknown schema source %q", source)
	}
}

// finish renders canonical names readable, fills missing operator lists and
// validates subset references.
func finish(info *types.SchemaInfo, paths filter.PathNormalizer) (*types.SchemaInfo, error) {
	for i := range info.Attributes {
		if isCanonical(info.Attributes[i].Name) {
			info.Attributes[i].Name = paths.ToReadablePath(info.Attributes[i].Name)
		}
	}
	if len(info.Operators) == 0 {
		info.Operators = filter.OperatorLabels()
	}
	if len(info.LogicalOperators) == 0 {
		info.LogicalOperators = filter.LogicalConnectors()
	}
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return info, nil
}

// isCanonical reports whether name is a dotted path with no whitespace.
func isCanonical(name string) bool {
	return strings.Contains(name, ".") && !strings.ContainsFunc(name, unicode.IsSpace)
}
