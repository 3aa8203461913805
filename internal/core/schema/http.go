package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/solatis/querybuilder/internal/core/endpoint"
	"github.com/solatis/querybuilder/internal/filter"
	"github.com/solatis/querybuilder/internal/logging"
	"github.com/solatis/querybuilder/internal/types"
)

// HTTPProvider fetches GET <endpoint>/properties from the search service.
type HTTPProvider struct {
	client *endpoint.Client
	paths  filter.PathNormalizer
	log    *slog.Logger
}

func NewHTTPProvider(client *endpoint.Client, paths filter.PathNormalizer, log *slog.Logger) *HTTPProvider {
	if log == nil {
		log = logging.Discard()
	}
	return &HTTPProvider{
		client: client,
		paths:  paths,
		log:    log.With(slog.String("component", "schema.http")),
	}
}

func (p *HTTPProvider) Fetch(ctx context.Context) (*types.SchemaInfo, error) {
	t := logging.StartTimed()

	var raw json.RawMessage
	if err := p.client.GetJSON(ctx, "/properties", &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch schema: %w", err)
	}
	info, err := decodeEnvelope(raw)
	if err != nil {
		return nil, err
	}

	p.log.Info("schema fetched",
		slog.String("endpoint", p.client.BaseURL()),
		slog.Int("attributes", len(info.Attributes)),
		slog.Int64("duration.ms", t.ElapsedMs()))
	return finish(info, p.paths)
}
