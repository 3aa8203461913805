// Package sink delivers a compiled RequestModel.
//
// HTTPSink posts it to the search service, FileSink exports it for later use
// and MockSink answers from an embedded result set. Sinks never look inside
// the filter string except to refuse one carrying an untranslated operator.
package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/solatis/querybuilder/internal/core/config"
	"github.com/solatis/querybuilder/internal/core/endpoint"
	"github.com/solatis/querybuilder/internal/filter"
	"github.com/solatis/querybuilder/internal/types"
)

// Row is one search result keyed by canonical path.
type Row = map[string]any

// Sink hands a request to its destination and returns any result rows.
type Sink interface {
	Send(ctx context.Context, req types.RequestModel) ([]Row, error)
}

// New returns the sink for cfg: MockSink for mocked sessions, HTTPSink otherwise.
func New(cfg *config.SessionConfig, log *slog.Logger) Sink {
	if cfg.Mocked {
		return NewMockSink(log)
	}
	return NewHTTPSink(endpoint.NewClient(cfg.EndpointURL, cfg.RequestTimeout, log), log)
}

// checkRequest refuses requests the search service cannot parse.
func checkRequest(req types.RequestModel) error {
	if len(req.Projection) == 0 {
		return types.ErrEmptyProjection
	}
	if filter.HasUnknownOperator(req.Filters) {
		return fmt.Errorf("%w: filters %q", types.ErrUnknownOperator, req.Filters)
	}
	return nil
}
