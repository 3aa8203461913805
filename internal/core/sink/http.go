package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/solatis/querybuilder/internal/core/endpoint"
	"github.com/solatis/querybuilder/internal/logging"
	"github.com/solatis/querybuilder/internal/types"
)

// HTTPSink posts requests to <endpoint>/search.
type HTTPSink struct {
	client *endpoint.Client
	log    *slog.Logger
}

func NewHTTPSink(client *endpoint.Client, log *slog.Logger) *HTTPSink {
	if log == nil {
		log = logging.Discard()
	}
	return &HTTPSink{client: client, log: log.With(slog.String("component", "sink.http"))}
}

// Send posts req and decodes the result rows.
func (s *HTTPSink) Send(ctx context.Context, req types.RequestModel) ([]Row, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	t := logging.StartTimed()
	var raw json.RawMessage
	if err := s.client.PostJSON(ctx, "/search", req, &raw); err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	rows, err := decodeSearchResponse(raw)
	if err != nil {
		return nil, err
	}

	s.log.Info("search completed",
		slog.String("filters", req.Filters),
		slog.Int("rows", len(rows)),
		slog.Int64("duration.ms", t.ElapsedMs()))
	return rows, nil
}

// decodeSearchResponse unwraps the service's reply. The service encodes its
// {"search_result": [...]} object as a JSON string before sending it; a bare
// object or array is accepted as well.
func decodeSearchResponse(raw json.RawMessage) ([]Row, error) {
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		raw = json.RawMessage(encoded)
	}

	var wrapped struct {
		SearchResult *[]Row `json:"search_result"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.SearchResult != nil {
		return *wrapped.SearchResult, nil
	}

	var rows []Row
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("unexpected search response: %w", err)
	}
	return rows, nil
}
