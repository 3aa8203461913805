package sink

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/solatis/querybuilder/internal/filter"
	"github.com/solatis/querybuilder/internal/logging"
	"github.com/solatis/querybuilder/internal/types"
)

//go:embed fixtures/results.json
var fixtureResults []byte

// MockSink answers every request with the embedded result set, projected to
// the requested paths. Filters are not applied.
type MockSink struct {
	log *slog.Logger
}

func NewMockSink(log *slog.Logger) *MockSink {
	if log == nil {
		log = logging.Discard()
	}
	return &MockSink{log: log.With(slog.String("component", "sink.mock"))}
}

func (s *MockSink) Send(ctx context.Context, req types.RequestModel) ([]Row, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var records []any
	if err := json.Unmarshal(fixtureResults, &records); err != nil {
		return nil, fmt.Errorf("failed to decode result fixture: %w", err)
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row, err := project(record, req.Projection)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	s.log.Debug("answered from fixture", slog.Int("rows", len(rows)))
	return rows, nil
}

// project keeps the fields named by paths. Paths missing from the record are
// omitted from the row.
func project(record any, paths []string) (Row, error) {
	row := make(Row, len(paths))
	for _, path := range paths {
		value, err := filter.Resolve(path, record)
		switch {
		case errors.Is(err, types.ErrFieldNotFound):
			continue
		case err != nil:
			return nil, fmt.Errorf("failed to project %s: %w", path, err)
		}
		row[path] = value
	}
	return row, nil
}
