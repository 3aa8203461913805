package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/solatis/querybuilder/internal/logging"
	"github.com/solatis/querybuilder/internal/types"
)

// FileSink writes each request to <dir>/<name>.json.
type FileSink struct {
	dir  string
	name string
	log  *slog.Logger
}

func NewFileSink(dir, name string, log *slog.Logger) *FileSink {
	if log == nil {
		log = logging.Discard()
	}
	return &FileSink{dir: dir, name: name, log: log.With(slog.String("component", "sink.file"))}
}

// Path returns the file Send writes to.
func (s *FileSink) Path() string {
	name := strings.TrimSuffix(s.name, ".json")
	return filepath.Join(s.dir, name+".json")
}

// Send writes req and returns no rows. An existing file is replaced.
func (s *FileSink) Send(ctx context.Context, req types.RequestModel) ([]Row, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	if s.name == "" || strings.ContainsAny(s.name, `/\`) {
		return nil, fmt.Errorf("invalid export name %q", s.name)
	}

	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}

	// Readers never observe a partial export: write a temp file, then rename
	tmp, err := os.CreateTemp(s.dir, ".export-*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	s.log.Info("request exported", slog.String("path", s.Path()))
	return nil, nil
}
