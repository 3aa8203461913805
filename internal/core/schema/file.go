package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solatis/querybuilder/internal/filter"
	"github.com/solatis/querybuilder/internal/types"
)

// FileProvider reads a SchemaInfo from a JSON or YAML file.
// A JSON file may be the bare schema or a /properties response envelope.
type FileProvider struct {
	path  string
	paths filter.PathNormalizer
}

func NewFileProvider(path string, paths filter.PathNormalizer) *FileProvider {
	return &FileProvider{path: path, paths: paths}
}

func (p *FileProvider) Fetch(ctx context.Context) (*types.SchemaInfo, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, types.MaxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	if len(data) > types.MaxResponseBytes {
		return nil, fmt.Errorf("schema file %s exceeds %d bytes", p.path, types.MaxResponseBytes)
	}

	var info *types.SchemaInfo
	switch strings.ToLower(filepath.Ext(p.path)) {
	case ".yaml", ".yml":
		info = &types.SchemaInfo{}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(info); err != nil {
			return nil, fmt.Errorf("failed to parse YAML schema: %w", err)
		}
	default:
		info, err = decodeEnvelope(data)
		if err != nil {
			return nil, err
		}
	}
	return finish(info, p.paths)
}

// envelope is the /properties response. The service has shipped both keys.
type envelope struct {
	Status     string            `json:"status"`
	SchemaInfo *types.SchemaInfo `json:"schema_info"`
	Properties *types.SchemaInfo `json:"properties"`
}

// decodeEnvelope accepts {"schema_info": {...}}, {"properties": {...}} or a bare schema.
func decodeEnvelope(data []byte) (*types.SchemaInfo, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if env.Status != "" && env.Status != "success" {
		return nil, fmt.Errorf("schema request returned status %q", env.Status)
	}
	switch {
	case env.SchemaInfo != nil:
		return env.SchemaInfo, nil
	case env.Properties != nil:
		return env.Properties, nil
	}

	var info types.SchemaInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return &info, nil
}
