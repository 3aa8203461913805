package schema

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/solatis/querybuilder/internal/filter"
	"github.com/solatis/querybuilder/internal/types"
)

//go:embed fixtures/schema.json
var fixtureSchema []byte

// MockProvider serves the embedded movie catalog.
type MockProvider struct {
	paths filter.PathNormalizer
}

func NewMockProvider(paths filter.PathNormalizer) *MockProvider {
	return &MockProvider{paths: paths}
}

// Fetch decodes a fresh copy of the fixture on every call.
func (p *MockProvider) Fetch(ctx context.Context) (*types.SchemaInfo, error) {
	var info types.SchemaInfo
	if err := json.Unmarshal(fixtureSchema, &info); err != nil {
		return nil, fmt.Errorf("failed to decode schema fixture: %w", err)
	}
	return finish(&info, p.paths)
}
