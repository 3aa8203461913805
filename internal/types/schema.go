package types

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Attribute data types the search service publishes.
const (
	DataTypeInteger = "Integer"
	DataTypeString  = "String"
)

// AttributeDescriptor describes one attribute a condition can filter on.
// Name is the readable field reference shown to the user.
type AttributeDescriptor struct {
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`
	Subset int    `json:"subset" yaml:"subset"` // index into SchemaInfo.Subsets
}

// UnmarshalJSON implements json.Unmarshaler.
// Accepts the search service's data_type/subset_id spelling alongside type/subset.
func (a *AttributeDescriptor) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		DataType string `json:"data_type"`
		Subset   *int   `json:"subset"`
		SubsetID *int   `json:"subset_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Name = raw.Name
	a.Type = raw.Type
	if a.Type == "" {
		a.Type = raw.DataType
	}
	switch {
	case raw.Subset != nil:
		a.Subset = *raw.Subset
	case raw.SubsetID != nil:
		a.Subset = *raw.SubsetID
	default:
		a.Subset = 0
	}
	return nil
}

// SchemaInfo is the schema a session edits against, fetched once per session.
type SchemaInfo struct {
	Attributes       []AttributeDescriptor `json:"attributes" yaml:"attributes"`
	Subsets          [][]int               `json:"subsets" yaml:"subsets"` // subset id -> attribute indices
	Operators        []string              `json:"operators" yaml:"operators"`
	LogicalOperators []string              `json:"logical_operators" yaml:"logical_operators"`
}

// AttributeNames returns attribute names in schema order.
func (s *SchemaInfo) AttributeNames() []string {
	names := make([]string, len(s.Attributes))
	for i, attr := range s.Attributes {
		names[i] = attr.Name
	}
	return names
}

// SubsetAttributes resolves the attributes nested together in subset id.
// Returns nil for an unknown subset; out-of-range indices are skipped.
func (s *SchemaInfo) SubsetAttributes(id int) []AttributeDescriptor {
	if id < 0 || id >= len(s.Subsets) {
		return nil
	}
	attrs := make([]AttributeDescriptor, 0, len(s.Subsets[id]))
	for _, idx := range s.Subsets[id] {
		if idx >= 0 && idx < len(s.Attributes) {
			attrs = append(attrs, s.Attributes[idx])
		}
	}
	return attrs
}

// HasOperator reports whether label is one of the schema's comparison operators.
func (s *SchemaInfo) HasOperator(label string) bool {
	return slices.Contains(s.Operators, label)
}

// HasLogicalOperator reports whether label is one of the schema's logical connectors.
func (s *SchemaInfo) HasLogicalOperator(label string) bool {
	return slices.Contains(s.LogicalOperators, label)
}

// Validate checks that subset membership and attribute subset ids are in range.
func (s *SchemaInfo) Validate() error {
	for id, members := range s.Subsets {
		for _, idx := range members {
			if idx < 0 || idx >= len(s.Attributes) {
				return fmt.Errorf("subset %d references attribute %d, schema has %d attributes", id, idx, len(s.Attributes))
			}
		}
	}
	if len(s.Subsets) == 0 {
		return nil
	}
	for _, attr := range s.Attributes {
		if attr.Subset < 0 || attr.Subset >= len(s.Subsets) {
			return fmt.Errorf("attribute %q references subset %d, schema has %d subsets", attr.Name, attr.Subset, len(s.Subsets))
		}
	}
	return nil
}
