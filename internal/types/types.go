// Package types provides domain models shared across querybuilder components.
//
// Condition-tree types (conditions.go) and schema types (schema.go) carry no
// behavior beyond encoding; mutation, validation and serialization live in
// internal/filter. ID utilities in ids.go import uuid and are isolated so the
// model stays usable with any IDAssigner.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NodeID identifies a ConditionNode for its entire lifetime.
// String alias enables type safety while maintaining JSON string serialization.
type NodeID string

// Value is the literal comparand of a condition, kept exactly as typed.
// It may be a number, free text or another field reference; quoting is the
// search endpoint's concern, so the text passes through untouched.
type Value string

// UnmarshalJSON implements json.Unmarshaler.
// Accepts a JSON string or number; numbers keep their literal text (30 stays "30", 1e3 stays "1e3").
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value must be a string or number: %w", err)
	}
	*v = Value(n.String())
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
// Any scalar is taken verbatim so YAML drafts keep numeric literals as written.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: value must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*v = ""
		return nil
	}
	*v = Value(node.Value)
	return nil
}

// String returns the literal text.
func (v Value) String() string {
	return string(v)
}

// RequestModel is the payload handed to a request sink.
// Projection holds canonical paths; Filters holds the serialized condition forest.
type RequestModel struct {
	Projection []string `json:"projection"`
	Filters    string   `json:"filters"`
}

// Limits applied to collaborator input.
const (
	// MaxResponseBytes caps search and schema responses read from an endpoint.
	// 32MB bounds memory for a result page without truncating realistic payloads.
	MaxResponseBytes = 32 << 20

	// MaxDraftBytes caps draft files loaded from disk.
	MaxDraftBytes = 1 << 20

	// MaxPathDepth prevents runaway recursion when resolving canonical paths in result rows.
	// 16 levels covers any realistic chain of embedded objects.
	MaxPathDepth = 16
)
