// internal/filter/draft.go
package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Drafts: a forest written by hand (JSON or YAML) instead of clicked together.
 *
 * A draft carries no ids. Session.Load replays it through the same mutator the
 * editor uses, so every node gets a fresh id from the session's assigner and
 * the index stays consistent.
 *
 * Example (YAML):
 *
 *   projection: ["title in movie in movies"]
 *   conditions:
 *     - attribute: runtime in movie in movies
 *       operator: GreaterThan
 *       value: 200
 *       groupConnector: AND
 *       children:
 *         - {attribute: year in movie in movies, operator: LessThan, value: 2000}
 */

// Draft is a serialized editing session.
type Draft struct {
	Projection []string         `json:"projection" yaml:"projection"`
	Conditions []DraftCondition `json:"conditions" yaml:"conditions"`
}

// DraftCondition mirrors ConditionNode without the id.
type DraftCondition struct {
	Attribute      string           `json:"attribute" yaml:"attribute"`
	Operator       string           `json:"operator" yaml:"operator"`
	Value          types.Value      `json:"value" yaml:"value"`
	Connector      string           `json:"connector,omitempty" yaml:"connector,omitempty"`
	GroupConnector string           `json:"groupConnector,omitempty" yaml:"groupConnector,omitempty"`
	Children       []DraftCondition `json:"children,omitempty" yaml:"children,omitempty"`
}

// Draft formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// LoadDraft reads a draft file; the extension selects the format (.yaml/.yml, else JSON).
func LoadDraft(path string) (Draft, error) {
	f, err := os.Open(path)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to open draft: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, types.MaxDraftBytes+1))
	if err != nil {
		return Draft{}, fmt.Errorf("failed to read draft: %w", err)
	}
	if len(data) > types.MaxDraftBytes {
		return Draft{}, fmt.Errorf("draft %s exceeds %d bytes", path, types.MaxDraftBytes)
	}

	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}
	return DecodeDraft(data, format)
}

// DecodeDraft parses data in the given format. Unknown fields are rejected.
func DecodeDraft(data []byte, format string) (Draft, error) {
	var d Draft
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return Draft{}, fmt.Errorf("failed to parse JSON draft: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && err != io.EOF {
			return Draft{}, fmt.Errorf("failed to parse YAML draft: %w", err)
		}
	default:
		return Draft{}, fmt.Errorf("unknown draft format %q", format)
	}
	return d, nil
}

// Load appends the draft's conditions to the root level and replaces the projection.
func (s *Session) Load(d Draft) error {
	if err := s.loadLevel(nil, d.Conditions); err != nil {
		return err
	}
	s.SetProjection(d.Projection)
	return nil
}

func (s *Session) loadLevel(parent *types.ConditionNode, conds []DraftCondition) error {
	for _, c := range conds {
		node, err := s.appendTo(parent, &types.ConditionNode{})
		if err != nil {
			return err
		}
		node.SelectedAttribute = c.Attribute
		node.SelectedOperator = c.Operator
		node.SelectedValue = c.Value
		node.SiblingConnector = c.Connector
		node.ChildGroupConnector = c.GroupConnector
		if err := s.loadLevel(node, c.Children); err != nil {
			return err
		}
	}
	return nil
}

// Draft captures the session as a draft, dropping ids.
func (s *Session) Draft() Draft {
	return Draft{
		Projection: append([]string(nil), s.projection...),
		Conditions: draftLevel(s.roots),
	}
}

func draftLevel(level []*types.ConditionNode) []DraftCondition {
	if len(level) == 0 {
		return nil
	}
	out := make([]DraftCondition, len(level))
	for i, n := range level {
		out[i] = DraftCondition{
			Attribute:      n.SelectedAttribute,
			Operator:       n.SelectedOperator,
			Value:          n.SelectedValue,
			Connector:      n.SiblingConnector,
			GroupConnector: n.ChildGroupConnector,
			Children:       draftLevel(n.Children),
		}
	}
	return out
}
