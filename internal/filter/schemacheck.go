// internal/filter/schemacheck.go
package filter

import (
	"strings"

	"github.com/solatis/querybuilder/internal/types"
)

// ValidateAgainstSchema checks every filled-in field of forest against info:
// attributes must be published, literal values must fit the attribute's type,
// operators and connectors must be offered. A value naming a published
// attribute is a field reference and is not type checked. Blank fields are left to Validate.
// Returns a *ValidationError or nil.
func ValidateAgainstSchema(forest []*types.ConditionNode, info *types.SchemaInfo) error {
	dataTypes := make(map[string]string, len(info.Attributes))
	for _, attr := range info.Attributes {
		dataTypes[attr.Name] = attr.Type
	}

	var problems []Problem
	Walk(forest, func(node *types.ConditionNode, _ int) bool {
		if !isBlank(node.SelectedAttribute) {
			dataType, ok := dataTypes[node.SelectedAttribute]
			if !ok {
				problems = append(problems, Problem{NodeID: node.ID, Err: types.ErrUnknownAttribute})
			} else if value := node.SelectedValue; !isBlank(string(value)) && !isFieldReference(value, dataTypes) {
				if err := CheckValueType(value, dataType); err != nil {
					problems = append(problems, Problem{NodeID: node.ID, Err: err})
				}
			}
		}
		if !isBlank(node.SelectedOperator) && !info.HasOperator(node.SelectedOperator) {
			problems = append(problems, Problem{NodeID: node.ID, Err: types.ErrUnknownOperator})
		}
		for _, conn := range []string{node.SiblingConnector, node.ChildGroupConnector} {
			if !isBlank(conn) && !info.HasLogicalOperator(conn) {
				problems = append(problems, Problem{NodeID: node.ID, Err: types.ErrUnknownConnector})
				break
			}
		}
		return true
	})
	return asError(problems)
}

// ValidateProjectionAgainstSchema checks that every projected field is published.
func ValidateProjectionAgainstSchema(projection []string, info *types.SchemaInfo) error {
	attributes := make(map[string]bool, len(info.Attributes))
	for _, attr := range info.Attributes {
		attributes[attr.Name] = true
	}
	var problems []Problem
	for _, field := range projection {
		if !isBlank(field) && !attributes[field] {
			problems = append(problems, Problem{Err: types.ErrUnknownAttribute})
		}
	}
	return asError(problems)
}

// isFieldReference reports whether value names a published attribute.
func isFieldReference(value types.Value, dataTypes map[string]string) bool {
	_, ok := dataTypes[strings.TrimSpace(string(value))]
	return ok
}
