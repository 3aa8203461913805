// internal/filter/validate.go
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Save-time completeness validation.
 *
 * Every check runs eagerly over the whole forest; the caller gets one
 * ValidationError whose message is a single blocking sentence, while Problems
 * keeps the per-node detail and Unwrap exposes each distinct sentinel for
 * errors.Is.
 *
 * Rules (strict reading):
 *   - the forest has at least one condition
 *   - attribute, operator and value are all non-blank on every node
 *   - a node with children has a child-group connector, children validated recursively
 *   - every node except the last of its level has a sibling connector
 *   - ids are pairwise distinct across the forest
 *   - the projection has at least one non-blank field
 */

// Problem is one failed check, attached to the node it concerns.
// NodeID is empty for forest-level and projection problems.
type Problem struct {
	NodeID types.NodeID
	Err    error
}

// ValidationError aggregates every problem found in one pass.
type ValidationError struct {
	Problems []Problem
}

// Error returns a single message suitable for blocking a save.
func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "filter is invalid"
	}
	first := e.Problems[0].Err.Error()
	if len(e.Problems) == 1 {
		return fmt.Sprintf("filter is invalid: %s", first)
	}
	return fmt.Sprintf("filter is invalid: %s (and %d more problems)", first, len(e.Problems)-1)
}

// Unwrap returns each distinct sentinel once, in first-seen order.
func (e *ValidationError) Unwrap() []error {
	var errs []error
	for _, p := range e.Problems {
		seen := false
		for _, existing := range errs {
			if existing == p.Err {
				seen = true
				break
			}
		}
		if !seen {
			errs = append(errs, p.Err)
		}
	}
	return errs
}

// IsValid reports whether forest may be compiled.
func IsValid(forest []*types.ConditionNode) bool {
	return len(forestProblems(forest)) == 0
}

// ValidateForest checks forest and returns a *ValidationError or nil.
func ValidateForest(forest []*types.ConditionNode) error {
	return asError(forestProblems(forest))
}

// ValidateProjection checks that at least one output field is selected and none is blank.
func ValidateProjection(projection []string) error {
	return asError(projectionProblems(projection))
}

// Validate runs every save-time check over forest and projection.
func Validate(forest []*types.ConditionNode, projection []string) error {
	problems := forestProblems(forest)
	problems = append(problems, projectionProblems(projection)...)
	return asError(problems)
}

// IsValidationError reports whether err carries validation problems.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

func asError(problems []Problem) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// forestProblems collects every problem in forest, including duplicate ids.
func forestProblems(forest []*types.ConditionNode) []Problem {
	if len(forest) == 0 {
		return []Problem{{Err: types.ErrEmptyForest}}
	}
	problems := levelProblems(nil, forest)
	return append(problems, identityProblems(forest)...)
}

// levelProblems validates one sibling level and recurses into child groups.
func levelProblems(problems []Problem, level []*types.ConditionNode) []Problem {
	for i, node := range level {
		if isBlank(node.SelectedAttribute) || isBlank(node.SelectedOperator) || isBlank(string(node.SelectedValue)) {
			problems = append(problems, Problem{NodeID: node.ID, Err: types.ErrIncompleteCondition})
		}
		if i < len(level)-1 && isBlank(node.SiblingConnector) {
			problems = append(problems, Problem{NodeID: node.ID, Err: types.ErrMissingSiblingConnector})
		}
		if node.HasChildren() {
			if isBlank(node.ChildGroupConnector) {
				problems = append(problems, Problem{NodeID: node.ID, Err: types.ErrMissingGroupConnector})
			}
			problems = levelProblems(problems, node.Children)
		}
	}
	return problems
}

// identityProblems reports every id seen more than once.
func identityProblems(forest []*types.ConditionNode) []Problem {
	var problems []Problem
	seen := make(map[types.NodeID]int)
	Walk(forest, func(node *types.ConditionNode, _ int) bool {
		seen[node.ID]++
		if seen[node.ID] == 2 {
			problems = append(problems, Problem{NodeID: node.ID, Err: types.ErrIdentityCollision})
		}
		return true
	})
	return problems
}

func projectionProblems(projection []string) []Problem {
	if len(projection) == 0 {
		return []Problem{{Err: types.ErrEmptyProjection}}
	}
	for _, field := range projection {
		if isBlank(field) {
			return []Problem{{Err: types.ErrEmptyProjection}}
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
