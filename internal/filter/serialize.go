// internal/filter/serialize.go
package filter

import (
	"regexp"
	"strings"

	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Serialization to the search service's boolean expression grammar.
 *
 * Per condition, in forest order:
 *
 *   <canonicalPath> <backendOperator> <value>
 *     [ <childGroupConnector> (<children>) ]   when children exist
 *     [ <siblingConnector> ]                   when not last
 *
 * Child groups are always parenthesized, so precedence never depends on depth.
 * Runs of spaces collapse to one and the result is trimmed, at every level.
 * Values are emitted verbatim; quoting belongs to the endpoint's parser.
 */

var multiSpace = regexp.MustCompile(` {2,}`)

// Serialize compiles an exported forest into the filter string.
// Deterministic: identical input yields byte-identical output.
func Serialize(forest []types.ExportedCondition) string {
	var b strings.Builder
	for i, cond := range forest {
		b.WriteString(cond.AttributePath)
		b.WriteByte(' ')
		b.WriteString(TranslateOperator(cond.Operator))
		b.WriteByte(' ')
		b.WriteString(cond.Value.String())

		if len(cond.Children) > 0 {
			b.WriteByte(' ')
			b.WriteString(cond.ChildGroupConnector)
			b.WriteString(" (")
			b.WriteString(Serialize(cond.Children))
			b.WriteByte(')')
		}

		if i < len(forest)-1 {
			b.WriteByte(' ')
			b.WriteString(cond.SiblingConnector)
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(multiSpace.ReplaceAllString(b.String(), " "))
}

// Compile validates forest and projection, then exports and serializes them into
// a request. Returns a *ValidationError when any check fails.
func Compile(forest []*types.ConditionNode, projection []string, paths PathNormalizer) (types.RequestModel, error) {
	if err := Validate(forest, projection); err != nil {
		return types.RequestModel{}, err
	}
	return types.RequestModel{
		Projection: paths.CanonicalProjection(projection),
		Filters:    Serialize(Export(forest, paths)),
	}, nil
}
