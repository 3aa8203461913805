// internal/filter/export.go
package filter

import (
	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Export: ConditionNode tree -> ExportedCondition tree.
 *
 * Builds the immutable projection the serializer consumes. Attribute references
 * are normalized to canonical paths here; values pass through as typed, since a
 * value may itself be a field reference the search service resolves.
 *
 * The last sibling of each level exports an empty sibling connector regardless
 * of what the editor left on it.
 */

// Export converts a validated forest to its serializable form.
func Export(forest []*types.ConditionNode, paths PathNormalizer) []types.ExportedCondition {
	exported := make([]types.ExportedCondition, len(forest))
	for i, node := range forest {
		exported[i] = exportNode(node, paths, i == len(forest)-1)
	}
	return exported
}

func exportNode(node *types.ConditionNode, paths PathNormalizer, isLast bool) types.ExportedCondition {
	cond := types.ExportedCondition{
		AttributePath:       paths.ToCanonicalPath(node.SelectedAttribute),
		Operator:            node.SelectedOperator,
		Value:               node.SelectedValue,
		ChildGroupConnector: node.ChildGroupConnector,
	}
	if !isLast {
		cond.SiblingConnector = node.SiblingConnector
	}
	if node.HasChildren() {
		cond.Children = Export(node.Children, paths)
	}
	return cond
}

// UnknownOperatorLabels returns, in serialization order, every operator label in
// forest that has no backend translation.
func UnknownOperatorLabels(forest []types.ExportedCondition) []string {
	var labels []string
	for _, cond := range forest {
		if TranslateOperator(cond.Operator) == UnknownOperator {
			labels = append(labels, cond.Operator)
		}
		labels = append(labels, UnknownOperatorLabels(cond.Children)...)
	}
	return labels
}
