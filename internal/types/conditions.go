// internal/types/conditions.go
package types

/*
 * Domain types for the condition tree.
 *
 * ConditionNode is the mutable editing entity; ExportedCondition is the
 * immutable, normalized projection consumed by the serializer.
 *
 * Key types:
 *   - ConditionNode: one filter clause, its connectors and its child group
 *   - ExportedCondition: canonical-path copy built from a validated tree
 *
 * Ownership: a parent owns its Children exclusively. There are no back-pointers
 * and no node appears in two lists; the editing session keeps the id -> owner
 * index instead.
 */

// ConditionNode represents one filter condition under construction.
// Empty strings mean "not selected yet".
type ConditionNode struct {
	ID                  NodeID           `json:"id"`
	SelectedAttribute   string           `json:"selectedAttribute,omitempty"`   // readable field reference
	SelectedOperator    string           `json:"selectedOperator,omitempty"`    // schema operator label
	SelectedValue       Value            `json:"selectedValue,omitempty"`       // literal comparand or field reference
	SiblingConnector    string           `json:"siblingConnector,omitempty"`    // joins this node to the next sibling
	ChildGroupConnector string           `json:"childGroupConnector,omitempty"` // joins this node to its child group
	Children            []*ConditionNode `json:"children,omitempty"`
}

// HasChildren reports whether the node starts a child group.
func (n *ConditionNode) HasChildren() bool {
	return len(n.Children) > 0
}

// ExportedCondition is a validated condition with its attribute in canonical form.
// Produced fresh for each serialization; never mutated.
type ExportedCondition struct {
	AttributePath       string              `json:"attributePath"`
	Operator            string              `json:"operator"`
	Value               Value               `json:"value"`
	SiblingConnector    string              `json:"siblingConnector,omitempty"` // empty on the last sibling
	ChildGroupConnector string              `json:"childGroupConnector,omitempty"`
	Children            []ExportedCondition `json:"children,omitempty"`
}
