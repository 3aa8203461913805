// internal/filter/tree.go
package filter

import (
	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Tree mutation primitives.
 *
 * Pure list operations over one sibling level. Routing a mutation to the right
 * level is the caller's job (Session does it through its id -> location index).
 *
 * Key functions:
 *   - CloneWithNewID: copy scalar fields, assign a fresh id
 *   - AddSibling: append a clone of a template, the last element, or a blank node
 *   - DeleteByID: rebuild a level without the matching node
 *
 * Clones never carry children. A parent owns its group exclusively, and a deep
 * copy would put every descendant id in the tree twice.
 */

// CloneWithNewID copies every scalar field of node and assigns a fresh id.
func CloneWithNewID(node *types.ConditionNode, ids types.IDAssigner) *types.ConditionNode {
	return &types.ConditionNode{
		ID:                  ids.NewID(),
		SelectedAttribute:   node.SelectedAttribute,
		SelectedOperator:    node.SelectedOperator,
		SelectedValue:       node.SelectedValue,
		SiblingConnector:    node.SiblingConnector,
		ChildGroupConnector: node.ChildGroupConnector,
	}
}

// NewBlankNode returns a node with a fresh id and nothing selected.
func NewBlankNode(ids types.IDAssigner) *types.ConditionNode {
	return &types.ConditionNode{ID: ids.NewID()}
}

// AddSibling appends a clone of template to list. A nil template clones the last
// element; an empty list with no template gets a blank node.
func AddSibling(list []*types.ConditionNode, template *types.ConditionNode, ids types.IDAssigner) []*types.ConditionNode {
	if template == nil && len(list) > 0 {
		template = list[len(list)-1]
	}
	if template == nil {
		return append(list, NewBlankNode(ids))
	}
	return append(list, CloneWithNewID(template, ids))
}

// DeleteByID returns list without the node whose id is target. Does not recurse
// into children. Zero matches returns list unchanged; more than one match means
// ids were reused upstream and returns ErrIdentityCollision with list untouched.
func DeleteByID(list []*types.ConditionNode, target types.NodeID) ([]*types.ConditionNode, error) {
	matches := 0
	for _, node := range list {
		if node.ID == target {
			matches++
		}
	}
	switch matches {
	case 0:
		return list, nil
	case 1:
	default:
		return list, types.ErrIdentityCollision
	}

	kept := make([]*types.ConditionNode, 0, len(list)-1)
	for _, node := range list {
		if node.ID != target {
			kept = append(kept, node)
		}
	}
	return kept, nil
}

// Walk visits every node depth-first in serialization order.
// depth is 0 for the forest's own members. Returning false stops descent into
// that node's children.
func Walk(forest []*types.ConditionNode, visit func(node *types.ConditionNode, depth int) bool) {
	walkDepth(forest, 0, visit)
}

func walkDepth(forest []*types.ConditionNode, depth int, visit func(*types.ConditionNode, int) bool) {
	for _, node := range forest {
		if visit(node, depth) {
			walkDepth(node.Children, depth+1, visit)
		}
	}
}
