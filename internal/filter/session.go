// internal/filter/session.go
package filter

import (
	"fmt"

	"github.com/solatis/querybuilder/internal/types"
)

/*
 * Editing session over one condition forest.
 *
 * Session owns the root forest and an id -> location index (the node and its
 * parent, nil for roots). Every mutation is routed through the index, so add,
 * delete and field updates locate their node and sibling level without walking
 * the tree.
 *
 * Single writer: a Session is driven by one editing loop and applies each
 * mutation before the next Submit. It holds no locks and is not safe for
 * concurrent use.
 *
 * Identity: ids come from the injected IDAssigner. Registering an id that is
 * already indexed returns ErrIdentityCollision and leaves the tree unchanged.
 */

// Session is the mutable state of one filter being edited.
type Session struct {
	ids        types.IDAssigner
	paths      PathNormalizer
	roots      []*types.ConditionNode
	index      map[types.NodeID]location
	projection []string
}

// location records where an indexed node lives.
type location struct {
	node   *types.ConditionNode
	parent *types.ConditionNode // nil for roots
}

// NewSession creates an empty session. A nil assigner selects UUIDAssigner.
func NewSession(ids types.IDAssigner, paths PathNormalizer) *Session {
	if ids == nil {
		ids = types.UUIDAssigner{}
	}
	return &Session{
		ids:   ids,
		paths: paths,
		index: make(map[types.NodeID]location),
	}
}

// Roots returns the top-level forest. Callers must not modify the slice.
func (s *Session) Roots() []*types.ConditionNode {
	return s.roots
}

// Len returns the number of nodes in the session, at every depth.
func (s *Session) Len() int {
	return len(s.index)
}

// Node returns the node with id.
func (s *Session) Node(id types.NodeID) (*types.ConditionNode, error) {
	loc, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrNodeNotFound, id)
	}
	return loc.node, nil
}

// AddCondition appends a sibling at the level below parent; an empty parent
// targets the root level. The new node clones the level's last node, or is blank
// when the level is empty.
func (s *Session) AddCondition(parent types.NodeID) (*types.ConditionNode, error) {
	if parent == "" {
		return s.appendTo(nil, nil)
	}
	node, err := s.Node(parent)
	if err != nil {
		return nil, err
	}
	return s.appendTo(node, nil)
}

// AddChild appends to id's child group, starting the group if it is empty.
func (s *Session) AddChild(id types.NodeID) (*types.ConditionNode, error) {
	return s.AddCondition(id)
}

// appendTo adds a sibling to parent's children (roots when parent is nil).
func (s *Session) appendTo(parent *types.ConditionNode, template *types.ConditionNode) (*types.ConditionNode, error) {
	level := s.roots
	if parent != nil {
		level = parent.Children
	}
	level = AddSibling(level, template, s.ids)
	added := level[len(level)-1]
	if _, exists := s.index[added.ID]; exists {
		return nil, fmt.Errorf("%w: %s", types.ErrIdentityCollision, added.ID)
	}

	s.index[added.ID] = location{node: added, parent: parent}
	if parent != nil {
		parent.Children = level
	} else {
		s.roots = level
	}
	return added, nil
}

// Delete removes id and its whole subtree from the level that owns it.
func (s *Session) Delete(id types.NodeID) error {
	loc, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrNodeNotFound, id)
	}

	parent := loc.parent
	level := s.roots
	if parent != nil {
		level = parent.Children
	}

	kept, err := DeleteByID(level, id)
	if err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}
	if parent != nil {
		parent.Children = kept
	} else {
		s.roots = kept
	}

	Walk([]*types.ConditionNode{loc.node}, func(n *types.ConditionNode, _ int) bool {
		delete(s.index, n.ID)
		return true
	})
	return nil
}

// SetAttribute sets the readable field reference of id.
func (s *Session) SetAttribute(id types.NodeID, attribute string) error {
	return s.update(id, func(n *types.ConditionNode) { n.SelectedAttribute = attribute })
}

// SetOperator sets the comparison operator label of id.
func (s *Session) SetOperator(id types.NodeID, operator string) error {
	return s.update(id, func(n *types.ConditionNode) { n.SelectedOperator = operator })
}

// SetValue sets the literal comparand of id.
func (s *Session) SetValue(id types.NodeID, value types.Value) error {
	return s.update(id, func(n *types.ConditionNode) { n.SelectedValue = value })
}

// SetSiblingConnector sets the connector joining id to its next sibling.
func (s *Session) SetSiblingConnector(id types.NodeID, connector string) error {
	return s.update(id, func(n *types.ConditionNode) { n.SiblingConnector = connector })
}

// SetChildGroupConnector sets the connector joining id to its child group.
func (s *Session) SetChildGroupConnector(id types.NodeID, connector string) error {
	return s.update(id, func(n *types.ConditionNode) { n.ChildGroupConnector = connector })
}

// SetProjection replaces the readable list of output fields.
func (s *Session) SetProjection(fields []string) {
	s.projection = append([]string(nil), fields...)
}

// Projection returns the readable list of output fields.
func (s *Session) Projection() []string {
	return s.projection
}

// Submit validates the session and compiles it into a request.
func (s *Session) Submit() (types.RequestModel, error) {
	return Compile(s.roots, s.projection, s.paths)
}

// update applies set to id without validation.
func (s *Session) update(id types.NodeID, set func(*types.ConditionNode)) error {
	node, err := s.Node(id)
	if err != nil {
		return err
	}
	set(node)
	return nil
}
