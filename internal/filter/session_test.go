package filter

import (
	"errors"
	"testing"

	"github.com/solatis/querybuilder/internal/types"
)

// fixedAssigner always returns the same id.
type fixedAssigner struct{ id types.NodeID }

func (f fixedAssigner) NewID() types.NodeID { return f.id }

func newTestSession() *Session {
	return NewSession(&types.SequenceAssigner{}, PathNormalizer{})
}

func TestSession_AddCondition(t *testing.T) {
	s := newTestSession()

	first, err := s.AddCondition("")
	if err != nil {
		t.Fatalf("AddCondition() error = %v, want nil", err)
	}
	if first.SelectedAttribute != "" {
		t.Errorf("AddCondition() on empty forest = %+v, want blank node", first)
	}
	if err := s.SetAttribute(first.ID, "Name in Client"); err != nil {
		t.Fatalf("SetAttribute() error = %v, want nil", err)
	}

	second, err := s.AddCondition("")
	if err != nil {
		t.Fatalf("AddCondition() error = %v, want nil", err)
	}
	if second.SelectedAttribute != "Name in Client" {
		t.Errorf("AddCondition() attribute = %q, want clone of last sibling", second.SelectedAttribute)
	}
	if second.ID == first.ID {
		t.Errorf("AddCondition() reused id %q", first.ID)
	}
	if len(s.Roots()) != 2 || s.Len() != 2 {
		t.Errorf("Roots() = %d, Len() = %d, want 2 and 2", len(s.Roots()), s.Len())
	}
}

func TestSession_AddChild(t *testing.T) {
	s := newTestSession()
	root, _ := s.AddCondition("")

	child, err := s.AddChild(root.ID)
	if err != nil {
		t.Fatalf("AddChild() error = %v, want nil", err)
	}
	if len(root.Children) != 1 || root.Children[0] != child {
		t.Fatalf("AddChild() did not append to the parent's group")
	}
	if _, err := s.AddChild(child.ID); err != nil {
		t.Fatalf("AddChild() on child error = %v, want nil", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	if _, err := s.AddChild("missing"); !errors.Is(err, types.ErrNodeNotFound) {
		t.Errorf("AddChild(missing) error = %v, want ErrNodeNotFound", err)
	}
}

func TestSession_AddChildStartsBlankThenClones(t *testing.T) {
	s := newTestSession()
	root, _ := s.AddCondition("")
	_ = s.SetAttribute(root.ID, "title in movie in movies")
	_ = s.SetChildGroupConnector(root.ID, LogicalAnd)

	first, err := s.AddChild(root.ID)
	if err != nil {
		t.Fatalf("AddChild() error = %v, want nil", err)
	}
	if first.SelectedAttribute != "" || first.ChildGroupConnector != "" {
		t.Errorf("first child = %+v, want blank", first)
	}

	_ = s.SetAttribute(first.ID, "runtime in movie in movies")
	second, err := s.AddChild(root.ID)
	if err != nil {
		t.Fatalf("AddChild() error = %v, want nil", err)
	}
	if second.SelectedAttribute != "runtime in movie in movies" || second.ID == first.ID {
		t.Errorf("second child = %+v, want clone of first child with a new id", second)
	}
}

func TestSession_DeleteRemovesSubtree(t *testing.T) {
	s := newTestSession()
	a, _ := s.AddCondition("")
	b, _ := s.AddCondition("")
	child, _ := s.AddChild(a.ID)
	grandchild, _ := s.AddChild(child.ID)

	if err := s.Delete(a.ID); err != nil {
		t.Fatalf("Delete() error = %v, want nil", err)
	}

	if len(s.Roots()) != 1 || s.Roots()[0].ID != b.ID {
		t.Fatalf("Roots() after delete = %v, want only %q", nodeIDs(s.Roots()), b.ID)
	}
	for _, id := range []types.NodeID{a.ID, child.ID, grandchild.ID} {
		if _, err := s.Node(id); !errors.Is(err, types.ErrNodeNotFound) {
			t.Errorf("Node(%q) error = %v, want ErrNodeNotFound", id, err)
		}
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSession_DeleteNestedKeepsSiblings(t *testing.T) {
	s := newTestSession()
	root, _ := s.AddCondition("")
	c1, _ := s.AddChild(root.ID)
	c2, _ := s.AddChild(root.ID)
	c3, _ := s.AddChild(root.ID)

	if err := s.Delete(c2.ID); err != nil {
		t.Fatalf("Delete() error = %v, want nil", err)
	}
	got := nodeIDs(root.Children)
	if len(got) != 2 || got[0] != c1.ID || got[1] != c3.ID {
		t.Errorf("Children after delete = %v, want [%s %s]", got, c1.ID, c3.ID)
	}

	if err := s.Delete(c2.ID); !errors.Is(err, types.ErrNodeNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNodeNotFound", err)
	}
}

func TestSession_IdentityCollision(t *testing.T) {
	s := NewSession(fixedAssigner{id: "same"}, PathNormalizer{})
	if _, err := s.AddCondition(""); err != nil {
		t.Fatalf("AddCondition() error = %v, want nil", err)
	}

	_, err := s.AddCondition("")
	if !errors.Is(err, types.ErrIdentityCollision) {
		t.Fatalf("AddCondition() error = %v, want ErrIdentityCollision", err)
	}
	if len(s.Roots()) != 1 {
		t.Errorf("Roots() = %d after collision, want tree unchanged", len(s.Roots()))
	}
}

func TestSession_Submit(t *testing.T) {
	s := newTestSession()

	if _, err := s.Submit(); !errors.Is(err, types.ErrEmptyForest) {
		t.Fatalf("Submit() on empty session error = %v, want ErrEmptyForest", err)
	}

	a, _ := s.AddCondition("")
	steps := []error{
		s.SetAttribute(a.ID, "Name in Client"),
		s.SetOperator(a.ID, OpEqualTo),
		s.SetValue(a.ID, "Ana"),
		s.SetChildGroupConnector(a.ID, "and"),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("step %d error = %v, want nil", i, err)
		}
	}
	child, _ := s.AddChild(a.ID)
	_ = s.SetAttribute(child.ID, "Age")
	_ = s.SetOperator(child.ID, OpGreaterThan)
	_ = s.SetValue(child.ID, "30")
	s.SetProjection([]string{"Name in Client"})

	req, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v, want nil", err)
	}
	if req.Filters != "Client.Name eq Ana and (Age gt 30)" {
		t.Errorf("Submit() Filters = %q, want %q", req.Filters, "Client.Name eq Ana and (Age gt 30)")
	}
	if len(req.Projection) != 1 || req.Projection[0] != "Client.Name" {
		t.Errorf("Submit() Projection = %v, want [Client.Name]", req.Projection)
	}
}

func TestSession_SubmitBlocksIncomplete(t *testing.T) {
	s := newTestSession()
	a, _ := s.AddCondition("")
	_ = s.SetAttribute(a.ID, "Name")
	_ = s.SetOperator(a.ID, OpEqualTo)
	s.SetProjection([]string{"Name"})

	_, err := s.Submit()
	if !errors.Is(err, types.ErrIncompleteCondition) {
		t.Fatalf("Submit() error = %v, want ErrIncompleteCondition", err)
	}
}

func TestSession_SettersOnMissingNode(t *testing.T) {
	s := newTestSession()
	if err := s.SetValue("nope", "1"); !errors.Is(err, types.ErrNodeNotFound) {
		t.Errorf("SetValue() error = %v, want ErrNodeNotFound", err)
	}
	if err := s.SetSiblingConnector("nope", "AND"); !errors.Is(err, types.ErrNodeNotFound) {
		t.Errorf("SetSiblingConnector() error = %v, want ErrNodeNotFound", err)
	}
}
