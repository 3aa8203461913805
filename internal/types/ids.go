package types

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDAssigner issues node identifiers. Every value returned must differ from all
// values previously returned by the same assigner for the process lifetime.
type IDAssigner interface {
	NewID() NodeID
}

// UUIDAssigner issues random (version 4) UUIDs rendered as text.
// 122 random bits make collisions a non-event for an editing session.
type UUIDAssigner struct{}

// NewID generates a random UUID node identifier.
// Panics if the system entropy source fails (uuid.Must); acceptable for ID generation.
func (UUIDAssigner) NewID() NodeID {
	return NodeID(uuid.Must(uuid.NewRandom()).String())
}

// SequenceAssigner issues monotonically increasing identifiers (node-1, node-2, ...).
// Deterministic output keeps test expectations and golden files stable.
type SequenceAssigner struct {
	next atomic.Uint64
}

// NewID returns the next identifier in the sequence.
func (s *SequenceAssigner) NewID() NodeID {
	return NodeID(fmt.Sprintf("node-%d", s.next.Add(1)))
}
