package collision

import (
	"fmt"

	"github.com/arloliu/cindex/errs"
)

// Tracker interns identifiers by hash and detects hash collisions.
// It keeps a hash-to-name map and the registration order of names so that
// owners can fall back to name-keyed lookups once a collision is detected.
type Tracker struct {
	names        map[uint64]string // Hash → name mapping for collision detection
	ordered      []string          // Registration order
	hasCollision bool              // Whether a collision has been detected
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:   make(map[uint64]string),
		ordered: make([]string, 0),
	}
}

// Track records name with its hash.
// Returns error if:
// - The name is empty (wraps errs.ErrInvalidInput)
// - The same name is tracked twice (errs.ErrDuplicateAlphabet)
//
// Hash collisions (different names, same hash) are not errors; the collision flag is set
// and the first name keeps ownership of the hash slot.
func (t *Tracker) Track(name string, hash uint64) error {
	if name == "" {
		return fmt.Errorf("%w: empty identifier", errs.ErrInvalidInput)
	}

	for _, existing := range t.ordered {
		if existing == name {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateAlphabet, name)
		}
	}

	if existing, exists := t.names[hash]; exists {
		if existing != name {
			t.hasCollision = true
		}
	} else {
		t.names[hash] = name
	}
	t.ordered = append(t.ordered, name)

	return nil
}

// Owner returns the name that owns the hash slot.
func (t *Tracker) Owner(hash uint64) (string, bool) {
	name, ok := t.names[hash]
	return name, ok
}

// HasCollision returns true if a collision has been detected.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in registration order.
func (t *Tracker) Names() []string {
	return t.ordered
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.ordered)
}

// Reset clears all tracked names and collision state.
func (t *Tracker) Reset() {
	clear(t.names)
	t.ordered = t.ordered[:0]
	t.hasCollision = false
}
