package alphabet

import (
	"fmt"

	"github.com/arloliu/cindex/errs"
	"github.com/arloliu/cindex/internal/collision"
	"github.com/arloliu/cindex/internal/hash"
)

const (
	// SimpleTextID identifies the default text alphabet: A-Z plus space, case-insensitive.
	SimpleTextID = "SIMPLE_TEXT_A_Z_SPACE"
	// SimpleTextRaw is the raw definition of the default alphabet. It is also the first
	// entry of the default reference catalog.
	SimpleTextRaw = "ABCDEFGHIJKLMNOPQRSTUVWXYZ "

	// ProgrammerTextID identifies the case-sensitive programmer character set.
	ProgrammerTextID = "PROGRAMMER_TEXT"
	// ProgrammerTextRaw is the raw definition of the programmer character set.
	ProgrammerTextRaw = " \n\t\rabcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
		"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~←↑→↓↔∑√≈≠≤≥÷±∞€₹₽£¥₩" +
		"¡¢£¤¥¦§¨©ª«¬®¯°±²³´µ¶·¸¹º»¼½¾¿ÀÁÂÃÄÅÆÇÈÉÊËÌÍÎÏÐÑÒÓÔÕÖ×ØÙÚÛÜÝÞßàáâãäåæçèéêëìíîïðñòóôõö÷øùúûüýþÿ"
)

// Definition describes an alphabet to be built by a Registry.
type Definition struct {
	ID       string
	Raw      string
	FoldCase bool
}

// Builtins returns the built-in alphabet definitions. The first one is the default.
func Builtins() []Definition {
	return []Definition{
		{ID: SimpleTextID, Raw: SimpleTextRaw, FoldCase: true},
		{ID: ProgrammerTextID, Raw: ProgrammerTextRaw, FoldCase: false},
	}
}

// Registry resolves alphabet identifiers to alphabets.
//
// A Registry is constructed explicitly and passed to the components that need it; there is
// no global alphabet state. Identifiers are interned by xxHash64; lookups use the hash slot
// unless a collision was detected during registration, in which case they fall back to the
// name-keyed map.
//
// Thread Safety: Register must not be called concurrently with other methods. Once fully
// populated, a Registry is safe for concurrent reads.
type Registry struct {
	byHash    map[uint64]*Alphabet
	byName    map[string]*Alphabet
	tracker   *collision.Tracker
	defaultID string
}

// NewRegistry builds a registry from definitions. The first definition becomes the default.
//
// Returns:
//   - *Registry: The populated registry
//   - error: errs.ErrInvalidInput when no definition is given, or any New/Register error
func NewRegistry(defs ...Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: registry needs at least one alphabet", errs.ErrInvalidInput)
	}

	r := &Registry{
		byHash:  make(map[uint64]*Alphabet, len(defs)),
		byName:  make(map[string]*Alphabet, len(defs)),
		tracker: collision.NewTracker(),
	}

	for _, def := range defs {
		a, err := New(def.ID, def.Raw, def.FoldCase)
		if err != nil {
			return nil, err
		}
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	r.defaultID = defs[0].ID

	return r, nil
}

// NewDefaultRegistry builds a registry holding the built-in alphabets.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(Builtins()...)
	if err != nil {
		panic(fmt.Sprintf("built-in alphabets are invalid: %v", err))
	}

	return r
}

// Register adds an alphabet to the registry.
func (r *Registry) Register(a *Alphabet) error {
	h := hash.ID(a.ID())
	if err := r.tracker.Track(a.ID(), h); err != nil {
		return err
	}

	r.byName[a.ID()] = a
	if owner, _ := r.tracker.Owner(h); owner == a.ID() {
		r.byHash[h] = a
	}
	if r.defaultID == "" {
		r.defaultID = a.ID()
	}

	return nil
}

// Get resolves an alphabet by id.
//
// Returns errs.ErrUnsupportedModality when the id is unknown.
func (r *Registry) Get(id string) (*Alphabet, error) {
	if !r.tracker.HasCollision() {
		if a, ok := r.byHash[hash.ID(id)]; ok && a.ID() == id {
			return a, nil
		}
	} else if a, ok := r.byName[id]; ok {
		return a, nil
	}

	return nil, fmt.Errorf("%w: unknown alphabet %q", errs.ErrUnsupportedModality, id)
}

// Default returns the default text alphabet.
func (r *Registry) Default() *Alphabet {
	return r.byName[r.defaultID]
}

// DefaultID returns the identifier of the default text alphabet.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// Resolve returns the alphabet for id, or the default alphabet when id is empty.
func (r *Registry) Resolve(id string) (*Alphabet, error) {
	if id == "" {
		return r.Default(), nil
	}

	return r.Get(id)
}

// IDs returns the registered identifiers in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.tracker.Names()...)
}
