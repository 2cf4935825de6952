// Package registry binds node types to the names they carry in serialized
// documents.
//
// Bindings are one-to-one: a type has at most one name and a name denotes
// at most one type. There is no implicit naming; every type that is
// written or read must be registered first.
package registry

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/tidwall/btree"

	"github.com/sweble/parser-toolkit/node"
)

// ContentName is reserved for the element carrying the text of a textual
// leaf and cannot be registered.
const ContentName = "content"

// Registry is a bidirectional mapping between node types and names.
type Registry struct {
	mu sync.RWMutex

	// type -> name
	names map[node.Type]string

	// name -> type, ordered by name
	types btree.Map[string, node.Type]
}

// Entry is one binding.
type Entry struct {
	Type node.Type
	Name string
}

func New() *Registry {
	return &Registry{names: make(map[node.Type]string)}
}

// Register binds t to name. Registering an identical binding again is a
// no-op; rebinding either side to something else fails with ErrDuplicate.
func (r *Registry) Register(t node.Type, name string) error {
	if t == "" {
		return fmt.Errorf("%w: empty type", ErrInvalidName)
	}
	if err := CheckName(name); err != nil {
		return err
	}
	if name == ContentName {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existingName, typeBound := r.names[t]
	existingType, nameBound := r.types.Get(name)
	if typeBound && nameBound && existingName == name && existingType == t {
		return nil
	}
	if typeBound {
		return fmt.Errorf("%w: type %q already registered: %q", ErrDuplicate, t, existingName)
	}
	if nameBound {
		return fmt.Errorf("%w: name %q already registered: %q", ErrDuplicate, name, existingType)
	}
	r.names[t] = name
	r.types.Set(name, t)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(t node.Type, name string) *Registry {
	if err := r.Register(t, name); err != nil {
		panic(err)
	}
	return r
}

// Name returns the name bound to t.
func (r *Registry) Name(t node.Type) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[t]
	if !ok {
		return "", &UnknownTypeError{Type: t}
	}
	return name, nil
}

// Type returns the type bound to name.
func (r *Registry) Type(name string) (node.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types.Get(name)
	if !ok {
		return "", &UnknownTypeError{Name: name}
	}
	return t, nil
}

func (r *Registry) Has(t node.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[t]
	return ok
}

func (r *Registry) HasName(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types.Get(name)
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Entries returns a snapshot of all bindings ordered by name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]Entry, 0, r.types.Len())
	r.types.Scan(func(name string, t node.Type) bool {
		res = append(res, Entry{Type: t, Name: name})
		return true
	})
	return res
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := New()
	r.types.Scan(func(name string, t node.Type) bool {
		res.names[t] = name
		res.types.Set(name, t)
		return true
	})
	return res
}

// CheckName reports whether name can be used as an unprefixed element
// name: an XML name without colons that does not start with "xml".
func CheckName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	for i, c := range name {
		if c == '_' || unicode.IsLetter(c) {
			continue
		}
		if i > 0 && (c == '-' || c == '.' || unicode.IsDigit(c)) {
			continue
		}
		return fmt.Errorf("%w: %q has bad character %q", ErrInvalidName, name, c)
	}
	if strings.HasPrefix(strings.ToLower(name), "xml") {
		return fmt.Errorf("%w: %q starts with xml", ErrInvalidName, name)
	}
	return nil
}
