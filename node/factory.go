package node

import "fmt"

// Parts holds everything reconstructed for one node before the node
// itself is materialized.
type Parts struct {
	Type       Type
	Attributes *Attributes
	Properties *Properties
	Children   []Node
	// Slots[i] is the element name child i was read from.
	Slots    []string
	Location *Location
}

// Factory materializes nodes during deserialization.
type Factory interface {
	Create(p *Parts) (Node, error)
}

type FactoryFunc func(p *Parts) (Node, error)

func (f FactoryFunc) Create(p *Parts) (Node, error) {
	return f(p)
}

// Dispatch is a Factory with one constructor per type.
type Dispatch map[Type]FactoryFunc

func (d Dispatch) Create(p *Parts) (Node, error) {
	f, ok := d[p.Type]
	if !ok {
		return nil, fmt.Errorf("%w for %q", ErrNoConstructor, p.Type)
	}
	return f(p)
}
