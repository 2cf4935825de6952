package node

import (
	"iter"
	"slices"
)

// Map is an insertion-ordered map from names to values. A nil *Map reads
// as empty.
type Map struct {
	keys []string
	vals map[string]Value
}

// Properties maps property names to values.
type Properties = Map

// Attributes maps attribute names to values.
type Attributes = Map

func NewMap() *Map {
	return &Map{vals: map[string]Value{}}
}

// Set binds name to v. Rebinding an existing name keeps its position.
func (m *Map) Set(name string, v Value) *Map {
	if m.vals == nil {
		m.vals = map[string]Value{}
	}
	if _, ok := m.vals[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.vals[name] = v
	return m
}

func (m *Map) Get(name string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.vals[name]
	return v, ok
}

// Value returns the value bound to name, or null.
func (m *Map) Value(name string) Value {
	v, _ := m.Get(name)
	return v
}

func (m *Map) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

func (m *Map) Delete(name string) {
	if m == nil {
		return
	}
	if _, ok := m.vals[name]; !ok {
		return
	}
	delete(m.vals, name)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == name })
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the names in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy: nested nodes and arrays are shared.
func (m *Map) Clone() *Map {
	res := NewMap()
	for k, v := range m.All() {
		res.Set(k, v)
	}
	return res
}
