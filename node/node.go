package node

import (
	"fmt"
	"strconv"
	"strings"
)

// NamespacePTK is the namespace bound to the reserved "ptk" prefix in
// serialized documents.
const NamespacePTK = "http://sweble.org/schema/ptk"

// Type identifies a node variant. It is never used as an element name;
// names are assigned by a registry.
type Type string

// Node is the contract every convertible node fulfils.
//
// Properties and Attributes may return nil for a node with none.
type Node interface {
	Type() Type
	Children() []Node
	Properties() *Properties
	Attributes() *Attributes
	Location() *Location
}

// Slotted is implemented by nodes whose children occupy named structural
// slots. Slots()[i] names the slot of child i; an empty name or a short
// slice means no slot.
type Slotted interface {
	Slots() []string
}

// SlotOf returns the slot name of child i of n, or "".
func SlotOf(n Node, i int) string {
	s, ok := n.(Slotted)
	if !ok {
		return ""
	}
	slots := s.Slots()
	if i < 0 || i >= len(slots) {
		return ""
	}
	return slots[i]
}

// Container owns a root node and serializes as a fixed outer element.
type Container interface {
	Type() Type
	Root() Node
}

// Location is the native source location of a node.
type Location struct {
	Source string
	Start  int
	End    int
}

// String renders l as "<source> <start>,<end>".
func (l Location) String() string {
	return l.Source + " " + strconv.Itoa(l.Start) + "," + strconv.Itoa(l.End)
}

// ParseLocation is the inverse of [Location.String]. The source is
// everything before the last space, so it may itself contain spaces.
func ParseLocation(s string) (*Location, error) {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return nil, fmt.Errorf("%w: missing offsets in %q", ErrBadLocation, s)
	}
	startStr, endStr, ok := strings.Cut(s[i+1:], ",")
	if !ok {
		return nil, fmt.Errorf("%w: offsets %q not of the form start,end", ErrBadLocation, s[i+1:])
	}
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return nil, fmt.Errorf("%w: start offset %q", ErrBadLocation, startStr)
	}
	end, err := strconv.Atoi(endStr)
	if err != nil {
		return nil, fmt.Errorf("%w: end offset %q", ErrBadLocation, endStr)
	}
	return &Location{Source: s[:i], Start: start, End: end}, nil
}

// Base stores the parts of the node contract. Concrete node types embed
// it and add a Type method.
type Base struct {
	Kids  []Node
	Props *Properties
	Attrs *Attributes
	Loc   *Location
}

func (b *Base) Children() []Node {
	return b.Kids
}

func (b *Base) Properties() *Properties {
	return b.Props
}

func (b *Base) Attributes() *Attributes {
	return b.Attrs
}

func (b *Base) Location() *Location {
	return b.Loc
}

func (b *Base) Append(kids ...Node) {
	b.Kids = append(b.Kids, kids...)
}

func (b *Base) SetProperty(name string, v Value) {
	if b.Props == nil {
		b.Props = NewMap()
	}
	b.Props.Set(name, v)
}

func (b *Base) SetAttribute(name string, v Value) {
	if b.Attrs == nil {
		b.Attrs = NewMap()
	}
	b.Attrs.Set(name, v)
}

func (b *Base) SetLocation(l *Location) {
	b.Loc = l
}

// Fill copies the reconstructed parts p into b.
func (b *Base) Fill(p *Parts) {
	b.Kids = p.Children
	b.Props = p.Properties
	b.Attrs = p.Attributes
	b.Loc = p.Location
}
