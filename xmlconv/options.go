package xmlconv

import (
	"github.com/sweble/parser-toolkit/node"
)

// Option configures a Converter.
type Option func(*config)

// ContainerFunc builds a container around a decoded root node.
type ContainerFunc func(root node.Node) (node.Container, error)

// Namespace is a namespace declaration written on a container element. An
// empty Prefix declares the default namespace.
type Namespace struct {
	Prefix string
	URI    string
}

type config struct {
	explicitRoots      bool
	stringNodeType     node.Type
	suppressEmptyNodes bool
	suppressEmptyProps bool
	storeLocation      bool
	storeAttributes    bool
	suppressedNodes    map[node.Type]bool
	typeInfo           map[node.Type][]string
	suppressedAttrs    map[string]bool
	suppressedProps    map[string]bool
	factory            node.Factory
	containers         []*containerDef
	prefix, indent     string
	header             bool
	maxDepth           int
	observer           Observer
}

type containerDef struct {
	typ        node.Type
	name       string
	namespaces []Namespace
	ctor       ContainerFunc
}

func defaultConfig() config {
	return config{
		storeLocation:   true,
		storeAttributes: true,
		suppressedNodes: map[node.Type]bool{},
		typeInfo:        map[node.Type][]string{},
		suppressedAttrs: map[string]bool{},
		suppressedProps: map[string]bool{},
		maxDepth:        DefaultMaxDepth,
	}
}

// ExplicitRoots wraps the root node element in an extra element named by
// the root's registry name.
func ExplicitRoots(v bool) Option {
	return func(c *config) { c.explicitRoots = v }
}

// StringNodeType designates the textual leaf type. Its nodes keep their
// text in the "content" property and are folded to bare text when nothing
// else needs to be written. The empty type disables folding.
func StringNodeType(t node.Type) Option {
	return func(c *config) { c.stringNodeType = t }
}

// SuppressEmptyStringNodes drops foldable string nodes with empty text from
// child lists and property values.
func SuppressEmptyStringNodes(v bool) Option {
	return func(c *config) { c.suppressEmptyNodes = v }
}

// SuppressEmptyStringProperties drops properties whose value is the empty
// string.
func SuppressEmptyStringProperties(v bool) Option {
	return func(c *config) { c.suppressEmptyProps = v }
}

// StoreLocation controls whether node locations are written. Default true.
func StoreLocation(v bool) Option {
	return func(c *config) { c.storeLocation = v }
}

// StoreAttributes controls whether attributes are written at all. Default
// true.
func StoreAttributes(v bool) Option {
	return func(c *config) { c.storeAttributes = v }
}

// SuppressNode omits nodes of the given types, with their descendants,
// from the output.
func SuppressNode(types ...node.Type) Option {
	return func(c *config) {
		for _, t := range types {
			c.suppressedNodes[t] = true
		}
	}
}

// SuppressTypeInfo lets nodes of type t occupying one of slots be written
// under the slot name instead of the registry name. When reading, an
// element named by such a slot is given type t.
func SuppressTypeInfo(t node.Type, slots ...string) Option {
	return func(c *config) {
		c.typeInfo[t] = append(c.typeInfo[t], slots...)
	}
}

// SuppressAttribute omits the named attributes from the output.
func SuppressAttribute(names ...string) Option {
	return func(c *config) {
		for _, n := range names {
			c.suppressedAttrs[n] = true
		}
	}
}

// SuppressProperty omits the named properties from the output.
func SuppressProperty(names ...string) Option {
	return func(c *config) {
		for _, n := range names {
			c.suppressedProps[n] = true
		}
	}
}

// WithFactory sets the factory used to materialize decoded nodes.
func WithFactory(f node.Factory) Option {
	return func(c *config) { c.factory = f }
}

// WithContainer registers container type t. Its element carries the given
// namespace declarations plus the ptk declaration, and ctor rebuilds the
// container when reading.
func WithContainer(t node.Type, ctor ContainerFunc, namespaces ...Namespace) Option {
	return func(c *config) {
		c.containers = append(c.containers, &containerDef{typ: t, ctor: ctor, namespaces: namespaces})
	}
}

// Indent makes Encode start each element on a new line beginning with
// prefix followed by one copy of indent per nesting level.
func Indent(prefix, indent string) Option {
	return func(c *config) {
		c.prefix = prefix
		c.indent = indent
	}
}

// Header makes Encode write an xml declaration first.
func Header(v bool) Option {
	return func(c *config) { c.header = v }
}

// MaxDepth bounds the nesting of nodes and values. Default
// DefaultMaxDepth.
func MaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithObserver reports every conversion to o.
func WithObserver(o Observer) Option {
	return func(c *config) { c.observer = o }
}
