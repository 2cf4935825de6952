package xmlconv

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/sweble/parser-toolkit/debug"
	"github.com/sweble/parser-toolkit/node"
	"github.com/sweble/parser-toolkit/registry"
)

const (
	DefaultMaxDepth = 10000

	prefixPTK    = "ptk:"
	attrXMLNSPTK = "xmlns:ptk"
	attrLocation = "ptk:location"
	attrNull     = "ptk:null"
	attrType     = "ptk:type"
	attrNode     = "ptk:node"
	elemItem     = "ptk:item"
	elemAttr     = "ptk:attr"
	attrName     = "ptk:name"
	contentName  = registry.ContentName
)

// Converter converts node trees to XML and back.
type Converter struct {
	reg *registry.Registry
	cfg config

	// slot name -> types whose type info is suppressed in that slot
	slots map[string][]node.Type

	containersByType map[node.Type]*containerDef
	containersByName map[string]*containerDef
}

// New builds a converter over a snapshot of reg. Later changes to reg do
// not affect the converter.
func New(reg *registry.Registry, opts ...Option) (*Converter, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrConfig)
	}
	c := &Converter{
		reg:              reg.Clone(),
		cfg:              defaultConfig(),
		slots:            map[string][]node.Type{},
		containersByType: map[node.Type]*containerDef{},
		containersByName: map[string]*containerDef{},
	}
	for _, opt := range opts {
		opt(&c.cfg)
	}
	if err := c.init(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Converter) init() error {
	cfg := &c.cfg
	if cfg.maxDepth <= 0 {
		return fmt.Errorf("%w: max depth %d", ErrConfig, cfg.maxDepth)
	}
	if cfg.stringNodeType != "" && !c.reg.Has(cfg.stringNodeType) {
		return fmt.Errorf("%w: string node type %q is not registered", ErrConfig, cfg.stringNodeType)
	}
	for _, name := range slices.Sorted(maps.Keys(cfg.suppressedAttrs)) {
		if err := registry.CheckName(name); err != nil {
			return fmt.Errorf("%w: suppressed attribute: %w", ErrConfig, err)
		}
	}

	for _, t := range slices.Sorted(maps.Keys(cfg.typeInfo)) {
		if !c.reg.Has(t) {
			return fmt.Errorf("%w: type info suppressed for unregistered type %q", ErrConfig, t)
		}
		slots := cfg.typeInfo[t]
		if len(slots) == 0 {
			return fmt.Errorf("%w: type info suppressed for %q without a slot", ErrConfig, t)
		}
		for _, slot := range slots {
			if err := registry.CheckName(slot); err != nil {
				return fmt.Errorf("%w: slot of %q: %w", ErrConfig, t, err)
			}
			if slot == contentName {
				return fmt.Errorf("%w: slot name %q is reserved", ErrConfig, slot)
			}
			if !slices.Contains(c.slots[slot], t) {
				c.slots[slot] = append(c.slots[slot], t)
			}
		}
	}
	for slot, types := range c.slots {
		other, err := c.reg.Type(slot)
		if err == nil && !slices.Contains(types, other) {
			return fmt.Errorf("%w: slot %q hides registered type %q", ErrConfig, slot, other)
		}
	}

	for _, def := range cfg.containers {
		if def.ctor == nil {
			return fmt.Errorf("%w: container %q has no constructor", ErrConfig, def.typ)
		}
		name, err := c.reg.Name(def.typ)
		if err != nil {
			return fmt.Errorf("%w: container: %w", ErrConfig, err)
		}
		if _, dup := c.containersByType[def.typ]; dup {
			return fmt.Errorf("%w: container %q registered twice", ErrConfig, def.typ)
		}
		for _, ns := range def.namespaces {
			if ns.Prefix == "ptk" && ns.URI != node.NamespacePTK {
				return fmt.Errorf("%w: container %q rebinds prefix ptk to %q", ErrConfig, def.typ, ns.URI)
			}
			if ns.Prefix != "" {
				if err := registry.CheckName(ns.Prefix); err != nil {
					return fmt.Errorf("%w: container %q namespace prefix: %w", ErrConfig, def.typ, err)
				}
			}
		}
		def.name = name
		c.containersByType[def.typ] = def
		c.containersByName[name] = def
	}
	if debug.Policy() {
		debug.Logf("xmlconv: string node type %q, slots %v, suppressed nodes %v\n",
			cfg.stringNodeType, c.slots, slices.Sorted(maps.Keys(cfg.suppressedNodes)))
	}
	return nil
}

// Registry returns the converter's registry snapshot.
func (c *Converter) Registry() *registry.Registry {
	return c.reg.Clone()
}

// slotType returns the single type whose type info is suppressed in slot.
func (c *Converter) slotType(slot string) (node.Type, bool) {
	types := c.slots[slot]
	if len(types) != 1 {
		return "", false
	}
	return types[0], true
}

// elementName returns the name of the element for n in slot.
func (c *Converter) elementName(n node.Node, slot string) (string, error) {
	if slot != "" {
		if t, ok := c.slotType(slot); ok && t == n.Type() {
			if debug.Policy() {
				debug.Logf("xmlconv: %s written as slot <%s>\n", n.Type(), slot)
			}
			return slot, nil
		}
		if debug.Policy() && len(c.slots[slot]) > 1 && slices.Contains(c.slots[slot], n.Type()) {
			debug.Logf("xmlconv: slot %q is shared by %v, %s keeps its name\n", slot, c.slots[slot], n.Type())
		}
	}
	return c.reg.Name(n.Type())
}

func (c *Converter) suppressed(n node.Node) bool {
	return c.cfg.suppressedNodes[n.Type()]
}

// foldedText returns the text of n if n is written as bare text.
func (c *Converter) foldedText(n node.Node) (string, bool) {
	if c.cfg.stringNodeType == "" || n.Type() != c.cfg.stringNodeType {
		return "", false
	}
	if len(n.Children()) != 0 || c.cfg.suppressedProps[contentName] {
		return "", false
	}
	content := n.Properties().Value(contentName)
	if content.Kind() != node.StringKind {
		return "", false
	}
	if c.cfg.storeAttributes {
		for name := range n.Attributes().All() {
			if !c.cfg.suppressedAttrs[name] {
				return "", false
			}
		}
	}
	for name, v := range n.Properties().All() {
		if name != contentName && c.writesProperty(name, v) {
			return "", false
		}
	}
	return content.Text(), true
}

// omitsEmpty reports whether n is a foldable string node with empty text
// that is dropped from child lists and property values.
func (c *Converter) omitsEmpty(n node.Node) bool {
	if !c.cfg.suppressEmptyNodes {
		return false
	}
	text, ok := c.foldedText(n)
	return ok && text == ""
}

// writesProperty reports whether property name with value v appears in the
// output.
func (c *Converter) writesProperty(name string, v node.Value) bool {
	if c.cfg.suppressedProps[name] {
		return false
	}
	switch v.Kind() {
	case node.NullKind:
		return false
	case node.StringKind:
		return !(c.cfg.suppressEmptyProps && v.Text() == "")
	case node.NodeKind:
		n := v.Node()
		return !c.suppressed(n) && !c.omitsEmpty(n)
	}
	return true
}

func propertyElement(name string) string {
	if name == contentName {
		return contentName
	}
	return prefixPTK + name
}

func propertyName(elem string) (string, bool) {
	if elem == contentName {
		return contentName, true
	}
	return strings.CutPrefix(elem, prefixPTK)
}
