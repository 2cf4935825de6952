package xmlconv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sweble/parser-toolkit/debug"
	"github.com/sweble/parser-toolkit/node"
	"github.com/sweble/parser-toolkit/registry"
	"github.com/sweble/parser-toolkit/stream"
)

// Decode reads a document from r and returns its root node. For a
// container document the root inside the container is returned.
func (c *Converter) Decode(r io.Reader) (node.Node, error) {
	root, _, err := c.DecodeEvents(stream.NewDecoder(r))
	return root, err
}

// Unmarshal is Decode over data.
func (c *Converter) Unmarshal(data []byte) (node.Node, error) {
	return c.Decode(bytes.NewReader(data))
}

// DecodeContainer reads a container document from r.
func (c *Converter) DecodeContainer(r io.Reader) (node.Container, error) {
	_, ctr, err := c.DecodeEvents(stream.NewDecoder(r))
	if err != nil {
		return nil, err
	}
	if ctr == nil {
		return nil, &Error{Op: OpDecode, Err: fmt.Errorf("%w: document is not a container", ErrFormat)}
	}
	return ctr, nil
}

// UnmarshalContainer is DecodeContainer over data.
func (c *Converter) UnmarshalContainer(data []byte) (node.Container, error) {
	return c.DecodeContainer(bytes.NewReader(data))
}

// DecodeEvents reads a document from src. The container is nil unless the
// document is a container document.
func (c *Converter) DecodeEvents(src stream.EventReader) (node.Node, node.Container, error) {
	if c.cfg.factory == nil {
		return nil, nil, &Error{Op: OpDecode, Err: ErrNoFactory}
	}
	start := time.Now()
	r := &reader{c: c, src: src, state: stream.NewState()}
	root, ctr, err := r.document()
	if c.cfg.observer != nil {
		c.cfg.observer.Observe(OpDecode, r.nodes, time.Since(start), err)
	}
	if err != nil {
		return nil, nil, err
	}
	return root, ctr, nil
}

type reader struct {
	c         *Converter
	src       stream.EventReader
	state     *stream.State
	line, col int
	nodes     int
}

func (r *reader) document() (node.Node, node.Container, error) {
	ev, err := r.top()
	if errors.Is(err, io.EOF) {
		return nil, nil, r.errorf(ErrFormat, "empty document")
	}
	if err != nil {
		return nil, nil, err
	}
	r.track(ev)
	var (
		root node.Node
		ctr  node.Container
	)
	if def := r.c.containersByName[ev.Name]; def != nil {
		root, ctr, err = r.container(ev, def)
	} else {
		root, err = r.root(ev)
	}
	if err != nil {
		return nil, nil, err
	}
	if ev, err := r.top(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, nil, err
		}
		r.track(ev)
		return nil, nil, r.errorf(ErrFormat, "content after root element")
	}
	return root, ctr, nil
}

// top returns the next event outside the root element, skipping
// whitespace.
func (r *reader) top() (*stream.Event, error) {
	for {
		ev, err := r.src.ReadEvent()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, r.fail(err)
		}
		if ev.Type == stream.EventText && strings.TrimSpace(ev.Text) == "" {
			continue
		}
		if ev.Type != stream.EventStart {
			r.line, r.col = ev.Line, ev.Col
			return nil, r.errorf(ErrFormat, "unexpected %s outside root element", ev.Type)
		}
		return ev, nil
	}
}

func (r *reader) container(ev *stream.Event, def *containerDef) (node.Node, node.Container, error) {
	if err := r.onlyNamespaces(ev); err != nil {
		return nil, nil, err
	}
	inner, err := r.onlyChild(ev)
	if err != nil {
		return nil, nil, err
	}
	root, err := r.root(inner)
	if err != nil {
		return nil, nil, err
	}
	if err := r.close(); err != nil {
		return nil, nil, err
	}
	ctr, err := def.ctor(root)
	if err != nil {
		return nil, nil, r.fail(err)
	}
	return root, ctr, nil
}

func (r *reader) root(ev *stream.Event) (node.Node, error) {
	t, err := r.c.reg.Type(ev.Name)
	if err != nil {
		return nil, r.fail(err)
	}
	if !r.c.cfg.explicitRoots {
		return r.node(ev, t, 0)
	}
	if err := r.onlyNamespaces(ev); err != nil {
		return nil, err
	}
	inner, err := r.onlyChild(ev)
	if err != nil {
		return nil, err
	}
	if inner.Name != ev.Name {
		return nil, r.errorf(ErrFormat, "explicit root <%s> wraps <%s>", ev.Name, inner.Name)
	}
	n, err := r.node(inner, t, 0)
	if err != nil {
		return nil, err
	}
	if err := r.close(); err != nil {
		return nil, err
	}
	return n, nil
}

// node reads the rest of the element started by ev as a node of type t.
func (r *reader) node(ev *stream.Event, t node.Type, depth int) (node.Node, error) {
	if depth > r.c.cfg.maxDepth {
		return nil, r.errorf(ErrDepth, "element nested deeper than %d", r.c.cfg.maxDepth)
	}
	parts := &node.Parts{
		Type:       t,
		Attributes: node.NewMap(),
		Properties: node.NewMap(),
	}
	if err := r.attributes(ev, parts); err != nil {
		return nil, err
	}

	text := &strings.Builder{}
	sawElement := false
	seen := map[string]bool{}
	for {
		kid, err := r.next()
		if err != nil {
			return nil, err
		}
		if kid.Type == stream.EventEnd {
			break
		}
		if kid.Type == stream.EventText {
			text.WriteString(kid.Text)
			continue
		}
		sawElement = true
		if kid.Name == elemAttr {
			if name, ok := kid.Attr(attrName); ok {
				if err := r.attribute(name, parts, depth); err != nil {
					return nil, err
				}
				continue
			}
		}
		if name, ok := propertyName(kid.Name); ok {
			if seen[name] {
				return nil, r.errorf(ErrFormat, "duplicate property %q", name)
			}
			seen[name] = true
			if r.c.cfg.suppressedProps[name] {
				if err := r.skip(); err != nil {
					return nil, err
				}
				continue
			}
			v, err := r.value(kid, name, depth+1)
			if err != nil {
				return nil, err
			}
			if !v.IsNull() {
				parts.Properties.Set(name, v)
			}
			continue
		}
		child, err := r.child(kid, depth+1)
		if err != nil {
			return nil, err
		}
		if child != nil {
			parts.Children = append(parts.Children, child)
			parts.Slots = append(parts.Slots, kid.Name)
		}
	}

	switch {
	case !sawElement && r.c.cfg.stringNodeType != "" && t == r.c.cfg.stringNodeType:
		parts.Properties.Set(contentName, node.FromString(text.String()))
	case strings.TrimSpace(text.String()) != "":
		return nil, r.errorf(ErrFormat, "unexpected text in %s element", t)
	}
	return r.create(parts)
}

func (r *reader) attributes(ev *stream.Event, parts *node.Parts) error {
	cfg := &r.c.cfg
	for _, a := range ev.Attrs {
		switch {
		case a.Name == "xmlns" || strings.HasPrefix(a.Name, "xmlns:"):
		case a.Name == attrType || a.Name == attrNode:
		case a.Name == attrLocation:
			loc, err := node.ParseLocation(a.Value)
			if err != nil {
				return r.errorf(ErrFormat, "%v", err)
			}
			if cfg.storeLocation {
				parts.Location = loc
			}
		case a.Name == attrNull:
			for _, name := range strings.Fields(a.Value) {
				if cfg.storeAttributes && !cfg.suppressedAttrs[name] {
					parts.Attributes.Set(name, node.Null())
				}
			}
		case strings.HasPrefix(a.Name, prefixPTK):
			return r.errorf(ErrFormat, "unknown reserved attribute %q", a.Name)
		default:
			if cfg.storeAttributes && !cfg.suppressedAttrs[a.Name] {
				parts.Attributes.Set(a.Name, node.FromString(a.Value))
			}
		}
	}
	return nil
}

// attribute reads the rest of a ptk:attr element holding the value of
// attribute name.
func (r *reader) attribute(name string, parts *node.Parts, depth int) error {
	cfg := &r.c.cfg
	if err := registry.CheckName(name); err != nil {
		return r.errorf(ErrFormat, "attribute: %v", err)
	}
	if parts.Attributes.Has(name) {
		return r.errorf(ErrFormat, "duplicate attribute %q", name)
	}
	if !cfg.storeAttributes || cfg.suppressedAttrs[name] {
		return r.skip()
	}
	ev, err := r.onlyChild(&stream.Event{Name: elemAttr})
	if err != nil {
		return err
	}
	if ev.Name != elemItem {
		return r.errorf(ErrFormat, "attribute %q holds <%s>, want <%s>", name, ev.Name, elemItem)
	}
	v, err := r.value(ev, "", depth+1)
	if err != nil {
		return err
	}
	if err := r.close(); err != nil {
		return err
	}
	if !v.IsNull() {
		parts.Attributes.Set(name, v)
	}
	return nil
}

// child reads a child node element. It returns nil for elements of
// suppressed types.
func (r *reader) child(ev *stream.Event, depth int) (node.Node, error) {
	t, err := r.resolve(ev)
	if err != nil {
		return nil, err
	}
	if r.c.cfg.suppressedNodes[t] {
		if debug.Policy() {
			debug.Logf("xmlconv: dropping suppressed %s at %s\n", t, r.state.CurrentPath())
		}
		return nil, r.skip()
	}
	return r.node(ev, t, depth)
}

func (r *reader) resolve(ev *stream.Event) (node.Type, error) {
	if name, ok := ev.Attr(attrNode); ok {
		t, err := r.c.reg.Type(name)
		if err != nil {
			return "", r.fail(err)
		}
		return t, nil
	}
	switch types := r.c.slots[ev.Name]; len(types) {
	case 0:
	case 1:
		return types[0], nil
	default:
		// a shared slot is written under the registry names of its types
		if t, err := r.c.reg.Type(ev.Name); err == nil && slices.Contains(types, t) {
			return t, nil
		}
		return "", r.errorf(ErrAmbiguousType, "element <%s> may be any of %v", ev.Name, types)
	}
	t, err := r.c.reg.Type(ev.Name)
	if err != nil {
		return "", r.errorf(ErrAmbiguousType, "no type for element <%s>", ev.Name)
	}
	return t, nil
}

// value reads the rest of the element started by ev as a value. slot is
// the property name, or "" for array items.
func (r *reader) value(ev *stream.Event, slot string, depth int) (node.Value, error) {
	if depth > r.c.cfg.maxDepth {
		return node.Null(), r.errorf(ErrDepth, "value nested deeper than %d", r.c.cfg.maxDepth)
	}
	kind := node.StringKind
	if name, ok := ev.Attr(attrType); ok {
		k, ok := node.ParseKind(name)
		if !ok {
			return node.Null(), r.errorf(ErrFormat, "unknown value type %q", name)
		}
		kind = k
	}
	switch kind {
	case node.ArrayKind:
		return r.array(depth)
	case node.NodeKind:
		return r.nodeValue(ev, slot, depth)
	}

	text, err := r.text()
	if err != nil {
		return node.Null(), err
	}
	switch kind {
	case node.StringKind:
		return node.FromString(text), nil
	case node.NullKind:
		if strings.TrimSpace(text) != "" {
			return node.Null(), r.errorf(ErrFormat, "null value with text %q", text)
		}
		return node.Null(), nil
	case node.BoolKind:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return node.Null(), r.errorf(ErrFormat, "bool value %q", text)
		}
		return node.FromBool(b), nil
	case node.IntKind:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return node.Null(), r.errorf(ErrFormat, "int value %q", text)
		}
		return node.FromInt(i), nil
	case node.FloatKind:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return node.Null(), r.errorf(ErrFormat, "float value %q", text)
		}
		return node.FromFloat(f), nil
	}
	return node.Null(), r.errorf(ErrFormat, "unexpected value type %s", kind)
}

func (r *reader) array(depth int) (node.Value, error) {
	var items []node.Value
	for {
		ev, err := r.next()
		if err != nil {
			return node.Null(), err
		}
		switch ev.Type {
		case stream.EventEnd:
			return node.FromArray(items...), nil
		case stream.EventText:
			if strings.TrimSpace(ev.Text) != "" {
				return node.Null(), r.errorf(ErrFormat, "unexpected text in array")
			}
		case stream.EventStart:
			if ev.Name != elemItem {
				return node.Null(), r.errorf(ErrFormat, "array holds <%s>, want <%s>", ev.Name, elemItem)
			}
			item, err := r.value(ev, "", depth+1)
			if err != nil {
				return node.Null(), err
			}
			items = append(items, item)
		}
	}
}

func (r *reader) nodeValue(ev *stream.Event, slot string, depth int) (node.Value, error) {
	var t node.Type
	if name, ok := ev.Attr(attrNode); ok {
		var err error
		t, err = r.c.reg.Type(name)
		if err != nil {
			return node.Null(), r.fail(err)
		}
	} else {
		switch types := r.c.slots[slot]; len(types) {
		case 0:
			return node.Null(), r.errorf(ErrAmbiguousType, "node value without %s", attrNode)
		case 1:
			t = types[0]
		default:
			return node.Null(), r.errorf(ErrAmbiguousType, "node value in %q may be any of %v", slot, types)
		}
	}
	if r.c.cfg.suppressedNodes[t] {
		return node.Null(), r.skip()
	}
	n, err := r.node(ev, t, depth)
	if err != nil {
		return node.Null(), err
	}
	return node.FromNode(n), nil
}

func (r *reader) create(parts *node.Parts) (node.Node, error) {
	r.nodes++
	n, err := r.c.cfg.factory.Create(parts)
	if err != nil {
		return nil, r.fail(err)
	}
	if n == nil {
		return nil, r.errorf(ErrFormat, "factory built no node for %s", parts.Type)
	}
	if debug.Decode() {
		debug.Logf("xmlconv: decode %v\n", n)
	}
	return n, nil
}

// text reads character data up to the end of the current element.
func (r *reader) text() (string, error) {
	buf := &strings.Builder{}
	for {
		ev, err := r.next()
		if err != nil {
			return "", err
		}
		switch ev.Type {
		case stream.EventEnd:
			return buf.String(), nil
		case stream.EventText:
			buf.WriteString(ev.Text)
		case stream.EventStart:
			return "", r.errorf(ErrFormat, "element <%s> inside a text value", ev.Name)
		}
	}
}

// skip consumes the rest of the current element.
func (r *reader) skip() error {
	depth := 1
	for depth > 0 {
		ev, err := r.next()
		if err != nil {
			return err
		}
		switch ev.Type {
		case stream.EventStart:
			depth++
		case stream.EventEnd:
			depth--
		}
	}
	return nil
}

func (r *reader) onlyNamespaces(ev *stream.Event) error {
	for _, a := range ev.Attrs {
		if a.Name != "xmlns" && !strings.HasPrefix(a.Name, "xmlns:") {
			return r.errorf(ErrFormat, "unexpected attribute %q on <%s>", a.Name, ev.Name)
		}
	}
	return nil
}

// onlyChild returns the start of the single element inside the current
// one.
func (r *reader) onlyChild(parent *stream.Event) (*stream.Event, error) {
	for {
		ev, err := r.next()
		if err != nil {
			return nil, err
		}
		switch ev.Type {
		case stream.EventStart:
			return ev, nil
		case stream.EventEnd:
			return nil, r.errorf(ErrFormat, "<%s> holds no element", parent.Name)
		case stream.EventText:
			if strings.TrimSpace(ev.Text) != "" {
				return nil, r.errorf(ErrFormat, "unexpected text in <%s>", parent.Name)
			}
		}
	}
}

// close consumes the end of the current element, allowing only
// whitespace before it.
func (r *reader) close() error {
	for {
		ev, err := r.next()
		if err != nil {
			return err
		}
		switch ev.Type {
		case stream.EventEnd:
			return nil
		case stream.EventStart:
			return r.errorf(ErrFormat, "unexpected second element <%s>", ev.Name)
		case stream.EventText:
			if strings.TrimSpace(ev.Text) != "" {
				return r.errorf(ErrFormat, "unexpected text")
			}
		}
	}
}

func (r *reader) next() (*stream.Event, error) {
	ev, err := r.src.ReadEvent()
	if errors.Is(err, io.EOF) {
		return nil, r.errorf(ErrFormat, "unexpected end of document")
	}
	if err != nil {
		return nil, r.fail(err)
	}
	r.track(ev)
	return ev, nil
}

func (r *reader) track(ev *stream.Event) {
	r.line, r.col = ev.Line, ev.Col
	switch ev.Type {
	case stream.EventStart:
		r.state.Push(ev.Name)
	case stream.EventEnd:
		r.state.Pop()
	}
}

func (r *reader) errorf(sentinel error, format string, args ...any) error {
	return r.fail(fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}

func (r *reader) fail(err error) error {
	var convErr *Error
	if errors.As(err, &convErr) {
		return err
	}
	if errors.Is(err, stream.ErrSyntax) {
		err = fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return &Error{Op: OpDecode, Path: r.state.CurrentPath(), Line: r.line, Col: r.col, Err: err}
}
