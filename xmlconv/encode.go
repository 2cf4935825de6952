package xmlconv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sweble/parser-toolkit/debug"
	"github.com/sweble/parser-toolkit/node"
	"github.com/sweble/parser-toolkit/registry"
	"github.com/sweble/parser-toolkit/stream"
)

// Encode writes the document for root to w.
func (c *Converter) Encode(w io.Writer, root node.Node) error {
	enc := c.newEncoder(w)
	return c.encode(enc, enc.Close, func(wr *writer) error {
		return wr.document(root, []stream.Attr{{Name: attrXMLNSPTK, Value: node.NamespacePTK}})
	})
}

// Marshal returns the document for root.
func (c *Converter) Marshal(root node.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := c.Encode(buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeContainer writes the document for ctr, whose type must have been
// registered with WithContainer.
func (c *Converter) EncodeContainer(w io.Writer, ctr node.Container) error {
	enc := c.newEncoder(w)
	return c.encode(enc, enc.Close, func(wr *writer) error {
		return wr.container(ctr)
	})
}

// MarshalContainer returns the document for ctr.
func (c *Converter) MarshalContainer(ctr node.Container) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := c.EncodeContainer(buf, ctr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeEvents writes the document for root as events to sink.
func (c *Converter) EncodeEvents(sink stream.EventSink, root node.Node) error {
	return c.encode(sink, nil, func(wr *writer) error {
		return wr.document(root, []stream.Attr{{Name: attrXMLNSPTK, Value: node.NamespacePTK}})
	})
}

func (c *Converter) newEncoder(w io.Writer) *stream.Encoder {
	var opts []stream.StreamOption
	if c.cfg.prefix != "" || c.cfg.indent != "" {
		opts = append(opts, stream.WithIndent(c.cfg.prefix, c.cfg.indent))
	}
	if c.cfg.header {
		opts = append(opts, stream.WithHeader())
	}
	return stream.NewEncoder(w, opts...)
}

func (c *Converter) encode(sink stream.EventSink, closer func() error, f func(*writer) error) error {
	start := time.Now()
	wr := &writer{c: c, sink: sink, state: stream.NewState()}
	err := f(wr)
	if err == nil && closer != nil {
		if cerr := closer(); cerr != nil {
			err = wr.fail(cerr)
		}
	}
	if c.cfg.observer != nil {
		c.cfg.observer.Observe(OpEncode, wr.nodes, time.Since(start), err)
	}
	return err
}

type writer struct {
	c     *Converter
	sink  stream.EventSink
	state *stream.State
	nodes int
}

func (w *writer) container(ctr node.Container) error {
	if ctr == nil {
		return w.errorf(ErrFormat, "nil container")
	}
	def := w.c.containersByType[ctr.Type()]
	if def == nil {
		return w.errorf(ErrConfig, "container type %q not registered", ctr.Type())
	}
	attrs := make([]stream.Attr, 0, len(def.namespaces)+1)
	hasPTK := false
	for _, ns := range def.namespaces {
		name := "xmlns"
		if ns.Prefix != "" {
			name += ":" + ns.Prefix
		}
		hasPTK = hasPTK || ns.Prefix == "ptk"
		attrs = append(attrs, stream.Attr{Name: name, Value: ns.URI})
	}
	if !hasPTK {
		attrs = append(attrs, stream.Attr{Name: attrXMLNSPTK, Value: node.NamespacePTK})
	}
	if err := w.start(def.name, attrs); err != nil {
		return err
	}
	if err := w.document(ctr.Root(), nil); err != nil {
		return err
	}
	return w.end()
}

func (w *writer) document(root node.Node, outer []stream.Attr) error {
	if root == nil {
		return w.errorf(ErrFormat, "nil root")
	}
	if w.c.suppressed(root) {
		return w.errorf(ErrFormat, "root type %q is suppressed", root.Type())
	}
	name, err := w.c.reg.Name(root.Type())
	if err != nil {
		return w.fail(err)
	}
	if !w.c.cfg.explicitRoots {
		return w.node(name, root, 0, outer)
	}
	if err := w.start(name, outer); err != nil {
		return err
	}
	if err := w.node(name, root, 0, nil); err != nil {
		return err
	}
	return w.end()
}

// node writes the element for n named name, with extra reserved
// attributes first.
func (w *writer) node(name string, n node.Node, depth int, extra []stream.Attr) error {
	if depth > w.c.cfg.maxDepth {
		return w.errorf(ErrDepth, "node %s nested deeper than %d", n.Type(), w.c.cfg.maxDepth)
	}
	w.nodes++
	if debug.Encode() {
		debug.Logf("xmlconv: encode <%s> %v\n", name, n)
	}
	attrs := append([]stream.Attr{}, extra...)
	if loc := n.Location(); loc != nil && w.c.cfg.storeLocation {
		attrs = append(attrs, stream.Attr{Name: attrLocation, Value: loc.String()})
	}
	var typed []string
	if w.c.cfg.storeAttributes {
		var nulls []string
		var plain []stream.Attr
		for attr, v := range n.Attributes().All() {
			if w.c.cfg.suppressedAttrs[attr] {
				continue
			}
			if err := registry.CheckName(attr); err != nil {
				return w.errorf(ErrFormat, "attribute of %s: %v", n.Type(), err)
			}
			switch v.Kind() {
			case node.NullKind:
				nulls = append(nulls, attr)
			case node.StringKind:
				plain = append(plain, stream.Attr{Name: attr, Value: v.Text()})
			case node.NodeKind:
				if kid := v.Node(); w.c.suppressed(kid) || w.c.omitsEmpty(kid) {
					if debug.Policy() {
						debug.Logf("xmlconv: attribute %s of %s omitted: %s\n", attr, n.Type(), kid.Type())
					}
					continue
				}
				typed = append(typed, attr)
			default:
				typed = append(typed, attr)
			}
		}
		if len(nulls) > 0 {
			attrs = append(attrs, stream.Attr{Name: attrNull, Value: strings.Join(nulls, " ")})
		}
		attrs = append(attrs, plain...)
	}
	if err := w.start(name, attrs); err != nil {
		return err
	}
	if text, ok := w.c.foldedText(n); ok {
		if debug.Policy() {
			debug.Logf("xmlconv: %s folded to text\n", n.Type())
		}
		if err := w.text(text); err != nil {
			return err
		}
		return w.end()
	}
	for _, attr := range typed {
		if err := w.attribute(attr, n.Attributes().Value(attr), depth); err != nil {
			return err
		}
	}
	if err := w.body(n, depth); err != nil {
		return err
	}
	return w.end()
}

// attribute writes an attribute whose value an XML attribute cannot hold,
// as a ptk:attr element around one ptk:item value.
func (w *writer) attribute(name string, v node.Value, depth int) error {
	if err := w.start(elemAttr, []stream.Attr{{Name: attrName, Value: name}}); err != nil {
		return err
	}
	if err := w.value(elemItem, "", v, depth+1); err != nil {
		return err
	}
	return w.end()
}

func (w *writer) body(n node.Node, depth int) error {
	contentWritten := false
	for name, v := range n.Properties().All() {
		if !w.c.writesProperty(name, v) {
			if debug.Policy() && !v.IsNull() {
				debug.Logf("xmlconv: property %s of %s omitted\n", name, n.Type())
			}
			continue
		}
		if err := registry.CheckName(name); err != nil {
			return w.errorf(ErrFormat, "property of %s: %v", n.Type(), err)
		}
		contentWritten = contentWritten || name == contentName
		if err := w.value(propertyElement(name), name, v, depth+1); err != nil {
			return err
		}
	}
	if !contentWritten && w.c.cfg.stringNodeType != "" && n.Type() == w.c.cfg.stringNodeType {
		// keeps the element from reading back as folded text
		if err := w.start(contentName, []stream.Attr{{Name: attrType, Value: node.NullKind.String()}}); err != nil {
			return err
		}
		if err := w.end(); err != nil {
			return err
		}
	}
	for i, kid := range n.Children() {
		if kid == nil {
			return w.errorf(ErrFormat, "child %d of %s is nil", i, n.Type())
		}
		if w.c.suppressed(kid) {
			if debug.Policy() {
				debug.Logf("xmlconv: child %d of %s suppressed: %s\n", i, n.Type(), kid.Type())
			}
			continue
		}
		if w.c.omitsEmpty(kid) {
			if debug.Policy() {
				debug.Logf("xmlconv: child %d of %s omitted: empty %s\n", i, n.Type(), kid.Type())
			}
			continue
		}
		name, err := w.c.elementName(kid, node.SlotOf(n, i))
		if err != nil {
			return w.fail(err)
		}
		if err := w.node(name, kid, depth+1, nil); err != nil {
			return err
		}
	}
	return nil
}

// value writes v as element elem. slot is the property name v belongs to,
// or "" for array items.
func (w *writer) value(elem, slot string, v node.Value, depth int) error {
	if depth > w.c.cfg.maxDepth {
		return w.errorf(ErrDepth, "value nested deeper than %d", w.c.cfg.maxDepth)
	}
	switch v.Kind() {
	case node.NullKind:
		return w.scalar(elem, node.NullKind, "")
	case node.BoolKind:
		return w.scalar(elem, node.BoolKind, strconv.FormatBool(v.Bool()))
	case node.IntKind:
		return w.scalar(elem, node.IntKind, strconv.FormatInt(v.Int(), 10))
	case node.FloatKind:
		return w.scalar(elem, node.FloatKind, strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case node.StringKind:
		if err := w.start(elem, nil); err != nil {
			return err
		}
		if err := w.text(v.Text()); err != nil {
			return err
		}
		return w.end()
	case node.ArrayKind:
		if err := w.start(elem, []stream.Attr{{Name: attrType, Value: node.ArrayKind.String()}}); err != nil {
			return err
		}
		for _, item := range v.Items() {
			if item.Kind() == node.NodeKind && w.c.suppressed(item.Node()) {
				item = node.Null()
			}
			if err := w.value(elemItem, "", item, depth+1); err != nil {
				return err
			}
		}
		return w.end()
	case node.NodeKind:
		n := v.Node()
		extra := []stream.Attr{{Name: attrType, Value: node.NodeKind.String()}}
		if t, ok := w.c.slotType(slot); !ok || t != n.Type() {
			name, err := w.c.reg.Name(n.Type())
			if err != nil {
				return w.fail(err)
			}
			extra = append(extra, stream.Attr{Name: attrNode, Value: name})
		}
		return w.node(elem, n, depth, extra)
	}
	return w.errorf(ErrFormat, "value of unknown kind %s", v.Kind())
}

func (w *writer) scalar(elem string, k node.Kind, text string) error {
	if err := w.start(elem, []stream.Attr{{Name: attrType, Value: k.String()}}); err != nil {
		return err
	}
	if err := w.text(text); err != nil {
		return err
	}
	return w.end()
}

func (w *writer) start(name string, attrs []stream.Attr) error {
	w.state.Push(name)
	if err := w.sink.WriteEvent(&stream.Event{Type: stream.EventStart, Name: name, Attrs: attrs}); err != nil {
		return w.fail(err)
	}
	return nil
}

func (w *writer) end() error {
	name, _ := w.state.Pop()
	if err := w.sink.WriteEvent(&stream.Event{Type: stream.EventEnd, Name: name}); err != nil {
		return w.fail(err)
	}
	return nil
}

func (w *writer) text(s string) error {
	if s == "" {
		return nil
	}
	if err := w.sink.WriteEvent(&stream.Event{Type: stream.EventText, Text: s}); err != nil {
		return w.fail(err)
	}
	return nil
}

func (w *writer) errorf(sentinel error, format string, args ...any) error {
	return &Error{
		Op:   OpEncode,
		Path: w.state.CurrentPath(),
		Err:  fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}

func (w *writer) fail(err error) error {
	if errors.Is(err, stream.ErrSyntax) {
		err = fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return &Error{Op: OpEncode, Path: w.state.CurrentPath(), Err: err}
}
