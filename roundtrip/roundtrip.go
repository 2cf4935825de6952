package roundtrip

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/sweble/parser-toolkit/compare"
	"github.com/sweble/parser-toolkit/libdiff"
	"github.com/sweble/parser-toolkit/node"
	"github.com/sweble/parser-toolkit/stream"
	"github.com/sweble/parser-toolkit/xmlconv"
)

const DefaultContext = 3

type Checker struct {
	Converter  *xmlconv.Converter
	Attributes bool
	Locations  bool
	// Context is the number of unchanged lines around each change in
	// failure diffs. Negative means DefaultContext.
	Context int
}

// New returns a checker comparing attributes and locations.
func New(c *xmlconv.Converter) *Checker {
	return &Checker{Converter: c, Attributes: true, Locations: true, Context: DefaultContext}
}

// Failure reports a tree that changed on its way through a document.
type Failure struct {
	// Mismatch is the first difference found by the comparer.
	Mismatch error
	// Document is the serialized original; Reread is the serialization of
	// the tree read back from it.
	Document []byte
	Reread   []byte
	// Diff is a unified diff of the dumps of both trees.
	Diff string
}

func (f *Failure) Error() string {
	if f.Diff == "" {
		return fmt.Sprintf("round trip: %v", f.Mismatch)
	}
	return fmt.Sprintf("round trip: %v\n%s", f.Mismatch, f.Diff)
}

func (f *Failure) Unwrap() error {
	return f.Mismatch
}

// Check writes n, reads it back and compares. It returns the tree read
// back.
func (c *Checker) Check(n node.Node) (node.Node, error) {
	data, err := c.Converter.Marshal(n)
	if err != nil {
		return nil, err
	}
	got, err := c.Converter.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	cmp := &compare.Comparer{Attributes: c.Attributes, Locations: c.Locations}
	err = cmp.Compare(n, got)
	if err == nil {
		return got, nil
	}
	var mm *compare.Mismatch
	if !errors.As(err, &mm) {
		return got, err
	}
	f := &Failure{Mismatch: err, Document: data}
	f.Reread, _ = c.Converter.Marshal(got)
	ctx := c.Context
	if ctx < 0 {
		ctx = DefaultContext
	}
	f.Diff, err = libdiff.Lines("original", "reread", Dump(n), Dump(got), ctx)
	if err != nil {
		return got, err
	}
	return got, f
}

// CheckDocument reads data and checks the tree it holds.
func (c *Checker) CheckDocument(data []byte) (node.Node, error) {
	n, err := c.Converter.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return c.Check(n)
}

// Dump renders n one line per node, with properties and attributes, in a
// form suited to line diffs. Values holding nodes, directly or in arrays,
// are rendered in full below the line of their owner.
func Dump(n node.Node) string {
	buf := &strings.Builder{}
	dump(buf, "", n, 0)
	return buf.String()
}

func dump(buf *strings.Builder, indent string, n node.Node, depth int) {
	if depth > compare.DefaultMaxDepth {
		buf.WriteString(indent + "...\n")
		return
	}
	if n == nil {
		buf.WriteString(indent + "<nil>\n")
		return
	}
	buf.WriteString(indent)
	buf.WriteString(string(n.Type()))
	if loc := n.Location(); loc != nil {
		fmt.Fprintf(buf, " @%q", loc.String())
	}
	var deep []string
	for name, v := range n.Attributes().All() {
		if holdsNode(v) {
			deep = append(deep, name)
			continue
		}
		fmt.Fprintf(buf, " %s=%s", name, v)
	}
	buf.WriteByte('\n')
	for _, name := range deep {
		dumpValue(buf, indent+"  ", "@"+name, n.Attributes().Value(name), depth+1)
	}
	for name, v := range n.Properties().All() {
		if !v.IsNull() {
			dumpValue(buf, indent+"  ", "."+name, v, depth+1)
		}
	}
	for _, kid := range n.Children() {
		dump(buf, indent+"  ", kid, depth+1)
	}
}

func dumpValue(buf *strings.Builder, indent, label string, v node.Value, depth int) {
	switch {
	case v.Kind() == node.NodeKind:
		fmt.Fprintf(buf, "%s%s:\n", indent, label)
		dump(buf, indent+"  ", v.Node(), depth)
	case v.Kind() == node.ArrayKind && holdsNode(v):
		fmt.Fprintf(buf, "%s%s:\n", indent, label)
		for i, item := range v.Items() {
			dumpValue(buf, indent+"  ", fmt.Sprintf("[%d]", i), item, depth+1)
		}
	default:
		fmt.Fprintf(buf, "%s%s = %s\n", indent, label, v)
	}
}

func holdsNode(v node.Value) bool {
	switch v.Kind() {
	case node.NodeKind:
		return true
	case node.ArrayKind:
		for _, item := range v.Items() {
			if holdsNode(item) {
				return true
			}
		}
	}
	return false
}

// Normalize re-indents an XML document. Whitespace-only text is dropped
// unless it is all an element holds.
func Normalize(data []byte) (string, error) {
	buf := &bytes.Buffer{}
	enc := stream.NewEncoder(buf, stream.WithIndent("", "  "))
	src := &trimmed{src: stream.NewDecoder(bytes.NewReader(data))}
	if _, err := stream.Copy(enc, src); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

// trimmed merges adjacent text events and drops the whitespace between
// elements.
type trimmed struct {
	src stream.EventReader

	// leaf is set while no event followed the last start event
	leaf bool

	// event or error read ahead of a text event
	next *stream.Event
	err  error
}

func (t *trimmed) read() (*stream.Event, error) {
	if t.next != nil || t.err != nil {
		ev, err := t.next, t.err
		t.next, t.err = nil, nil
		return ev, err
	}
	return t.src.ReadEvent()
}

func (t *trimmed) ReadEvent() (*stream.Event, error) {
	for {
		ev, err := t.read()
		if err != nil {
			return nil, err
		}
		if ev.Type != stream.EventText {
			t.leaf = ev.Type == stream.EventStart
			return ev, nil
		}
		text := &strings.Builder{}
		text.WriteString(ev.Text)
		for {
			nx, err := t.src.ReadEvent()
			if err != nil {
				t.err = err
				break
			}
			if nx.Type != stream.EventText {
				t.next = nx
				break
			}
			text.WriteString(nx.Text)
		}
		leaf := t.leaf && t.next != nil && t.next.Type == stream.EventEnd
		t.leaf = false
		if strings.TrimSpace(text.String()) == "" && !leaf {
			continue
		}
		out := *ev
		out.Text = text.String()
		return &out, nil
	}
}

var _ stream.EventReader = (*trimmed)(nil)
