package xmlconv_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sweble/parser-toolkit/asttest"
	"github.com/sweble/parser-toolkit/compare"
	"github.com/sweble/parser-toolkit/node"
	"github.com/sweble/parser-toolkit/stream"
	"github.com/sweble/parser-toolkit/xmlconv"
)

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{
			name: "empty",
			in:   "",
			want: xmlconv.ErrFormat,
		},
		{
			name: "unknown root",
			in:   `<nope/>`,
			want: xmlconv.ErrUnknownType,
		},
		{
			name: "unknown discriminator",
			in:   `<obj-prop ` + ptkDecl + `><ptk:prop ptk:type="node" ptk:node="nope"/></obj-prop>`,
			want: xmlconv.ErrUnknownType,
		},
		{
			name: "node value without type",
			in:   `<obj-prop ` + ptkDecl + `><ptk:prop ptk:type="node"/></obj-prop>`,
			want: xmlconv.ErrAmbiguousType,
		},
		{
			name: "unknown child",
			in:   `<document ` + ptkDecl + `><nope/></document>`,
			want: xmlconv.ErrAmbiguousType,
		},
		{
			name: "malformed location",
			in:   `<text ` + ptkDecl + ` ptk:location="nowhere">x</text>`,
			want: xmlconv.ErrFormat,
		},
		{
			name: "unknown reserved attribute",
			in:   `<text ` + ptkDecl + ` ptk:color="red">x</text>`,
			want: xmlconv.ErrFormat,
		},
		{
			name: "unknown value type",
			in:   `<id ` + ptkDecl + `><ptk:id ptk:type="decimal">1</ptk:id></id>`,
			want: xmlconv.ErrFormat,
		},
		{
			name: "bad int",
			in:   `<id ` + ptkDecl + `><ptk:id ptk:type="int">one</ptk:id></id>`,
			want: xmlconv.ErrFormat,
		},
		{
			name: "bad bool",
			in:   `<obj-prop ` + ptkDecl + `><ptk:prop ptk:type="bool">maybe</ptk:prop></obj-prop>`,
			want: xmlconv.ErrFormat,
		},
		{
			name: "duplicate property",
			in:   `<url ` + ptkDecl + `><ptk:path>a</ptk:path><ptk:path>b</ptk:path></url>`,
			want: xmlconv.ErrFormat,
		},
		{
			name: "foreign array item",
			in:   `<obj-prop ` + ptkDecl + `><ptk:prop ptk:type="array"><item/></ptk:prop></obj-prop>`,
			want: xmlconv.ErrFormat,
		},
		{
			name: "element in string value",
			in:   `<url ` + ptkDecl + `><ptk:path>a<text/></ptk:path></url>`,
			want: xmlconv.ErrFormat,
		},
		{
			name: "text in document",
			in:   `<document ` + ptkDecl + `>stray<text>x</text></document>`,
			want: xmlconv.ErrFormat,
		},
		{
			name: "unclosed",
			in:   `<document ` + ptkDecl + `><text>x</text>`,
			want: xmlconv.ErrFormat,
		},
		{
			name: "mismatched end",
			in:   `<document ` + ptkDecl + `><text>x</url></document>`,
			want: xmlconv.ErrFormat,
		},
	}
	c := newConverter(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Unmarshal([]byte(tc.in))
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			var convErr *xmlconv.Error
			if !errors.As(err, &convErr) {
				t.Fatalf("got %T, want *xmlconv.Error", err)
			}
			if convErr.Op != xmlconv.OpDecode {
				t.Errorf("got op %q", convErr.Op)
			}
		})
	}
}

func TestDecodeErrorPosition(t *testing.T) {
	in := "<document " + ptkDecl + ">\n  <text ptk:location=\"nowhere\">x</text>\n</document>"
	_, err := newConverter(t).Unmarshal([]byte(in))
	var convErr *xmlconv.Error
	if !errors.As(err, &convErr) {
		t.Fatalf("got %v", err)
	}
	if convErr.Line != 2 {
		t.Errorf("got line %d, want 2", convErr.Line)
	}
	if convErr.Path != "/document/text[0]" {
		t.Errorf("got path %q", convErr.Path)
	}
}

func TestExplicitRootMismatch(t *testing.T) {
	c := newConverter(t, xmlconv.ExplicitRoots(true))
	for _, in := range []string{
		`<document ` + ptkDecl + `><section/></document>`,
		`<document ` + ptkDecl + `></document>`,
		`<document ` + ptkDecl + `><document/><document/></document>`,
	} {
		if _, err := c.Unmarshal([]byte(in)); !errors.Is(err, xmlconv.ErrFormat) {
			t.Errorf("%s: got %v, want %v", in, err, xmlconv.ErrFormat)
		}
	}
}

func TestDecodeContainerOfPlainDocument(t *testing.T) {
	_, err := newConverter(t).UnmarshalContainer([]byte(`<document ` + ptkDecl + `/>`))
	if !errors.Is(err, xmlconv.ErrFormat) {
		t.Fatalf("got %v, want %v", err, xmlconv.ErrFormat)
	}
}

func TestNoFactory(t *testing.T) {
	c, err := xmlconv.New(asttest.Registry())
	if err != nil {
		t.Fatal(err)
	}
	data, err := c.Marshal(asttest.Doc(asttest.Txt("x")))
	if err != nil {
		t.Fatalf("encoding needs no factory: %v", err)
	}
	if _, err := c.Unmarshal(data); !errors.Is(err, xmlconv.ErrNoFactory) {
		t.Fatalf("got %v, want %v", err, xmlconv.ErrNoFactory)
	}
}

func TestFactoryErrors(t *testing.T) {
	failing := node.Dispatch{
		asttest.DocumentType: func(*node.Parts) (node.Node, error) { return nil, nil },
	}
	c, err := xmlconv.New(asttest.Registry(), xmlconv.WithFactory(failing))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Unmarshal([]byte(`<document/>`)); !errors.Is(err, xmlconv.ErrFormat) {
		t.Errorf("nil node: got %v, want %v", err, xmlconv.ErrFormat)
	}
	if _, err := c.Unmarshal([]byte(`<url/>`)); !errors.Is(err, node.ErrNoConstructor) {
		t.Errorf("missing constructor: got %v, want %v", err, node.ErrNoConstructor)
	}
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		opt  xmlconv.Option
	}{
		{name: "unregistered string type", opt: xmlconv.StringNodeType("nope")},
		{name: "zero depth", opt: xmlconv.MaxDepth(0)},
		{name: "type info without slot", opt: xmlconv.SuppressTypeInfo(asttest.EmptyBodyType)},
		{name: "unregistered type info", opt: xmlconv.SuppressTypeInfo("nope", "slot")},
		{name: "content slot", opt: xmlconv.SuppressTypeInfo(asttest.EmptyBodyType, "content")},
		{name: "invalid slot", opt: xmlconv.SuppressTypeInfo(asttest.EmptyBodyType, "a b")},
		{name: "slot hides type", opt: xmlconv.SuppressTypeInfo(asttest.TextType, "url")},
		{name: "invalid attribute", opt: xmlconv.SuppressAttribute("1st")},
		{name: "duplicate container", opt: xmlconv.WithContainer(asttest.ArticleContainerType, asttest.NewArticleContainer)},
		{name: "container without constructor", opt: xmlconv.WithContainer(asttest.DocumentType, nil)},
		{name: "unregistered container", opt: xmlconv.WithContainer("nope", asttest.NewArticleContainer)},
		{
			name: "ptk rebound",
			opt: xmlconv.WithContainer(asttest.IdNodeType, asttest.NewArticleContainer,
				xmlconv.Namespace{Prefix: "ptk", URI: "urn:other"}),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := xmlconv.New(asttest.Registry(),
				xmlconv.WithContainer(asttest.ArticleContainerType, asttest.NewArticleContainer),
				tc.opt)
			if !errors.Is(err, xmlconv.ErrConfig) {
				t.Fatalf("got %v, want %v", err, xmlconv.ErrConfig)
			}
		})
	}
	if _, err := xmlconv.New(nil); !errors.Is(err, xmlconv.ErrConfig) {
		t.Errorf("nil registry: got %v", err)
	}
}

func TestRegistrySnapshot(t *testing.T) {
	reg := asttest.Registry()
	c, err := xmlconv.New(reg, xmlconv.WithFactory(asttest.Factory()))
	if err != nil {
		t.Fatal(err)
	}
	reg.MustRegister("later", "later")
	if c.Registry().Has("later") {
		t.Error("converter sees later registrations")
	}
}

func nested(levels int) node.Node {
	n := asttest.Doc()
	for i := 1; i < levels; i++ {
		n = asttest.Doc(n)
	}
	return n
}

func TestDepth(t *testing.T) {
	// five documents nest to depth 4
	doc := nested(5)
	roundTrip(t, newConverter(t, xmlconv.MaxDepth(4)), doc)

	c := newConverter(t, xmlconv.MaxDepth(3))
	if _, err := c.Marshal(doc); !errors.Is(err, xmlconv.ErrDepth) {
		t.Errorf("encode: got %v, want %v", err, xmlconv.ErrDepth)
	}
	in := strings.Repeat("<document>", 5) + strings.Repeat("</document>", 5)
	if _, err := c.Unmarshal([]byte(in)); !errors.Is(err, xmlconv.ErrDepth) {
		t.Errorf("decode: got %v, want %v", err, xmlconv.ErrDepth)
	}

	// values count towards the depth
	deep := asttest.ObjProp(node.FromArray(node.FromArray(node.FromArray(node.FromInt(1)))))
	if _, err := c.Marshal(deep); !errors.Is(err, xmlconv.ErrDepth) {
		t.Errorf("encode value: got %v, want %v", err, xmlconv.ErrDepth)
	}
}

func TestCycle(t *testing.T) {
	doc := asttest.Doc()
	doc.Append(doc)
	_, err := newConverter(t, xmlconv.MaxDepth(50)).Marshal(doc)
	if !errors.Is(err, xmlconv.ErrDepth) {
		t.Fatalf("got %v, want %v", err, xmlconv.ErrDepth)
	}
}

func TestEvents(t *testing.T) {
	c := newConverter(t)
	doc := asttest.Doc(asttest.Sec(), asttest.NewUrl())
	buf := stream.NewBuffer()
	if err := c.EncodeEvents(buf, doc); err != nil {
		t.Fatal(err)
	}
	first := buf.Events()[0]
	if first.Type != stream.EventStart || first.Name != "document" {
		t.Fatalf("got first event %v", first)
	}
	if v, ok := first.Attr("xmlns:ptk"); !ok || v != node.NamespacePTK {
		t.Errorf("got ptk declaration %q", v)
	}
	got, ctr, err := c.DecodeEvents(buf)
	if err != nil {
		t.Fatal(err)
	}
	if ctr != nil {
		t.Errorf("got container %v", ctr)
	}
	if err := compare.Compare(doc, got, true, true); err != nil {
		t.Fatal(err)
	}
}

type observation struct {
	op    string
	nodes int
	err   error
}

func TestObserver(t *testing.T) {
	var seen []observation
	obs := xmlconv.ObserverFunc(func(op string, nodes int, _ time.Duration, err error) {
		seen = append(seen, observation{op: op, nodes: nodes, err: err})
	})
	c := newConverter(t, xmlconv.WithObserver(obs))
	// document, two sections, two titles, two bodies, four texts
	doc := asttest.Doc(asttest.Sec(), asttest.Sec())
	roundTrip(t, c, doc)
	if _, err := c.Unmarshal([]byte("<nope/>")); err == nil {
		t.Fatal("no error")
	}

	if len(seen) != 3 {
		t.Fatalf("got %d observations, want 3", len(seen))
	}
	if seen[0].op != xmlconv.OpEncode || seen[0].nodes != 11 || seen[0].err != nil {
		t.Errorf("encode: got %+v", seen[0])
	}
	if seen[1].op != xmlconv.OpDecode || seen[1].nodes != 11 || seen[1].err != nil {
		t.Errorf("decode: got %+v", seen[1])
	}
	if seen[2].op != xmlconv.OpDecode || !errors.Is(seen[2].err, xmlconv.ErrUnknownType) {
		t.Errorf("failed decode: got %+v", seen[2])
	}
}
