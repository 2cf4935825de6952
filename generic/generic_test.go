package generic_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sweble/parser-toolkit/compare"
	"github.com/sweble/parser-toolkit/generic"
	"github.com/sweble/parser-toolkit/node"
	"github.com/sweble/parser-toolkit/registry"
	"github.com/sweble/parser-toolkit/stream"
	"github.com/sweble/parser-toolkit/xmlconv"
)

const doc = `<article xmlns="urn:a" xmlns:ptk="http://sweble.org/schema/ptk">` +
	`<page><ptk:level ptk:type="int">2</ptk:level>` +
	`<heading><text>Hi</text></heading>` +
	`<para><text>one</text><link ptk:location="f 1,2"><ptk:target>x</ptk:target></link></para>` +
	`</page></article>`

func converter(t *testing.T) *xmlconv.Converter {
	t.Helper()
	reg := registry.New()
	for _, name := range []string{"article", "page", "heading-impl", "para", "text", "link"} {
		reg.MustRegister(node.Type(name), name)
	}
	c, err := xmlconv.New(reg,
		xmlconv.StringNodeType("text"),
		xmlconv.SuppressTypeInfo("heading-impl", "heading"),
		xmlconv.WithFactory(generic.Factory()),
		xmlconv.WithContainer("article", generic.ContainerOf("article"), xmlconv.Namespace{URI: "urn:a"}))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestRoundTrip(t *testing.T) {
	c := converter(t)
	ctr, err := c.UnmarshalContainer([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	page := ctr.Root().(*generic.Node)
	if diff := cmp.Diff([]string{"heading", "para"}, page.Slots()); diff != "" {
		t.Errorf("slots (-want +got):\n%s", diff)
	}
	if got := page.Children()[0].Type(); got != "heading-impl" {
		t.Errorf("heading read as %s", got)
	}
	out, err := c.MarshalContainer(ctr)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != doc {
		t.Errorf("got\n%s\nwant\n%s", out, doc)
	}
	again, err := c.Unmarshal(out)
	if err != nil {
		t.Fatal(err)
	}
	if err := compare.Compare(page, again, true, true); err != nil {
		t.Fatal(err)
	}
}

func TestNames(t *testing.T) {
	got, err := generic.Names(stream.NewDecoder(strings.NewReader(doc)))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"article", "heading", "link", "page", "para", "text"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := generic.Names(stream.NewDecoder(strings.NewReader("<a>"))); err == nil {
		t.Error("no error for unclosed document")
	}
}

func TestWalk(t *testing.T) {
	holder := generic.New("holder")
	holder.SetProperty("one", node.FromNode(generic.New("leaf")))
	holder.SetProperty("many", node.FromArray(node.FromInt(1), node.FromNode(generic.New("leaf"))))
	root := generic.New("root", holder, generic.New("leaf"))

	var got []string
	generic.Walk(root, 100, func(path string, n node.Node, depth int) bool {
		got = append(got, path+" "+string(n.Type()))
		return true
	})
	want := []string{
		"$ root",
		"$.children[0] holder",
		"$.children[0].props.one leaf",
		"$.children[0].props.many[1] leaf",
		"$.children[1] leaf",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	got = nil
	generic.Walk(root, 100, func(path string, n node.Node, depth int) bool {
		got = append(got, path)
		return n.Type() != "holder"
	})
	if len(got) != 3 {
		t.Errorf("pruned walk visited %v", got)
	}
}
