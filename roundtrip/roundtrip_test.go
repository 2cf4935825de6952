package roundtrip_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sweble/parser-toolkit/asttest"
	"github.com/sweble/parser-toolkit/compare"
	"github.com/sweble/parser-toolkit/node"
	"github.com/sweble/parser-toolkit/roundtrip"
	"github.com/sweble/parser-toolkit/xmlconv"
)

func converter(t *testing.T, opts ...xmlconv.Option) *xmlconv.Converter {
	t.Helper()
	base := []xmlconv.Option{
		xmlconv.StringNodeType(asttest.TextType),
		xmlconv.SuppressNode(asttest.NoTitleType, asttest.NoBodyType),
		xmlconv.SuppressTypeInfo(asttest.TitleImplType, "title"),
		xmlconv.SuppressTypeInfo(asttest.BodyImplType, "body"),
		xmlconv.WithFactory(asttest.Factory()),
	}
	c, err := xmlconv.New(asttest.Registry(), append(base, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCheck(t *testing.T) {
	ck := roundtrip.New(converter(t))
	doc := asttest.Doc(asttest.Sec(), asttest.NewUrl(), asttest.Txt("x"))
	got, err := ck.Check(doc)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(roundtrip.Dump(doc), roundtrip.Dump(got)); diff != "" {
		t.Errorf("dump mismatch (-want +got):\n%s", diff)
	}
}

func TestFailure(t *testing.T) {
	ck := roundtrip.New(converter(t, xmlconv.SuppressEmptyStringNodes(true)))
	_, err := ck.Check(asttest.Doc(asttest.Txt(""), asttest.Txt("x")))
	var f *roundtrip.Failure
	if !errors.As(err, &f) {
		t.Fatalf("got %v, want *Failure", err)
	}
	if !errors.Is(err, compare.ErrMismatch) {
		t.Errorf("failure does not wrap the mismatch: %v", err)
	}
	if !strings.HasPrefix(f.Diff, "--- original\n+++ reread\n") {
		t.Errorf("got diff\n%s", f.Diff)
	}
	if !strings.Contains(f.Diff, `-    .content = ""`) {
		t.Errorf("lost text missing from diff\n%s", f.Diff)
	}
	if string(f.Document) != string(f.Reread) {
		t.Errorf("documents differ:\n%s\n%s", f.Document, f.Reread)
	}
}

func TestCheckDocument(t *testing.T) {
	ck := roundtrip.New(converter(t))
	in := `<document xmlns:ptk="` + node.NamespacePTK + `"><text>Hello</text></document>`
	got, err := ck.CheckDocument([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if got.Type() != asttest.DocumentType {
		t.Errorf("got %s", got.Type())
	}
	if _, err := ck.CheckDocument([]byte("<nope/>")); !errors.Is(err, xmlconv.ErrUnknownType) {
		t.Errorf("got %v", err)
	}
}

func TestDump(t *testing.T) {
	url := asttest.NewUrl()
	url.SetAttribute("lang", node.FromString("en"))
	url.SetLocation(&node.Location{Source: "f", Start: 1, End: 2})
	doc := asttest.Doc(url, asttest.ObjProp(node.FromNode(asttest.Id(7))))
	want := `asttest.Document
  asttest.Url @"f 1,2" lang="en"
    .protocol = "http"
    .path = "example.org"
  asttest.NodeWithObjProp
    .prop:
      asttest.IdNode
        .id = 7
`
	if diff := cmp.Diff(want, roundtrip.Dump(doc)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDumpNodesInValues(t *testing.T) {
	doc := asttest.Doc(asttest.ObjProp(node.FromArray(node.FromNode(asttest.Id(1)), node.FromString("x"))))
	doc.SetAttribute("pair", node.FromArray(node.FromNode(asttest.Txt("a")), node.FromInt(2)))
	doc.SetAttribute("n", node.FromArray(node.FromInt(1), node.FromInt(2)))
	want := `asttest.Document n=[1, 2]
  @pair:
    [0]:
      asttest.Text
        .content = "a"
    [1] = 2
  asttest.NodeWithObjProp
    .prop:
      [0]:
        asttest.IdNode
          .id = 1
      [1] = "x"
`
	if diff := cmp.Diff(want, roundtrip.Dump(doc)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNormalize(t *testing.T) {
	got, err := roundtrip.Normalize([]byte("<a>\n<b>x</b>   <c/></a>"))
	if err != nil {
		t.Fatal(err)
	}
	want := "<a>\n  <b>x</b>\n  <c></c>\n</a>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got, err = roundtrip.Normalize([]byte("<a>\n  <b> </b>\n  <c>\n    <d>x</d>\n  </c>\n</a>"))
	if err != nil {
		t.Fatal(err)
	}
	want = "<a>\n  <b> </b>\n  <c>\n    <d>x</d>\n  </c>\n</a>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if _, err := roundtrip.Normalize([]byte("<a>")); err == nil {
		t.Error("no error for unclosed element")
	}
}
