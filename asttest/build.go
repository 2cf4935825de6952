package asttest

import "github.com/sweble/parser-toolkit/node"

func Doc(kids ...node.Node) *Document {
	d := &Document{}
	d.Append(kids...)
	return d
}

// Sec returns a section with a one-text title and a one-text body.
func Sec() *Section {
	title := &TitleImpl{}
	title.Append(Txt("Section Title"))
	body := &BodyImpl{}
	body.Append(Txt("Section Body"))
	s := &Section{}
	s.SetProperty("level", node.FromInt(1))
	s.Append(title, body)
	return s
}

func Txt(content string) *Text {
	t := &Text{}
	t.SetProperty("content", node.FromString(content))
	return t
}

func NewUrl() *Url {
	return (&Url{}).WithProtocol("http").WithPath("example.org")
}

func Id(id int64) *IdNode {
	n := &IdNode{}
	n.SetProperty("id", node.FromInt(id))
	return n
}

func ObjProp(v node.Value) *NodeWithObjProp {
	n := &NodeWithObjProp{}
	n.SetProperty("prop", v)
	return n
}

func PropContent(prop node.Value, content string) *NodeWithPropAndContent {
	n := &NodeWithPropAndContent{}
	n.SetProperty("prop", prop)
	n.SetProperty("content", node.FromString(content))
	return n
}

// WithLocations returns a document with located text and url children.
func WithLocations() *Document {
	text := Txt("Hello")
	text.SetLocation(&node.Location{Source: "some file", Start: 42, End: 43})
	url := NewUrl()
	url.SetLocation(&node.Location{Source: "some file", Start: 44, End: 45})
	return Doc(text, url)
}

// WithAttributes returns a document with one url carrying two attributes.
func WithAttributes() *Document {
	url := NewUrl()
	url.SetAttribute("area51", node.FromString("Hello World 1"))
	url.SetAttribute("area52", node.FromString("Hello World 2"))
	return Doc(url)
}
