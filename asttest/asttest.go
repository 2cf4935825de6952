// Package asttest provides a small document vocabulary for exercising
// converters: documents made of sections, titles, bodies, text and urls,
// plus a few nodes whose only purpose is to carry unusual properties.
//
// All types are registered by [Registry] and built back by [Factory].
package asttest

import (
	"fmt"

	"github.com/sweble/parser-toolkit/node"
	"github.com/sweble/parser-toolkit/registry"
)

const (
	DocumentType               node.Type = "asttest.Document"
	SectionType                node.Type = "asttest.Section"
	TitleImplType              node.Type = "asttest.TitleImpl"
	EmptyTitleType             node.Type = "asttest.EmptyTitle"
	NoTitleType                node.Type = "asttest.NoTitle"
	BodyImplType               node.Type = "asttest.BodyImpl"
	EmptyBodyType              node.Type = "asttest.EmptyBody"
	NoBodyType                 node.Type = "asttest.NoBody"
	TextType                   node.Type = "asttest.Text"
	UrlType                    node.Type = "asttest.Url"
	IdNodeType                 node.Type = "asttest.IdNode"
	NodeWithObjPropType        node.Type = "asttest.NodeWithObjProp"
	NodeWithPropAndContentType node.Type = "asttest.NodeWithPropAndContent"
	ArticleContainerType       node.Type = "asttest.ArticleContainer"
)

// XMLNS is the default namespace declared by the article container.
const XMLNS = "http://sweble.org/schema/article"

var names = []registry.Entry{
	{Type: DocumentType, Name: "document"},
	{Type: SectionType, Name: "section"},
	{Type: TitleImplType, Name: "title-impl"},
	{Type: EmptyTitleType, Name: "empty-title"},
	{Type: NoTitleType, Name: "no-title"},
	{Type: BodyImplType, Name: "body-impl"},
	{Type: EmptyBodyType, Name: "empty-body"},
	{Type: NoBodyType, Name: "no-body"},
	{Type: TextType, Name: "text"},
	{Type: UrlType, Name: "url"},
	{Type: IdNodeType, Name: "id"},
	{Type: NodeWithObjPropType, Name: "obj-prop"},
	{Type: NodeWithPropAndContentType, Name: "prop-content"},
	{Type: ArticleContainerType, Name: "article-container"},
}

// Registry returns a new registry binding every type of the vocabulary.
func Registry() *registry.Registry {
	reg := registry.New()
	for _, e := range names {
		reg.MustRegister(e.Type, e.Name)
	}
	return reg
}

type Document struct{ node.Base }

func (*Document) Type() node.Type { return DocumentType }

// Get returns child i.
func (d *Document) Get(i int) node.Node { return d.Kids[i] }

type Section struct{ node.Base }

func (*Section) Type() node.Type { return SectionType }

// Slots names the title and body slots.
func (*Section) Slots() []string { return []string{"title", "body"} }

func (s *Section) Title() node.Node { return s.Kids[0] }
func (s *Section) Body() node.Node  { return s.Kids[1] }

func (s *Section) HasTitle() bool { return s.Kids[0].Type() != NoTitleType }
func (s *Section) HasBody() bool  { return s.Kids[1].Type() != NoBodyType }

func (s *Section) RemoveTitle() { s.Kids[0] = &NoTitle{} }
func (s *Section) RemoveBody()  { s.Kids[1] = &NoBody{} }

type TitleImpl struct{ node.Base }

func (*TitleImpl) Type() node.Type { return TitleImplType }

type EmptyTitle struct{ node.Base }

func (*EmptyTitle) Type() node.Type { return EmptyTitleType }

type NoTitle struct{ node.Base }

func (*NoTitle) Type() node.Type { return NoTitleType }

type BodyImpl struct{ node.Base }

func (*BodyImpl) Type() node.Type { return BodyImplType }

type EmptyBody struct{ node.Base }

func (*EmptyBody) Type() node.Type { return EmptyBodyType }

type NoBody struct{ node.Base }

func (*NoBody) Type() node.Type { return NoBodyType }

// Text is a textual leaf holding its text in the "content" property.
type Text struct{ node.Base }

func (*Text) Type() node.Type { return TextType }

func (t *Text) Content() string { return t.Props.Value("content").Text() }

type Url struct{ node.Base }

func (*Url) Type() node.Type { return UrlType }

func (u *Url) Protocol() string { return u.Props.Value("protocol").Text() }
func (u *Url) Path() string     { return u.Props.Value("path").Text() }

func (u *Url) WithProtocol(p string) *Url {
	u.SetProperty("protocol", node.FromString(p))
	return u
}

func (u *Url) WithPath(p string) *Url {
	u.SetProperty("path", node.FromString(p))
	return u
}

type IdNode struct{ node.Base }

func (*IdNode) Type() node.Type { return IdNodeType }

// NodeWithObjProp carries an arbitrary value in property "prop".
type NodeWithObjProp struct{ node.Base }

func (*NodeWithObjProp) Type() node.Type { return NodeWithObjPropType }

// NodeWithPropAndContent has both text content and another property.
type NodeWithPropAndContent struct{ node.Base }

func (*NodeWithPropAndContent) Type() node.Type { return NodeWithPropAndContentType }

// ArticleContainer wraps a document.
type ArticleContainer struct {
	Doc *Document
}

func (*ArticleContainer) Type() node.Type { return ArticleContainerType }

func (a *ArticleContainer) Root() node.Node { return a.Doc }

// NewArticleContainer is the container constructor used when reading.
func NewArticleContainer(root node.Node) (node.Container, error) {
	doc, ok := root.(*Document)
	if !ok {
		return nil, fmt.Errorf("article container root must be a document, got %s", root.Type())
	}
	return &ArticleContainer{Doc: doc}, nil
}
