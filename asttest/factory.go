package asttest

import (
	"github.com/sweble/parser-toolkit/node"
)

// Factory returns the factory building every type of the vocabulary.
//
// Sections get placeholder NoTitle and NoBody children for missing slots,
// and urls get empty strings for missing protocol and path, so trees with
// suppressed placeholders or empty properties compare equal after a round
// trip.
func Factory() node.Factory {
	return node.Dispatch{
		DocumentType:               fill(func() filler { return &Document{} }),
		SectionType:                section,
		TitleImplType:              fill(func() filler { return &TitleImpl{} }),
		EmptyTitleType:             fill(func() filler { return &EmptyTitle{} }),
		NoTitleType:                fill(func() filler { return &NoTitle{} }),
		BodyImplType:               fill(func() filler { return &BodyImpl{} }),
		EmptyBodyType:              fill(func() filler { return &EmptyBody{} }),
		NoBodyType:                 fill(func() filler { return &NoBody{} }),
		TextType:                   fill(func() filler { return &Text{} }),
		UrlType:                    url,
		IdNodeType:                 fill(func() filler { return &IdNode{} }),
		NodeWithObjPropType:        fill(func() filler { return &NodeWithObjProp{} }),
		NodeWithPropAndContentType: fill(func() filler { return &NodeWithPropAndContent{} }),
	}
}

type filler interface {
	node.Node
	Fill(*node.Parts)
}

func fill(mk func() filler) node.FactoryFunc {
	return func(p *node.Parts) (node.Node, error) {
		n := mk()
		n.Fill(p)
		return n, nil
	}
}

func section(p *node.Parts) (node.Node, error) {
	s := &Section{}
	s.Fill(p)
	var title, body node.Node = &NoTitle{}, &NoBody{}
	for _, kid := range p.Children {
		switch kid.Type() {
		case TitleImplType, EmptyTitleType, NoTitleType:
			title = kid
		case BodyImplType, EmptyBodyType, NoBodyType:
			body = kid
		}
	}
	s.Kids = []node.Node{title, body}
	return s, nil
}

func url(p *node.Parts) (node.Node, error) {
	u := &Url{}
	u.Fill(p)
	for _, name := range []string{"protocol", "path"} {
		if u.Props.Value(name).IsNull() {
			u.SetProperty(name, node.FromString(""))
		}
	}
	return u, nil
}
