// Package generic provides a node whose type is its registry name, for
// converting documents without a Go vocabulary of their own.
package generic

import (
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/sweble/parser-toolkit/node"
	"github.com/sweble/parser-toolkit/stream"
	"github.com/sweble/parser-toolkit/xmlconv"
)

// Node is a node of any type. Names records the slot of each child as it
// was read, so a node written back lands under the same element names.
type Node struct {
	node.Base
	T     node.Type
	Names []string
}

func New(t node.Type, kids ...node.Node) *Node {
	n := &Node{T: t}
	n.Append(kids...)
	return n
}

func (n *Node) Type() node.Type  { return n.T }
func (n *Node) Slots() []string { return n.Names }

// Factory builds a Node for every type.
func Factory() node.Factory {
	return node.FactoryFunc(func(p *node.Parts) (node.Node, error) {
		n := &Node{T: p.Type, Names: slices.Clone(p.Slots)}
		n.Fill(p)
		return n, nil
	})
}

type Container struct {
	T    node.Type
	Node node.Node
}

func (c *Container) Type() node.Type { return c.T }
func (c *Container) Root() node.Node { return c.Node }

// ContainerOf returns the constructor of containers of type t.
func ContainerOf(t node.Type) xmlconv.ContainerFunc {
	return func(root node.Node) (node.Container, error) {
		return &Container{T: t, Node: root}, nil
	}
}

// Names returns the distinct element names of a document that are not
// property elements, in sorted order. They include container and slot
// names.
func Names(src stream.EventReader) ([]string, error) {
	seen := map[string]bool{}
	for {
		ev, err := src.ReadEvent()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if ev.Type != stream.EventStart || ev.Name == "content" || strings.HasPrefix(ev.Name, "ptk:") {
			continue
		}
		seen[ev.Name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// WalkFunc is called for every node reached by Walk with its path, e.g.
// "$.children[1].props.prop". Returning false skips the node's
// descendants.
type WalkFunc func(path string, n node.Node, depth int) bool

// Walk visits n and its descendants in document order, including nodes
// held by properties. It stops descending at maxDepth.
func Walk(n node.Node, maxDepth int, f WalkFunc) {
	walk("$", n, 0, maxDepth, f)
}

func walk(path string, n node.Node, depth, maxDepth int, f WalkFunc) {
	if n == nil || depth > maxDepth || !f(path, n, depth) {
		return
	}
	for name, v := range n.Properties().All() {
		walkValue(path+".props."+name, v, depth+1, maxDepth, f)
	}
	for i, kid := range n.Children() {
		walk(path+".children["+strconv.Itoa(i)+"]", kid, depth+1, maxDepth, f)
	}
}

func walkValue(path string, v node.Value, depth, maxDepth int, f WalkFunc) {
	switch v.Kind() {
	case node.NodeKind:
		walk(path, v.Node(), depth, maxDepth, f)
	case node.ArrayKind:
		for i, item := range v.Items() {
			walkValue(path+"["+strconv.Itoa(i)+"]", item, depth+1, maxDepth, f)
		}
	}
}
