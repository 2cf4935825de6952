package stream

import (
	"strconv"
	"strings"
)

// State tracks the open elements of a document and the position of each
// among its element siblings.
type State struct {
	stack []frame
	roots int
}

type frame struct {
	name  string
	index int
	kids  int
}

// NewState creates a new State for tracking element nesting.
func NewState() *State {
	return &State{}
}

// Push records the start of an element.
func (s *State) Push(name string) {
	idx := s.roots
	if n := len(s.stack); n > 0 {
		idx = s.stack[n-1].kids
		s.stack[n-1].kids++
	} else {
		s.roots++
	}
	s.stack = append(s.stack, frame{name: name, index: idx})
}

// Pop records the end of the current element and returns its name.
func (s *State) Pop() (string, bool) {
	n := len(s.stack)
	if n == 0 {
		return "", false
	}
	top := s.stack[n-1]
	s.stack = s.stack[:n-1]
	return top.name, true
}

// Current returns the name of the innermost open element.
func (s *State) Current() string {
	n := len(s.stack)
	if n == 0 {
		return ""
	}
	return s.stack[n-1].name
}

func (s *State) Depth() int {
	return len(s.stack)
}

// Roots returns the number of top-level elements started so far.
func (s *State) Roots() int {
	return s.roots
}

// CurrentPath renders the open elements as "/root/child[i]/...", where i
// is the element's index among its parent's element children.
func (s *State) CurrentPath() string {
	if len(s.stack) == 0 {
		return "/"
	}
	buf := &strings.Builder{}
	for i, f := range s.stack {
		buf.WriteByte('/')
		buf.WriteString(f.name)
		if i > 0 {
			buf.WriteByte('[')
			buf.WriteString(strconv.Itoa(f.index))
			buf.WriteByte(']')
		}
	}
	return buf.String()
}
