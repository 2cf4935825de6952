package stream

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Decoder reads element and text events from XML input.
type Decoder struct {
	xd    *xml.Decoder
	opts  streamOpts
	state *State
	err   error
}

// NewDecoder creates a new Decoder reading from r.
func NewDecoder(r io.Reader, opts ...StreamOption) *Decoder {
	dec := &Decoder{xd: xml.NewDecoder(r), state: NewState()}
	for _, opt := range opts {
		opt(&dec.opts)
	}
	return dec
}

// Depth returns the number of open elements.
func (d *Decoder) Depth() int {
	return d.state.Depth()
}

// CurrentPath returns the path of open elements.
func (d *Decoder) CurrentPath() string {
	return d.state.CurrentPath()
}

// ReadEvent reads the next event. It returns io.EOF once the input is
// exhausted after a complete document, or an error matching ErrSyntax.
// Errors are sticky.
func (d *Decoder) ReadEvent() (*Event, error) {
	if d.err != nil {
		return nil, d.err
	}
	ev, err := d.readEvent()
	if err != nil {
		d.err = err
	}
	return ev, err
}

func (d *Decoder) readEvent() (*Event, error) {
	for {
		line, col := d.xd.InputPos()
		tok, err := d.xd.RawToken()
		if errors.Is(err, io.EOF) {
			if d.state.Depth() != 0 {
				return nil, d.errorAt(line, col, "unexpected end of input inside %q", d.state.Current())
			}
			return nil, io.EOF
		}
		if err != nil {
			var synErr *xml.SyntaxError
			if errors.As(err, &synErr) {
				return nil, &Error{Msg: synErr.Msg, Path: d.state.CurrentPath(), Line: synErr.Line}
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if d.state.Depth() == 0 && d.state.Roots() > 0 {
				return nil, d.errorAt(line, col, "second root element %q", qualified(t.Name))
			}
			ev := &Event{Type: EventStart, Name: qualified(t.Name), Line: line, Col: col}
			if len(t.Attr) > 0 {
				ev.Attrs = make([]Attr, len(t.Attr))
				for i, attr := range t.Attr {
					ev.Attrs[i] = Attr{Name: qualified(attr.Name), Value: attr.Value}
				}
			}
			d.state.Push(ev.Name)
			return ev, nil
		case xml.EndElement:
			name := qualified(t.Name)
			if cur := d.state.Current(); cur != name {
				return nil, d.errorAt(line, col, "element <%s> closed by </%s>", cur, name)
			}
			d.state.Pop()
			return &Event{Type: EventEnd, Name: name, Line: line, Col: col}, nil
		case xml.CharData:
			if d.state.Depth() == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, d.errorAt(line, col, "text outside of root element")
				}
				continue
			}
			return &Event{Type: EventText, Text: string(t), Line: line, Col: col}, nil
		default:
			// comments, processing instructions, directives
			continue
		}
	}
}

func (d *Decoder) errorAt(line, col int, format string, args ...any) error {
	return &Error{
		Msg:  fmt.Sprintf(format, args...),
		Path: d.state.CurrentPath(),
		Line: line,
		Col:  col,
	}
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
