package stream

import (
	"encoding/xml"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"
)

// Encoder writes element and text events as XML.
type Encoder struct {
	w       io.Writer
	xe      *xml.Encoder
	opts    streamOpts
	state   *State
	started bool
	closed  bool
}

// NewEncoder creates a new Encoder writing to w.
func NewEncoder(w io.Writer, opts ...StreamOption) *Encoder {
	enc := &Encoder{w: w, state: NewState()}
	for _, opt := range opts {
		opt(&enc.opts)
	}
	enc.xe = xml.NewEncoder(w)
	if enc.opts.prefix != "" || enc.opts.indent != "" {
		enc.xe.Indent(enc.opts.prefix, enc.opts.indent)
	}
	return enc
}

// Depth returns the number of open elements.
func (e *Encoder) Depth() int {
	return e.state.Depth()
}

// CurrentPath returns the path of open elements.
func (e *Encoder) CurrentPath() string {
	return e.state.CurrentPath()
}

// Start opens an element.
func (e *Encoder) Start(name string, attrs ...Attr) error {
	if e.closed {
		return e.errorf("start of %q after close", name)
	}
	if e.state.Depth() == 0 && e.state.Roots() > 0 {
		return e.errorf("second root element %q", name)
	}
	if !validName(name) {
		return e.errorf("invalid element name %q", name)
	}
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if len(attrs) > 0 {
		start.Attr = make([]xml.Attr, len(attrs))
	}
	for i, attr := range attrs {
		if !validName(attr.Name) {
			return e.errorf("invalid attribute name %q on %q", attr.Name, name)
		}
		if !validText(attr.Value) {
			return e.errorf("attribute %q of %q has invalid characters", attr.Name, name)
		}
		start.Attr[i] = xml.Attr{Name: xml.Name{Local: attr.Name}, Value: attr.Value}
	}
	if !e.started {
		e.started = true
		if e.opts.header {
			if _, err := io.WriteString(e.w, xml.Header); err != nil {
				return err
			}
		}
	}
	if err := e.xe.EncodeToken(start); err != nil {
		return e.wrap(err)
	}
	e.state.Push(name)
	return nil
}

// End closes the innermost open element.
func (e *Encoder) End() error {
	name, ok := e.state.Pop()
	if !ok {
		return e.errorf("end without open element")
	}
	if err := e.xe.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}}); err != nil {
		return e.wrap(err)
	}
	return nil
}

// Text writes character data inside the current element.
func (e *Encoder) Text(s string) error {
	if e.state.Depth() == 0 {
		return e.errorf("text outside of root element")
	}
	if !validText(s) {
		return e.errorf("text has invalid characters")
	}
	if s == "" {
		return nil
	}
	if err := e.xe.EncodeToken(xml.CharData(s)); err != nil {
		return e.wrap(err)
	}
	return nil
}

// WriteEvent implements EventSink. An EventEnd with a name must close the
// element of that name.
func (e *Encoder) WriteEvent(ev *Event) error {
	switch ev.Type {
	case EventStart:
		return e.Start(ev.Name, ev.Attrs...)
	case EventEnd:
		if ev.Name != "" && ev.Name != e.state.Current() {
			return e.errorf("end of %q does not match open element %q", ev.Name, e.state.Current())
		}
		return e.End()
	case EventText:
		return e.Text(ev.Text)
	default:
		return e.errorf("unknown event type %s", ev.Type)
	}
}

// Close flushes buffered output and checks that the document is complete.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if e.state.Depth() != 0 {
		return e.errorf("unclosed element %q", e.state.Current())
	}
	if e.state.Roots() == 0 {
		return e.errorf("no root element")
	}
	if err := e.xe.Close(); err != nil {
		return e.wrap(err)
	}
	return nil
}

func (e *Encoder) errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Path: e.state.CurrentPath()}
}

func (e *Encoder) wrap(err error) error {
	return fmt.Errorf("%w: %w", &Error{Msg: "encode", Path: e.state.CurrentPath()}, err)
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_' || c == ':' || unicode.IsLetter(c):
		case i > 0 && (c == '-' || c == '.' || unicode.IsDigit(c)):
		default:
			return false
		}
	}
	return true
}

// validText reports whether s consists of characters allowed in XML 1.0.
func validText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == 0x09 || r == 0x0A || r == 0x0D:
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}
