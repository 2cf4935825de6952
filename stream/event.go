package stream

import "fmt"

// Event represents a structural event. Events correspond to the encoder's
// API methods, providing a symmetric encode/decode interface.
type Event struct {
	Type EventType

	// Name is the qualified element name for EventStart and EventEnd.
	Name string

	// Attrs holds the attributes of an EventStart in document order.
	Attrs []Attr

	// Text holds the character data of an EventText.
	Text string

	// Line and Col give the input position of decoded events, 1-based.
	Line int
	Col  int
}

// Attr is an attribute with its qualified name.
type Attr struct {
	Name  string
	Value string
}

// Attr returns the value of the attribute named name.
func (e *Event) Attr(name string) (string, bool) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			return e.Attrs[i].Value, true
		}
	}
	return "", false
}

func (e *Event) String() string {
	switch e.Type {
	case EventStart:
		return fmt.Sprintf("%s(%s %v)", e.Type, e.Name, e.Attrs)
	case EventEnd:
		return fmt.Sprintf("%s(%s)", e.Type, e.Name)
	default:
		return fmt.Sprintf("%s(%q)", e.Type, e.Text)
	}
}

// EventType represents the type of a structural event.
type EventType int

const (
	EventStart EventType = iota
	EventEnd
	EventText
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "Start"
	case EventEnd:
		return "End"
	case EventText:
		return "Text"
	default:
		return fmt.Sprintf("EventType(%d)", t)
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	switch string(d) {
	case "Start":
		*t = EventStart
	case "End":
		*t = EventEnd
	case "Text":
		*t = EventText
	default:
		return fmt.Errorf("unrecognized event type %q", d)
	}
	return nil
}
