package stream

import (
	"errors"
	"io"
	"slices"
)

// EventReader provides events from a source.
type EventReader interface {
	ReadEvent() (*Event, error)
}

// EventSink receives events.
type EventSink interface {
	WriteEvent(*Event) error
}

// Buffer records events written to it and replays them in order.
type Buffer struct {
	events []*Event
	pos    int
}

func NewBuffer(events ...*Event) *Buffer {
	return &Buffer{events: events}
}

// WriteEvent appends a copy of ev.
func (b *Buffer) WriteEvent(ev *Event) error {
	cp := *ev
	cp.Attrs = slices.Clone(ev.Attrs)
	b.events = append(b.events, &cp)
	return nil
}

// ReadEvent returns the next unread event, or io.EOF.
func (b *Buffer) ReadEvent() (*Event, error) {
	if b.pos >= len(b.events) {
		return nil, io.EOF
	}
	ev := b.events[b.pos]
	b.pos++
	return ev, nil
}

// Events returns all recorded events, read or not.
func (b *Buffer) Events() []*Event {
	return b.events
}

// Copy writes every event of src to dst until src is exhausted.
func Copy(dst EventSink, src EventReader) (int, error) {
	n := 0
	for {
		ev, err := src.ReadEvent()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := dst.WriteEvent(ev); err != nil {
			return n, err
		}
		n++
	}
}
