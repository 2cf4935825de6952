package stream

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every error reporting malformed input or an
// invalid event sequence.
var ErrSyntax = errors.New("xml syntax error")

// Error represents a stream error.
type Error struct {
	Msg string

	// Path is the element path at the point of failure.
	Path string

	// Line and Col locate decoder errors in the input; zero when unknown.
	Line int
	Col  int
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Path != "" {
		msg = fmt.Sprintf("%s at %s", msg, e.Path)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%d:%d: %s", e.Line, e.Col, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return ErrSyntax
}
