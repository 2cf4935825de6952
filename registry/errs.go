package registry

import (
	"errors"
	"fmt"

	"github.com/sweble/parser-toolkit/node"
)

var (
	ErrUnknownType = errors.New("unknown type")
	ErrDuplicate   = errors.New("duplicate registration")
	ErrInvalidName = errors.New("invalid name")
)

// UnknownTypeError reports a lookup that found no binding. Exactly one of
// Type and Name is set.
type UnknownTypeError struct {
	Type node.Type
	Name string
}

func (e *UnknownTypeError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("unknown type: no name registered for type %q", e.Type)
	}
	return fmt.Sprintf("unknown type: no type registered under name %q", e.Name)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}
