package xmlconv

import (
	"errors"
	"fmt"

	"github.com/sweble/parser-toolkit/registry"
)

var (
	ErrAmbiguousType = errors.New("ambiguous type")
	ErrNoFactory     = errors.New("no node factory configured")
	ErrFormat        = errors.New("format error")
	ErrConfig        = errors.New("invalid configuration")
	ErrDepth         = errors.New("maximum depth exceeded")

	ErrUnknownType = registry.ErrUnknownType
	ErrDuplicate   = registry.ErrDuplicate
)

// Error is returned by conversions. It records where in the document the
// conversion failed.
type Error struct {
	// Op is "encode" or "decode".
	Op string
	// Path is the element path, e.g. /document/section[0]/title[0].
	Path string
	// Line and Col locate decode errors in the input; zero when unknown.
	Line int
	Col  int
	Err  error
}

func (e *Error) Error() string {
	pos := ""
	if e.Line > 0 {
		pos = fmt.Sprintf(" %d:%d", e.Line, e.Col)
	}
	if e.Path == "" {
		return fmt.Sprintf("%s%s: %v", e.Op, pos, e.Err)
	}
	return fmt.Sprintf("%s %s%s: %v", e.Op, e.Path, pos, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
