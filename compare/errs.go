package compare

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMismatch = errors.New("mismatch")
	ErrDepth    = errors.New("maximum depth exceeded")
)

type Reason int

const (
	TypeDiffers Reason = iota
	ChildCountDiffers
	PropertyMissing
	PropertyExtra
	KindDiffers
	ValueDiffers
	LengthDiffers
	AttributeMissing
	AttributeExtra
	LocationDiffers
)

func (r Reason) String() string {
	s, ok := map[Reason]string{
		TypeDiffers:       "type differs",
		ChildCountDiffers: "number of children differs",
		PropertyMissing:   "property missing",
		PropertyExtra:     "unexpected property",
		KindDiffers:       "kind differs",
		ValueDiffers:      "value differs",
		LengthDiffers:     "array length differs",
		AttributeMissing:  "attribute missing",
		AttributeExtra:    "unexpected attribute",
		LocationDiffers:   "location differs",
	}[r]
	if ok {
		return s
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Mismatch describes the first difference found between two trees.
type Mismatch struct {
	// Path locates the difference, e.g. $.children[0].props.title[1].
	Path     string
	Reason   Reason
	Expected string
	Actual   string
	// Detail holds a character diff when two strings differ.
	Detail string
}

func (m *Mismatch) Error() string {
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "mismatch at %s: %s", m.Path, m.Reason)
	if m.Expected != "" || m.Actual != "" {
		fmt.Fprintf(buf, ": expected %s, actual %s", m.Expected, m.Actual)
	}
	if m.Detail != "" {
		fmt.Fprintf(buf, " (diff %s)", m.Detail)
	}
	return buf.String()
}

func (m *Mismatch) Unwrap() error {
	return ErrMismatch
}
