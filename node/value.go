package node

import (
	"strconv"
	"strings"
)

// Value is a property or attribute value. The zero Value is null.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	n     Node
	items []Value
}

func Null() Value {
	return Value{}
}

func FromBool(v bool) Value {
	return Value{kind: BoolKind, b: v}
}

func FromInt(v int64) Value {
	return Value{kind: IntKind, i: v}
}

func FromFloat(v float64) Value {
	return Value{kind: FloatKind, f: v}
}

func FromString(v string) Value {
	return Value{kind: StringKind, s: v}
}

// FromNode wraps n. A nil node yields null.
func FromNode(n Node) Value {
	if n == nil {
		return Value{}
	}
	return Value{kind: NodeKind, n: n}
}

// FromArray returns an array value holding items in order. The slice is
// copied.
func FromArray(items ...Value) Value {
	return Value{kind: ArrayKind, items: append([]Value{}, items...)}
}

// FromFloats builds a nested array of floats, one inner array per row.
func FromFloats(rows ...[]float64) Value {
	res := make([]Value, len(rows))
	for i, row := range rows {
		inner := make([]Value, len(row))
		for j, f := range row {
			inner[j] = FromFloat(f)
		}
		res[i] = Value{kind: ArrayKind, items: inner}
	}
	return Value{kind: ArrayKind, items: res}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == NullKind
}

func (v Value) Bool() bool {
	return v.b
}

func (v Value) Int() int64 {
	return v.i
}

func (v Value) Float() float64 {
	return v.f
}

// Text returns the string held by v, or "" if v is not a string.
func (v Value) Text() string {
	return v.s
}

func (v Value) Node() Node {
	return v.n
}

// Items returns the elements of an array value. The returned slice must
// not be modified.
func (v Value) Items() []Value {
	return v.items
}

// Len returns the number of items of an array value, or 0.
func (v Value) Len() int {
	return len(v.items)
}

// String renders v for diagnostics. Strings are quoted, nodes are shown
// by type.
func (v Value) String() string {
	buf := &strings.Builder{}
	v.write(buf)
	return buf.String()
}

func (v Value) write(buf *strings.Builder) {
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.b))
	case IntKind:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case FloatKind:
		buf.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case StringKind:
		buf.WriteString(strconv.Quote(v.s))
	case NodeKind:
		buf.WriteString("<")
		buf.WriteString(string(v.n.Type()))
		buf.WriteString(">")
	case ArrayKind:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i != 0 {
				buf.WriteString(", ")
			}
			item.write(buf)
		}
		buf.WriteByte(']')
	}
}
