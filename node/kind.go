package node

import "fmt"

// Kind identifies the variant held by a [Value].
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	NodeKind
	ArrayKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullKind:   "null",
		BoolKind:   "bool",
		IntKind:    "int",
		FloatKind:  "float",
		StringKind: "string",
		NodeKind:   "node",
		ArrayKind:  "array",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := ParseKind(string(d))
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

// ParseKind maps the textual name of a kind back to the kind.
func ParseKind(s string) (Kind, bool) {
	k, ok := map[string]Kind{
		"null":   NullKind,
		"bool":   BoolKind,
		"int":    IntKind,
		"float":  FloatKind,
		"string": StringKind,
		"node":   NodeKind,
		"array":  ArrayKind,
	}[s]
	return k, ok
}

func Kinds() []Kind {
	return []Kind{
		NullKind,
		BoolKind,
		IntKind,
		FloatKind,
		StringKind,
		NodeKind,
		ArrayKind,
	}
}
