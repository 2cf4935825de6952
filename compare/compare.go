package compare

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rivo/uniseg"

	"github.com/sweble/parser-toolkit/debug"
	"github.com/sweble/parser-toolkit/libdiff"
	"github.com/sweble/parser-toolkit/node"
)

const (
	DefaultMaxDepth = 10000

	// values longer than this many grapheme clusters are shortened in
	// mismatch reports
	maxShown = 64
)

// Comparer holds comparison settings. The zero value compares types,
// children and properties only.
type Comparer struct {
	Attributes bool
	Locations  bool
	// MaxDepth bounds the nesting of nodes and arrays; 0 means
	// DefaultMaxDepth.
	MaxDepth int
}

// Compare reports the first difference between a and b as a *Mismatch, or
// returns nil if they are equivalent.
func Compare(a, b node.Node, compareAttributes, compareLocations bool) error {
	c := &Comparer{Attributes: compareAttributes, Locations: compareLocations}
	return c.Compare(a, b)
}

// Equal reports whether a and b are equivalent.
func Equal(a, b node.Node, compareAttributes, compareLocations bool) bool {
	return Compare(a, b, compareAttributes, compareLocations) == nil
}

func (c *Comparer) Compare(a, b node.Node) error {
	err := c.nodes("$", 0, a, b)
	if err != nil && debug.Compare() {
		debug.Logf("compare: %v\n", err)
	}
	return err
}

func (c *Comparer) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

func (c *Comparer) nodes(path string, depth int, a, b node.Node) error {
	if depth > c.maxDepth() {
		return fmt.Errorf("%w at %s", ErrDepth, path)
	}
	if a == nil || b == nil {
		if a == nil && b == nil {
			return nil
		}
		return &Mismatch{Path: path, Reason: TypeDiffers, Expected: typeOf(a), Actual: typeOf(b)}
	}
	if a.Type() != b.Type() {
		return &Mismatch{Path: path, Reason: TypeDiffers, Expected: typeOf(a), Actual: typeOf(b)}
	}
	if c.Attributes {
		if err := c.attributes(path+".attrs", depth, a.Attributes(), b.Attributes()); err != nil {
			return err
		}
	}
	if c.Locations {
		if err := locations(path+".location", a.Location(), b.Location()); err != nil {
			return err
		}
	}
	if err := c.properties(path+".props", depth, a.Properties(), b.Properties()); err != nil {
		return err
	}
	ak, bk := a.Children(), b.Children()
	if len(ak) != len(bk) {
		return &Mismatch{
			Path:     path + ".children",
			Reason:   ChildCountDiffers,
			Expected: strconv.Itoa(len(ak)),
			Actual:   strconv.Itoa(len(bk)),
		}
	}
	for i := range ak {
		if err := c.nodes(fmt.Sprintf("%s.children[%d]", path, i), depth+1, ak[i], bk[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Comparer) properties(path string, depth int, a, b *node.Properties) error {
	for name, av := range a.All() {
		if av.IsNull() {
			continue
		}
		bv := b.Value(name)
		if bv.IsNull() {
			return &Mismatch{Path: path + "." + name, Reason: PropertyMissing, Expected: show(av), Actual: "null"}
		}
		if err := c.values(path+"."+name, depth, av, bv); err != nil {
			return err
		}
	}
	for name, bv := range b.All() {
		if bv.IsNull() {
			continue
		}
		if a.Value(name).IsNull() {
			return &Mismatch{Path: path + "." + name, Reason: PropertyExtra, Expected: "null", Actual: show(bv)}
		}
	}
	return nil
}

func (c *Comparer) attributes(path string, depth int, a, b *node.Attributes) error {
	for name, av := range a.All() {
		bv, ok := b.Get(name)
		if !ok {
			return &Mismatch{Path: path + "." + name, Reason: AttributeMissing, Expected: show(av)}
		}
		if err := c.values(path+"."+name, depth, av, bv); err != nil {
			return err
		}
	}
	for name, bv := range b.All() {
		if !a.Has(name) {
			return &Mismatch{Path: path + "." + name, Reason: AttributeExtra, Actual: show(bv)}
		}
	}
	return nil
}

func (c *Comparer) values(path string, depth int, a, b node.Value) error {
	if depth > c.maxDepth() {
		return fmt.Errorf("%w at %s", ErrDepth, path)
	}
	if a.Kind() != b.Kind() {
		return &Mismatch{
			Path:     path,
			Reason:   KindDiffers,
			Expected: a.Kind().String() + " " + show(a),
			Actual:   b.Kind().String() + " " + show(b),
		}
	}
	same := true
	switch a.Kind() {
	case node.NullKind:
	case node.BoolKind:
		same = a.Bool() == b.Bool()
	case node.IntKind:
		same = a.Int() == b.Int()
	case node.FloatKind:
		af, bf := a.Float(), b.Float()
		same = af == bf || (math.IsNaN(af) && math.IsNaN(bf))
	case node.StringKind:
		if a.Text() != b.Text() {
			return &Mismatch{
				Path:     path,
				Reason:   ValueDiffers,
				Expected: show(a),
				Actual:   show(b),
				Detail:   truncate(libdiff.Render(libdiff.Chars(a.Text(), b.Text()), nil), 2*maxShown),
			}
		}
	case node.NodeKind:
		return c.nodes(path, depth+1, a.Node(), b.Node())
	case node.ArrayKind:
		ai, bi := a.Items(), b.Items()
		if len(ai) != len(bi) {
			return &Mismatch{
				Path:     path,
				Reason:   LengthDiffers,
				Expected: strconv.Itoa(len(ai)),
				Actual:   strconv.Itoa(len(bi)),
			}
		}
		for i := range ai {
			if err := c.values(fmt.Sprintf("%s[%d]", path, i), depth+1, ai[i], bi[i]); err != nil {
				return err
			}
		}
	}
	if !same {
		return &Mismatch{Path: path, Reason: ValueDiffers, Expected: show(a), Actual: show(b)}
	}
	return nil
}

func locations(path string, a, b *node.Location) error {
	if a == nil && b == nil {
		return nil
	}
	if a != nil && b != nil && *a == *b {
		return nil
	}
	return &Mismatch{Path: path, Reason: LocationDiffers, Expected: locString(a), Actual: locString(b)}
}

func locString(l *node.Location) string {
	if l == nil {
		return "none"
	}
	return strconv.Quote(l.String())
}

func typeOf(n node.Node) string {
	if n == nil {
		return "nil"
	}
	return string(n.Type())
}

func show(v node.Value) string {
	return truncate(v.String(), maxShown)
}

// truncate shortens s to at most n grapheme clusters.
func truncate(s string, n int) string {
	g := uniseg.NewGraphemes(s)
	count := 0
	for g.Next() {
		if count == n {
			from, _ := g.Positions()
			return s[:from] + "..."
		}
		count++
	}
	return s
}
