package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

// Span is a run of text that is kept, deleted or inserted.
type Span struct {
	Op   Op
	Text string
}

// Chars returns the character-level edits turning from into to. Equal
// input yields a single Equal span, or none when both are empty.
func Chars(from, to string) []Span {
	diffCfg := diffpatch.New()
	doMultiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := diffCfg.DiffMain(from, to, doMultiLine)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	res := make([]Span, 0, len(diffs))
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			res = append(res, Span{Op: Delete, Text: diff.Text})
		case diffpatch.DiffEqual:
			res = append(res, Span{Op: Equal, Text: diff.Text})
		case diffpatch.DiffInsert:
			res = append(res, Span{Op: Insert, Text: diff.Text})
		}
	}
	return res
}

// Changed reports whether spans contain any edit.
func Changed(spans []Span) bool {
	for _, s := range spans {
		if s.Op != Equal {
			return true
		}
	}
	return false
}

// Render writes spans inline, deletions as [-x-] and insertions as {+y+}.
// With non-nil colors the markers are colored as well.
func Render(spans []Span, c *Colors) string {
	if c == nil {
		c = NoColors()
	}
	buf := &strings.Builder{}
	for _, s := range spans {
		switch s.Op {
		case Equal:
			buf.WriteString(s.Text)
		case Delete:
			buf.WriteString(c.Delete("[-" + s.Text + "-]"))
		case Insert:
			buf.WriteString(c.Insert("{+" + s.Text + "+}"))
		}
	}
	return buf.String()
}
