package libdiff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Lines returns a unified diff of from and to with the given number of
// context lines, or "" when they are equal.
func Lines(fromName, toName, from, to string, context int) (string, error) {
	if from == to {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: fromName,
		ToFile:   toName,
		Context:  context,
	})
}

// ColorLines colors the added and removed lines of a unified diff.
func ColorLines(diff string, c *Colors) string {
	if c == nil {
		return diff
	}
	lines := strings.Split(diff, "\n")
	for i := range lines {
		s := lines[i]
		switch {
		case strings.HasPrefix(s, "+++"), strings.HasPrefix(s, "---"):
			lines[i] = c.Header(s)
		case strings.HasPrefix(s, "@@"):
			lines[i] = c.Hunk(s)
		case strings.HasPrefix(s, "+"):
			lines[i] = c.Insert(s)
		case strings.HasPrefix(s, "-"):
			lines[i] = c.Delete(s)
		}
	}
	return strings.Join(lines, "\n")
}
