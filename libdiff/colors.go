package libdiff

import (
	"strings"

	"github.com/fatih/color"
)

// Colors holds the formatting functions used when rendering diffs.
type Colors struct {
	Insert func(string, ...any) string
	Delete func(string, ...any) string
	Header func(string, ...any) string
	Hunk   func(string, ...any) string
	Path   func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Insert: color.RGB(8, 196, 16).SprintfFunc(),
		Delete: color.RGB(196, 32, 32).SprintfFunc(),
		Header: color.New(color.Bold).SprintfFunc(),
		Hunk:   color.CyanString,
		Path:   color.RGB(128, 168, 196).SprintfFunc(),
	}
	for _, f := range []*func(string, ...any) string{
		&colors.Insert, &colors.Delete, &colors.Header, &colors.Hunk, &colors.Path,
	} {
		g := *f
		*f = func(v string, _ ...any) string {
			return g(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

// NoColors returns Colors that leave text unchanged.
func NoColors() *Colors {
	return &Colors{
		Insert: colorDefault,
		Delete: colorDefault,
		Header: colorDefault,
		Hunk:   colorDefault,
		Path:   colorDefault,
	}
}

func colorDefault(v string, _ ...any) string { return v }
