package debug

import (
	"fmt"
	"io"
	"os"

	"github.com/sweble/parser-toolkit/node"
)

// Output receives trace lines.
var Output io.Writer = os.Stderr

// Logf writes a trace line. Node arguments are shown as a summary
// rather than in full.
func Logf(msg string, args ...any) {
	for i, a := range args {
		switch x := a.(type) {
		case node.Node:
			args[i] = summary(x)
		case node.Value:
			if x.Kind() == node.NodeKind {
				args[i] = summary(x.Node())
			}
		}
	}
	fmt.Fprintf(Output, msg, args...)
}

func summary(n node.Node) string {
	if n == nil {
		return "<nil>"
	}
	s := fmt.Sprintf("%s{children=%d props=%d attrs=%d", n.Type(),
		len(n.Children()), n.Properties().Len(), n.Attributes().Len())
	if loc := n.Location(); loc != nil {
		s += " loc=" + loc.String()
	}
	return s + "}"
}
