package debug

import (
	"bytes"
	"testing"

	"github.com/sweble/parser-toolkit/node"
)

func TestParseTopics(t *testing.T) {
	tests := []struct {
		in   string
		want topic
	}{
		{"", 0},
		{"encode", topicEncode},
		{"Decode, policy", topicDecode | topicPolicy},
		{"compare,bogus", topicCompare},
		{"all", topicAll},
		{"1", topicAll},
	}
	for _, tc := range tests {
		if got := parseTopics(tc.in); got != tc.want {
			t.Errorf("%q: got %b, want %b", tc.in, got, tc.want)
		}
	}
}

type leaf struct{ node.Base }

func (*leaf) Type() node.Type { return "leaf" }

func TestLogf(t *testing.T) {
	buf := &bytes.Buffer{}
	old := Output
	defer func() { Output = old }()
	Output = buf
	n := &leaf{}
	n.Loc = &node.Location{Source: "a.txt", Start: 1, End: 4}
	Logf("%v at %d\n", n, 3)
	if got, want := buf.String(), "leaf{children=0 props=0 attrs=0 loc=a.txt 1,4} at 3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
