package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/google/go-cmp/cmp"

	"github.com/sweble/parser-toolkit/policy"
	"github.com/sweble/parser-toolkit/roundtrip"
)

const sampleDoc = `<doc xmlns:ptk="http://sweble.org/schema/ptk">` +
	`<text>Hi</text><url><ptk:protocol>http</ptk:protocol></url></doc>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.xml", sampleDoc)
	b := writeFile(t, dir, "sub/deeper/b.xml", sampleDoc)
	writeFile(t, dir, "sub/c.txt", "")

	got, err := expandGlobs([]string{filepath.Join(dir, "**", "*.xml"), a})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{a, b}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := expandGlobs([]string{filepath.Join(dir, "*.json")}); err == nil {
		t.Error("no error for pattern without matches")
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.xml", sampleDoc)
	cfg := &CheckConfig{MainConfig: &MainConfig{StringNode: "text"}}
	conv, err := cfg.converters()
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.checkFile(conv, good); err != nil {
		t.Fatal(err)
	}

	// empty texts vanish when written, so the reread tree differs
	cfg.Policy = writeFile(t, dir, "policy.yaml",
		"types: [doc, text]\nstringNode: text\nsuppressEmptyStringNodes: true\n")
	conv, err = cfg.converters()
	if err != nil {
		t.Fatal(err)
	}
	bad := writeFile(t, dir, "bad.xml", `<doc><text></text><text>x</text></doc>`)
	err = cfg.checkFile(conv, bad)
	var f *roundtrip.Failure
	if !errors.As(err, &f) {
		t.Fatalf("got %v, want a round trip failure", err)
	}

	out := &bytes.Buffer{}
	failed := report(out, nil, []string{good, bad}, []error{nil, err})
	if failed != 1 {
		t.Errorf("got %d failures", failed)
	}
	got := out.String()
	if !strings.HasPrefix(got, "ok   "+good+"\nFAIL "+bad+": ") || !strings.Contains(got, "--- original") {
		t.Errorf("got report\n%s", got)
	}
}

func TestDumpReader(t *testing.T) {
	cfg := &MainConfig{StringNode: "text"}
	conv, err := cfg.converters()
	if err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	if err := dumpReader(conv, out, strings.NewReader(sampleDoc)); err != nil {
		t.Fatal(err)
	}
	want := sampleDoc + "\n"
	if out.String() != want {
		t.Errorf("got\n%s\nwant\n%s", out, want)
	}
}

func TestFind(t *testing.T) {
	cfg := &MainConfig{StringNode: "text"}
	conv, err := cfg.converters()
	if err != nil {
		t.Fatal(err)
	}
	c, err := conv([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	root, err := c.Unmarshal([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		q    string
		want string
	}{
		{`name == "url" && props.protocol == "http"`, "f.xml:$.children[1] url\n"},
		{`text == "Hi"`, "f.xml:$.children[0] text\n"},
		{`depth == 0 && children == 2`, "f.xml:$ doc\n"},
		{`attrs.lang == "en"`, ""},
	}
	for _, tc := range tests {
		t.Run(tc.q, func(t *testing.T) {
			prg, err := compileQuery(tc.q)
			if err != nil {
				t.Fatal(err)
			}
			out := &bytes.Buffer{}
			if err := findIn(out, "f.xml", prg, c.Registry(), root); err != nil {
				t.Fatal(err)
			}
			if out.String() != tc.want {
				t.Errorf("got %q, want %q", out, tc.want)
			}
		})
	}
	if _, err := compileQuery(`name ==`); err == nil {
		t.Error("no error for bad expression")
	}
}

func TestScannedPolicy(t *testing.T) {
	pc, err := scannedPolicy([]byte(sampleDoc), "text")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"doc", "text", "url"}, pc.Types); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if pc.StringNode != "text" {
		t.Errorf("got string node %q", pc.StringNode)
	}
	pc, err = scannedPolicy([]byte(sampleDoc), "para")
	if err != nil {
		t.Fatal(err)
	}
	if pc.StringNode != "" {
		t.Errorf("got string node %q", pc.StringNode)
	}
}

func TestNameStatus(t *testing.T) {
	pc := policy.DefaultConfig()
	pc.Types = []string{"page", "heading-impl"}
	pc.TypeInfo = []policy.TypeInfo{{Type: "heading-impl", Slots: []string{"heading"}}}
	for name, want := range map[string]string{
		"page":    "",
		"heading": "slot of heading-impl",
		"para":    "undeclared",
	} {
		if got := nameStatus(pc, name); got != want {
			t.Errorf("%s: got %q, want %q", name, got, want)
		}
	}
	if got := nameStatus(nil, "para"); got != "" {
		t.Errorf("without policy: got %q", got)
	}
}

func TestWanted(t *testing.T) {
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "a.xml", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "a.xml", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "a.xml", Op: fsnotify.Remove}, false},
		{fsnotify.Event{Name: "a.txt", Op: fsnotify.Write}, false},
	}
	for _, tc := range tests {
		if got := wanted(tc.ev); got != tc.want {
			t.Errorf("%v: got %v", tc.ev, got)
		}
	}
}
