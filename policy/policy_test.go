package policy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sweble/parser-toolkit/compare"
	"github.com/sweble/parser-toolkit/format"
)

const sample = `
types: [article, page, heading-impl, no-heading, text]
stringNode: text
suppressNodes: [no-heading]
typeInfo:
  - type: heading-impl
    slots: [heading]
containers:
  - type: article
    namespaces:
      - uri: urn:example:article
`

func sampleConfig() *Config {
	cfg := DefaultConfig()
	cfg.Types = []string{"article", "page", "heading-impl", "no-heading", "text"}
	cfg.StringNode = "text"
	cfg.SuppressNodes = []string{"no-heading"}
	cfg.TypeInfo = []TypeInfo{{Type: "heading-impl", Slots: []string{"heading"}}}
	cfg.Containers = []Container{{Type: "article", Namespaces: []Namespace{{URI: "urn:example:article"}}}}
	return cfg
}

func TestParse(t *testing.T) {
	got, err := Parse([]byte(sample), format.YAMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sampleConfig(), got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMarshal(t *testing.T) {
	for _, f := range format.AllFormats() {
		t.Run(f.String(), func(t *testing.T) {
			d, err := sampleConfig().Marshal(f)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Parse(d, f)
			if err != nil {
				t.Fatalf("%s: %v", d, err)
			}
			if diff := cmp.Diff(sampleConfig(), got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestOverlays(t *testing.T) {
	overlays := [][]byte{
		[]byte(`[{"op": "add", "path": "/explicitRoots", "value": true}]`),
		[]byte(`[{"op": "replace", "path": "/stringNode", "value": "page"},
		         {"op": "add", "path": "/suppressProperties", "value": ["level"]}]`),
	}
	got, err := Parse([]byte(sample), format.YAMLFormat, overlays...)
	if err != nil {
		t.Fatal(err)
	}
	want := sampleConfig()
	want.ExplicitRoots = true
	want.StringNode = "page"
	want.SuppressProperties = []string{"level"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	bad := []byte(`[{"op": "remove", "path": "/nothing"}]`)
	if _, err := Parse([]byte(sample), format.YAMLFormat, bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want %v", err, ErrInvalid)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	overlay := filepath.Join(dir, "overlay.yml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(overlay, []byte("- op: add\n  path: /header\n  value: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path, overlay)
	if err != nil {
		t.Fatal(err)
	}
	want := sampleConfig()
	want.Header = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	if _, err := LoadConfig(filepath.Join(dir, "policy.toml")); !errors.Is(err, format.ErrBadFormat) {
		t.Errorf("got %v, want %v", err, format.ErrBadFormat)
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("no error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no types", `{}`},
		{"bad type name", `{"types": ["a b"]}`},
		{"duplicate type", `{"types": ["a", "a"]}`},
		{"undeclared string node", `{"types": ["a"], "stringNode": "b"}`},
		{"undeclared suppressed node", `{"types": ["a"], "suppressNodes": ["b"]}`},
		{"undeclared type info", `{"types": ["a"], "typeInfo": [{"type": "b", "slots": ["s"]}]}`},
		{"undeclared container", `{"types": ["a"], "containers": [{"type": "b"}]}`},
		{"negative depth", `{"types": ["a"], "maxDepth": -1}`},
		{"unknown field", `{"types": ["a"], "colour": "red"}`},
		{"not json", `{"types": `},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.in), format.JSONFormat); !errors.Is(err, ErrInvalid) {
				t.Errorf("got %v, want %v", err, ErrInvalid)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	cfg := sampleConfig()
	c, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	in := `<article xmlns="urn:example:article" xmlns:ptk="http://sweble.org/schema/ptk">` +
		`<page><heading><text>Title</text></heading><text>body</text></page></article>`
	ctr, err := c.UnmarshalContainer([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.MarshalContainer(ctr)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != in {
		t.Errorf("got\n%s\nwant\n%s", out, in)
	}
	again, err := c.Unmarshal(out)
	if err != nil {
		t.Fatal(err)
	}
	if err := compare.Compare(ctr.Root(), again, true, true); err != nil {
		t.Error(err)
	}

	// slot type info that would hide a declared type is caught by the
	// converter
	cfg.TypeInfo = append(cfg.TypeInfo, TypeInfo{Type: "text", Slots: []string{"page"}})
	if _, err := cfg.Build(); err == nil {
		t.Error("no error for slot hiding a type")
	}
}
