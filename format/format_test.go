package format

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decoded(t *testing.T, data []byte) any {
	t.Helper()
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("%s: %v", data, err)
	}
	return v
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  error
	}{
		{in: "yaml", want: YAMLFormat},
		{in: "YML", want: YAMLFormat},
		{in: "j", want: JSONFormat},
		{in: "toml", err: ErrBadFormat},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if !errors.Is(err, tc.err) {
				t.Fatalf("got error %v, want %v", err, tc.err)
			}
			if err == nil && got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestFromPath(t *testing.T) {
	f, err := FromPath("conf/policy.json")
	if err != nil || f != JSONFormat {
		t.Fatalf("got %s, %v", f, err)
	}
	if _, err := FromPath("policy"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("got %v", err)
	}
}

func TestToJSON(t *testing.T) {
	got, err := YAMLFormat.ToJSON([]byte("types: [a, b]\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"types": []any{"a", "b"}}
	if diff := cmp.Diff(want, decoded(t, got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := YAMLFormat.ToJSON([]byte("a: [b\n")); !errors.Is(err, ErrBadFormat) {
		t.Errorf("got %v", err)
	}
	in := []byte(`{"x": 1}`)
	if got, _ := JSONFormat.ToJSON(in); string(got) != string(in) {
		t.Errorf("got %s", got)
	}
}

func TestMarshal(t *testing.T) {
	v := struct {
		Name string `json:"name" yaml:"name"`
	}{Name: "page"}
	for f, want := range map[Format]string{
		YAMLFormat: "name: page\n",
		JSONFormat: "{\n  \"name\": \"page\"\n}",
	} {
		got, err := f.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != want {
			t.Errorf("%s: got %q, want %q", f, got, want)
		}
	}
}

func TestReadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yml")
	if err := os.WriteFile(path, []byte("- op: add\n  path: /a\n  value: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []any{map[string]any{"op": "add", "path": "/a", "value": float64(1)}}
	if diff := cmp.Diff(want, decoded(t, got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := ReadJSON(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v", err)
	}
}
