package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format is the syntax of a policy document.
type Format uint8

const (
	YAMLFormat Format = iota
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

var names = map[string]Format{
	"y":    YAMLFormat,
	"yml":  YAMLFormat,
	"yaml": YAMLFormat,
	"j":    JSONFormat,
	"json": JSONFormat,
}

// ParseFormat returns the format called name, ignoring case.
func ParseFormat(name string) (Format, error) {
	if f, ok := names[strings.ToLower(name)]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, name)
}

// FromPath returns the format named by the suffix of path.
func FromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("%w: %q has no suffix", ErrBadFormat, path)
	}
	return ParseFormat(ext)
}

func (f Format) String() string {
	if f == JSONFormat {
		return "json"
	}
	return "yaml"
}

// ToJSON converts a document in f to JSON. JSON input is returned as is.
func (f Format) ToJSON(data []byte) ([]byte, error) {
	if f == JSONFormat {
		return data, nil
	}
	out, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadFormat, err)
	}
	return out, nil
}

// Marshal renders v in f. JSON is indented with two spaces.
func (f Format) Marshal(v any) ([]byte, error) {
	if f == JSONFormat {
		return json.MarshalIndent(v, "", "  ")
	}
	return yaml.Marshal(v)
}

// ReadJSON reads the document at path, in the format of its suffix, and
// returns it as JSON.
func ReadJSON(path string) ([]byte, error) {
	f, err := FromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out, err := f.ToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// AllFormats returns the formats in preference order.
func AllFormats() []Format {
	return []Format{YAMLFormat, JSONFormat}
}
