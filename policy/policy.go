// Package policy loads converter configurations from files.
//
// A policy names the element types of a document family and the
// conversion options to use for them:
//
//	types: [article, page, heading-impl, text]
//	stringNode: text
//	typeInfo:
//	  - type: heading-impl
//	    slots: [heading]
//	containers:
//	  - type: article
//	    namespaces:
//	      - uri: urn:example:article
//
// Policies are YAML or JSON, chosen by file suffix. Overlays are RFC 6902
// JSON Patch documents, themselves YAML or JSON, applied in order to the
// policy before it is decoded.
package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/sweble/parser-toolkit/debug"
	"github.com/sweble/parser-toolkit/format"
	"github.com/sweble/parser-toolkit/generic"
	"github.com/sweble/parser-toolkit/node"
	"github.com/sweble/parser-toolkit/registry"
	"github.com/sweble/parser-toolkit/xmlconv"
)

// Config is the file form of a converter configuration. Type names are
// both the node types and their element names.
type Config struct {
	Types []string `json:"types" yaml:"types"`

	StringNode                    string `json:"stringNode,omitempty" yaml:"stringNode,omitempty"`
	ExplicitRoots                 bool   `json:"explicitRoots,omitempty" yaml:"explicitRoots,omitempty"`
	SuppressEmptyStringNodes      bool   `json:"suppressEmptyStringNodes,omitempty" yaml:"suppressEmptyStringNodes,omitempty"`
	SuppressEmptyStringProperties bool   `json:"suppressEmptyStringProperties,omitempty" yaml:"suppressEmptyStringProperties,omitempty"`
	StoreLocation                 bool   `json:"storeLocation" yaml:"storeLocation"`
	StoreAttributes               bool   `json:"storeAttributes" yaml:"storeAttributes"`

	SuppressNodes      []string   `json:"suppressNodes,omitempty" yaml:"suppressNodes,omitempty"`
	TypeInfo           []TypeInfo `json:"typeInfo,omitempty" yaml:"typeInfo,omitempty"`
	SuppressAttributes []string   `json:"suppressAttributes,omitempty" yaml:"suppressAttributes,omitempty"`
	SuppressProperties []string   `json:"suppressProperties,omitempty" yaml:"suppressProperties,omitempty"`

	Containers []Container `json:"containers,omitempty" yaml:"containers,omitempty"`

	Indent   string `json:"indent,omitempty" yaml:"indent,omitempty"`
	Header   bool   `json:"header,omitempty" yaml:"header,omitempty"`
	MaxDepth int    `json:"maxDepth" yaml:"maxDepth"`
}

// TypeInfo lets nodes of Type be written under the names of Slots.
type TypeInfo struct {
	Type  string   `json:"type" yaml:"type"`
	Slots []string `json:"slots" yaml:"slots"`
}

type Container struct {
	Type       string      `json:"type" yaml:"type"`
	Namespaces []Namespace `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
}

type Namespace struct {
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	URI    string `json:"uri" yaml:"uri"`
}

// DefaultConfig returns the configuration file values start from.
func DefaultConfig() *Config {
	return &Config{
		StoreLocation:   true,
		StoreAttributes: true,
		MaxDepth:        xmlconv.DefaultMaxDepth,
	}
}

// LoadConfig reads the policy at path and applies the overlays at
// overlayPaths in order.
func LoadConfig(path string, overlayPaths ...string) (*Config, error) {
	f, err := format.FromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	overlays := make([][]byte, 0, len(overlayPaths))
	for _, p := range overlayPaths {
		d, err := format.ReadJSON(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read overlay: %w", err)
		}
		overlays = append(overlays, d)
	}
	cfg, err := Parse(data, f, overlays...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a policy in format f, applying the JSON Patch overlays in
// order. The result is validated.
func Parse(data []byte, f format.Format, overlays ...[]byte) (*Config, error) {
	doc, err := f.ToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for i, o := range overlays {
		patch, err := jsonpatch.DecodePatch(o)
		if err != nil {
			return nil, fmt.Errorf("%w: overlay %d: %w", ErrInvalid, i, err)
		}
		doc, err = patch.Apply(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: overlay %d: %w", ErrInvalid, i, err)
		}
		if debug.Policy() {
			debug.Logf("policy: after overlay %d: %s\n", i, doc)
		}
	}
	cfg := DefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders c in format f.
func (c *Config) Marshal(f format.Format) ([]byte, error) {
	return f.Marshal(c)
}

// Validate checks the configuration for errors that do not need a
// converter to detect.
func (c *Config) Validate() error {
	if len(c.Types) == 0 {
		return fmt.Errorf("%w: no types", ErrInvalid)
	}
	declared := make(map[string]bool, len(c.Types))
	for _, name := range c.Types {
		if err := registry.CheckName(name); err != nil {
			return fmt.Errorf("%w: type: %w", ErrInvalid, err)
		}
		if declared[name] {
			return fmt.Errorf("%w: type %q declared twice", ErrInvalid, name)
		}
		declared[name] = true
	}
	check := func(what, name string) error {
		if !declared[name] {
			return fmt.Errorf("%w: %s %q is not a declared type", ErrInvalid, what, name)
		}
		return nil
	}
	if c.StringNode != "" {
		if err := check("string node", c.StringNode); err != nil {
			return err
		}
	}
	for _, name := range c.SuppressNodes {
		if err := check("suppressed node", name); err != nil {
			return err
		}
	}
	for _, ti := range c.TypeInfo {
		if err := check("type info", ti.Type); err != nil {
			return err
		}
	}
	for _, ctr := range c.Containers {
		if err := check("container", ctr.Type); err != nil {
			return err
		}
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: negative max depth", ErrInvalid)
	}
	return nil
}

// Registry returns a registry binding every declared type to its name.
func (c *Config) Registry() (*registry.Registry, error) {
	reg := registry.New()
	for _, name := range c.Types {
		if err := reg.Register(node.Type(name), name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	return reg, nil
}

// Options returns the converter options of c, building generic nodes.
// extra options are applied last.
func (c *Config) Options(extra ...xmlconv.Option) []xmlconv.Option {
	opts := []xmlconv.Option{
		xmlconv.StringNodeType(node.Type(c.StringNode)),
		xmlconv.ExplicitRoots(c.ExplicitRoots),
		xmlconv.SuppressEmptyStringNodes(c.SuppressEmptyStringNodes),
		xmlconv.SuppressEmptyStringProperties(c.SuppressEmptyStringProperties),
		xmlconv.StoreLocation(c.StoreLocation),
		xmlconv.StoreAttributes(c.StoreAttributes),
		xmlconv.SuppressAttribute(c.SuppressAttributes...),
		xmlconv.SuppressProperty(c.SuppressProperties...),
		xmlconv.WithFactory(generic.Factory()),
		xmlconv.Indent("", c.Indent),
		xmlconv.Header(c.Header),
	}
	for _, name := range c.SuppressNodes {
		opts = append(opts, xmlconv.SuppressNode(node.Type(name)))
	}
	for _, ti := range c.TypeInfo {
		opts = append(opts, xmlconv.SuppressTypeInfo(node.Type(ti.Type), ti.Slots...))
	}
	for _, ctr := range c.Containers {
		ns := make([]xmlconv.Namespace, len(ctr.Namespaces))
		for i, n := range ctr.Namespaces {
			ns[i] = xmlconv.Namespace{Prefix: n.Prefix, URI: n.URI}
		}
		t := node.Type(ctr.Type)
		opts = append(opts, xmlconv.WithContainer(t, generic.ContainerOf(t), ns...))
	}
	if c.MaxDepth > 0 {
		opts = append(opts, xmlconv.MaxDepth(c.MaxDepth))
	}
	return append(opts, extra...)
}

// Build returns a converter for c.
func (c *Config) Build(extra ...xmlconv.Option) (*xmlconv.Converter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}
	return xmlconv.New(reg, c.Options(extra...)...)
}
