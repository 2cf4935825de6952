// Package format reads and writes converter policies as YAML or JSON.
//
// Policies are processed as JSON; YAML documents are converted on the way
// in, so JSON Patch overlays apply to either.
//
//	doc, err := format.ReadJSON("policy.yaml")
//	out, err := format.JSONFormat.Marshal(cfg)
package format
