package main

import (
	"fmt"
	"io"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	"github.com/sweble/parser-toolkit/generic"
	"github.com/sweble/parser-toolkit/node"
	"github.com/sweble/parser-toolkit/registry"
	"github.com/sweble/parser-toolkit/xmlconv"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: -e is required", cli.ErrUsage)
	}
	prg, err := compileQuery(cfg.Expr)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	conv, err := cfg.converters()
	if err != nil {
		return err
	}
	for _, file := range args {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		c, err := conv(data)
		if err != nil {
			return err
		}
		root, err := c.Unmarshal(data)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if err := findIn(cc.Out, file, prg, c.Registry(), root); err != nil {
			return err
		}
	}
	return nil
}

func compileQuery(q string) (*vm.Program, error) {
	return expr.Compile(q, expr.AsBool(), expr.AllowUndefinedVariables())
}

// findIn writes "file:path type" for every node of root matching prg.
func findIn(w io.Writer, file string, prg *vm.Program, reg *registry.Registry, root node.Node) error {
	var runErr error
	generic.Walk(root, xmlconv.DefaultMaxDepth, func(path string, n node.Node, depth int) bool {
		res, err := expr.Run(prg, nodeEnv(reg, n, depth))
		if err != nil {
			runErr = fmt.Errorf("%s:%s: %w", file, path, err)
			return false
		}
		if ok, _ := res.(bool); ok {
			fmt.Fprintf(w, "%s:%s %s\n", file, path, n.Type())
		}
		return runErr == nil
	})
	return runErr
}

func nodeEnv(reg *registry.Registry, n node.Node, depth int) map[string]any {
	name, _ := reg.Name(n.Type())
	attrs := map[string]any{}
	for k, v := range n.Attributes().All() {
		attrs[k] = plain(v)
	}
	props := map[string]any{}
	for k, v := range n.Properties().All() {
		props[k] = plain(v)
	}
	text := ""
	if v := n.Properties().Value(registry.ContentName); v.Kind() == node.StringKind {
		text = v.Text()
	}
	return map[string]any{
		"type":     string(n.Type()),
		"name":     name,
		"depth":    depth,
		"attrs":    attrs,
		"props":    props,
		"text":     text,
		"children": len(n.Children()),
	}
}

func plain(v node.Value) any {
	switch v.Kind() {
	case node.BoolKind:
		return v.Bool()
	case node.IntKind:
		return int(v.Int())
	case node.FloatKind:
		return v.Float()
	case node.StringKind:
		return v.Text()
	case node.NodeKind:
		return string(v.Node().Type())
	case node.ArrayKind:
		items := make([]any, v.Len())
		for i, item := range v.Items() {
			items[i] = plain(item)
		}
		return items
	}
	return nil
}
