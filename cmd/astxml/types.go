package main

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/scott-cotton/cli"

	"github.com/sweble/parser-toolkit/generic"
	"github.com/sweble/parser-toolkit/policy"
	"github.com/sweble/parser-toolkit/stream"
)

func types(cfg *TypesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Types.Parse(cc, args)
	if err != nil {
		return err
	}
	var pc *policy.Config
	if cfg.Policy != "" {
		pc, err = policy.LoadConfig(cfg.Policy, cfg.Overlays...)
		if err != nil {
			return err
		}
	}
	tw := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	if !cfg.Scan {
		if pc == nil {
			return fmt.Errorf("%w: types needs a policy given with -c, or -scan", cli.ErrUsage)
		}
		reg, err := pc.Registry()
		if err != nil {
			return err
		}
		for _, e := range reg.Entries() {
			fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Type)
		}
		return nil
	}

	var names []string
	for _, file := range args {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		found, err := generic.Names(stream.NewDecoder(bytes.NewReader(data)))
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		names = append(names, found...)
	}
	slices.Sort(names)
	for _, name := range slices.Compact(names) {
		fmt.Fprintf(tw, "%s\t%s\n", name, nameStatus(pc, name))
	}
	return nil
}

func nameStatus(pc *policy.Config, name string) string {
	if pc == nil || slices.Contains(pc.Types, name) {
		return ""
	}
	for _, ti := range pc.TypeInfo {
		if slices.Contains(ti.Slots, name) {
			return "slot of " + ti.Type
		}
	}
	return "undeclared"
}
