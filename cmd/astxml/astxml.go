package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/scott-cotton/cli"

	"github.com/sweble/parser-toolkit/generic"
	"github.com/sweble/parser-toolkit/policy"
	"github.com/sweble/parser-toolkit/stream"
	"github.com/sweble/parser-toolkit/xmlconv"
)

func astxmlMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(cfg.Overlays) > 0 && cfg.Policy == "" {
		return fmt.Errorf("%w: -p needs a policy given with -c", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) overlayOpt(_ *cli.Context, a string) (any, error) {
	cfg.Overlays = append(cfg.Overlays, a)
	return a, nil
}

// converterFunc gives the converter for a document.
type converterFunc func(data []byte) (*xmlconv.Converter, error)

// converters returns the converters for the policy given with -c. Without
// a policy every document gets a converter declaring the element names
// found in it, with the -s type as string node type if present.
func (cfg *MainConfig) converters(extra ...xmlconv.Option) (converterFunc, error) {
	if cfg.Policy != "" {
		pc, err := policy.LoadConfig(cfg.Policy, cfg.Overlays...)
		if err != nil {
			return nil, err
		}
		c, err := pc.Build(extra...)
		if err != nil {
			return nil, err
		}
		return func([]byte) (*xmlconv.Converter, error) { return c, nil }, nil
	}
	return func(data []byte) (*xmlconv.Converter, error) {
		pc, err := scannedPolicy(data, cfg.StringNode)
		if err != nil {
			return nil, err
		}
		return pc.Build(extra...)
	}, nil
}

func scannedPolicy(data []byte, stringNode string) (*policy.Config, error) {
	names, err := generic.Names(stream.NewDecoder(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}
	pc := policy.DefaultConfig()
	pc.Types = names
	if slices.Contains(names, stringNode) {
		pc.StringNode = stringNode
	}
	return pc, nil
}
