package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/sweble/parser-toolkit/libdiff"
)

type MainConfig struct {
	Color      bool   `cli:"name=color desc='color diffs'"`
	Policy     string `cli:"name=c aliases=policy desc='converter policy file (yaml or json)'"`
	StringNode string `cli:"name=s desc='string node type used without a policy' default=text"`

	Overlays []string

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// colors returns the colors for diffs written to w: on with -color, off
// when -color was given as false, otherwise on for terminals.
func (cfg *MainConfig) colors(w io.Writer) *libdiff.Colors {
	if cfg.Color {
		return libdiff.NewColors()
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return nil
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return libdiff.NewColors()
	}
	return nil
}

type CheckConfig struct {
	*MainConfig
	Jobs    int    `cli:"name=j desc='number of files checked at once' default=4"`
	Metrics string `cli:"name=metrics desc='write prometheus metrics to this textfile'"`
	Gops    bool   `cli:"name=gops desc='start a gops agent while checking'"`
	NoAttrs bool   `cli:"name=noattrs desc='ignore attributes when comparing'"`
	NoLocs  bool   `cli:"name=nolocs desc='ignore locations when comparing'"`

	Check *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Indent string `cli:"name=indent desc='indentation of the output, two spaces by default'"`

	Dump *cli.Command
}

type FindConfig struct {
	*MainConfig
	Expr string `cli:"name=e desc='boolean expression selecting nodes'"`

	Find *cli.Command
}

type WatchConfig struct {
	*CheckConfig
	Debounce int `cli:"name=debounce desc='milliseconds to wait for further changes' default=100"`

	Watch *cli.Command
}

type TypesConfig struct {
	*MainConfig
	Scan bool `cli:"name=scan desc='list the element names found in files'"`

	Types *cli.Command
}
