package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"

	"github.com/sweble/parser-toolkit/libdiff"
	"github.com/sweble/parser-toolkit/metrics"
	"github.com/sweble/parser-toolkit/roundtrip"
	"github.com/sweble/parser-toolkit/xmlconv"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: no files given", cli.ErrUsage)
	}
	files, err := expandGlobs(args)
	if err != nil {
		return err
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		} else {
			defer agent.Close()
		}
	}
	var m *metrics.Metrics
	var extra []xmlconv.Option
	if cfg.Metrics != "" {
		m = metrics.New()
		extra = append(extra, xmlconv.WithObserver(m))
	}
	conv, err := cfg.converters(extra...)
	if err != nil {
		return err
	}

	results := make([]error, len(files))
	g := &errgroup.Group{}
	g.SetLimit(max(cfg.Jobs, 1))
	for i, file := range files {
		g.Go(func() error {
			results[i] = cfg.checkFile(conv, file)
			return nil
		})
	}
	g.Wait()

	failed := report(cc.Out, cfg.colors(cc.Out), files, results)
	if m != nil {
		if err := m.WriteToTextfile(cfg.Metrics); err != nil {
			return fmt.Errorf("could not write metrics: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func (cfg *CheckConfig) checkFile(conv converterFunc, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	c, err := conv(data)
	if err != nil {
		return err
	}
	ck := roundtrip.New(c)
	ck.Attributes = !cfg.NoAttrs
	ck.Locations = !cfg.NoLocs
	_, err = ck.CheckDocument(data)
	return err
}

// report writes the outcome of checking files and returns the number of
// failures.
func report(w io.Writer, colors *libdiff.Colors, files []string, results []error) int {
	failed := 0
	for i, file := range files {
		err := results[i]
		if err == nil {
			fmt.Fprintf(w, "ok   %s\n", file)
			continue
		}
		failed++
		var f *roundtrip.Failure
		if !errors.As(err, &f) {
			fmt.Fprintf(w, "FAIL %s: %v\n", file, err)
			continue
		}
		fmt.Fprintf(w, "FAIL %s: %v\n", file, f.Mismatch)
		if f.Diff != "" {
			fmt.Fprintln(w, strings.TrimRight(libdiff.ColorLines(f.Diff, colors), "\n"))
		}
	}
	if failed > 0 {
		theLog.Warn("check failed", "failed", failed, "files", len(files))
	}
	return failed
}

// expandGlobs returns the sorted files matching any of patterns. Every
// pattern must match.
func expandGlobs(patterns []string) ([]string, error) {
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", p)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
