package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
)

func watch(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: watch takes one directory", cli.ErrUsage)
	}
	dir := args[0]
	conv, err := cfg.converters()
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		} else {
			defer agent.Close()
		}
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	theLog.Info("watching", "dir", dir, "debounce_ms", cfg.Debounce)

	debounce := time.Duration(max(cfg.Debounce, 0)) * time.Millisecond
	pending := map[string]bool{}
	var fire <-chan time.Time
	colors := cfg.colors(cc.Out)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !wanted(ev) {
				continue
			}
			pending[ev.Name] = true
			fire = time.After(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			theLog.Error("watch error", "error", err)
		case <-fire:
			fire = nil
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			clear(pending)
			slices.Sort(files)
			results := make([]error, len(files))
			for i, f := range files {
				results[i] = cfg.checkFile(conv, f)
			}
			report(cc.Out, colors, files, results)
		}
	}
}

// wanted reports whether ev changed the contents of an .xml file.
func wanted(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".xml" {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
