package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/sweble/parser-toolkit/stream"
	"github.com/sweble/parser-toolkit/xmlconv"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	conv, err := cfg.converters(xmlconv.Indent("", cfg.Indent))
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return dumpReader(conv, cc.Out, cc.In)
	}
	for _, file := range args {
		if err := dumpFile(conv, cc.Out, file); err != nil {
			return err
		}
	}
	return nil
}

func dumpFile(conv converterFunc, w io.Writer, file string) error {
	var (
		f   *os.File
		err error
	)
	if file != "-" {
		f, err = os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
	} else {
		f = os.Stdin
	}
	if err := dumpReader(conv, w, f); err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return nil
}

func dumpReader(conv converterFunc, w io.Writer, r io.Reader) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading: %w", err)
	}
	c, err := conv(in)
	if err != nil {
		return err
	}
	root, ctr, err := c.DecodeEvents(stream.NewDecoder(bytes.NewReader(in)))
	if err != nil {
		return err
	}
	if ctr != nil {
		err = c.EncodeContainer(w, ctr)
	} else {
		err = c.Encode(w, root)
	}
	if err != nil {
		return fmt.Errorf("error encoding: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}
