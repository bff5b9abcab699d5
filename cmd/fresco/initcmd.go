package main

import (
	"flag"

	"github.com/frescoui/fresco/pkg/terminal"
)

func cmdInit(out *terminal.Writer, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	dir := fs.Arg(0)
	if dir == "" {
		dir = "."
	}

	entry, err := writeDemo(dir)
	if err != nil {
		return err
	}
	out.Success("wrote %s", entry)
	out.Info("run it with: fresco run %s", entry)
	return nil
}
