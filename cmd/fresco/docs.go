package main

import (
	"flag"

	"github.com/frescoui/fresco/pkg/terminal"
)

func cmdDocs(out *terminal.Writer, args []string) error {
	fs := flag.NewFlagSet("docs", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return out.Markdown(docsMarkdown)
}
