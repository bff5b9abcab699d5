// Command fresco runs hot-reloading terminal dashboards.
//
//	fresco run [dashboard.yaml]   run a dashboard (demo when no file)
//	fresco attach                 attach to a shared-memory dashboard
//	fresco init [dir]             write the demo definition to disk
//	fresco docs                   show the definition format reference
//	fresco version                print version information
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/frescoui/fresco/pkg/terminal"
)

// Version information, set via ldflags during build.
var (
	version   = "0.1.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	out := terminal.New()
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"run"}
	}

	var err error
	switch args[0] {
	case "run":
		err = cmdRun(out, args[1:])
	case "attach":
		err = cmdAttach(out, args[1:])
	case "init":
		err = cmdInit(out, args[1:])
	case "docs":
		err = cmdDocs(out, args[1:])
	case "version", "--version", "-v":
		printVersion()
	case "help", "--help", "-h":
		printUsage(out)
	default:
		// `fresco dashboard.yaml` is shorthand for `fresco run`.
		if _, statErr := os.Stat(args[0]); statErr == nil {
			err = cmdRun(out, args)
		} else {
			out.Error("unknown command %q", args[0])
			printUsage(out)
			os.Exit(2)
		}
	}
	if err != nil {
		out.Error("%v", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("fresco %s\n", version)
	fmt.Printf("  commit:     %s\n", commit)
	fmt.Printf("  built:      %s\n", buildDate)
	fmt.Printf("  go version: %s\n", runtime.Version())
}

func printUsage(out *terminal.Writer) {
	out.Println("fresco — hot-reloading terminal dashboards")
	out.Newline()
	out.Bold("Usage:")
	out.Println("  fresco run [flags] [dashboard.yaml]")
	out.Println("  fresco attach [flags]")
	out.Println("  fresco init [dir]")
	out.Println("  fresco docs")
	out.Println("  fresco version")
	out.Newline()
	out.Bold("Run flags:")
	out.Println("  -config PATH      config file (default ~/.config/fresco/config.yaml)")
	out.Println("  -backend NAME     renderer backend: tcell, term or shm")
	out.Println("  -theme NAME       color theme")
	out.Println("  -debug-addr ADDR  serve /healthz /metrics /api/state /api/frame")
	out.Println("  -state PATH       persist dashboard state in a SQLite database")
	out.Println("  -shm-path PATH    shared-memory segment (backend shm)")
	out.Println("  -max-fps N        frame rate cap")
	out.Newline()
	out.Bold("Attach flags:")
	out.Println("  -shm-path PATH    shared-memory segment to attach to (required)")
}
