package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	// Variables already set in the environment win over .env.
	_ = godotenv.Load()

	var err error
	command := os.Args[1]
	switch command {
	case "generate":
		err = runGenerate(os.Args[2:], os.Stdout)
	case "watch":
		err = runWatch(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:], os.Stdout)
	case "serve":
		err = runServe(os.Args[2:])
	case "setup":
		err = runSetup(os.Args[2:])
	case "version":
		fmt.Printf("cewrap %s\n", version)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "cewrap %s: %v\n", command, err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cewrap <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Generate React wrappers from custom-elements.json")
	fmt.Fprintln(w, "  watch      Generate, then regenerate when the manifest or config changes")
	fmt.Fprintln(w, "  inspect    Show the React API of one component (--wrapper, --types)")
	fmt.Fprintln(w, "  serve      Start MCP server on stdio (--log file)")
	fmt.Fprintln(w, "  setup      Register the MCP server with installed AI agents")
	fmt.Fprintln(w, "  version    Print version")
	fmt.Fprintln(w, "  help       Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags (generate, watch, inspect, serve):")
	fmt.Fprintln(w, "  --manifest path   custom-elements.json (env "+envManifest+")")
	fmt.Fprintln(w, "  --outdir dir      output directory (env "+envOutDir+")")
	fmt.Fprintln(w, "  --config file     .cewrap/config.yaml or cewrap.toml")
	fmt.Fprintln(w, "  --debug           debug logging (env "+envDebug+")")
	fmt.Fprintln(w, "  --skip            skip generation")
}
