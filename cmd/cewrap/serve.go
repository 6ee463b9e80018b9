package main

import (
	"flag"

	"github.com/gnana997/cewrap/pkg/manifest"
	mcpserver "github.com/gnana997/cewrap/pkg/mcp"
	"github.com/gnana997/cewrap/pkg/mcplog"
	"github.com/gnana997/cewrap/pkg/util"
	"github.com/gnana997/cewrap/pkg/wrapper"
)

// runServe is the entry point for `cewrap serve`. Logs go to stderr; stdout
// carries the MCP transport.
func runServe(args []string) error {
	var logPath string
	flags, _, err := parseFlags("serve", args, func(fs *flag.FlagSet) {
		fs.StringVar(&logPath, "log", "", "append a JSONL record of every tool call to this file")
	})
	if err != nil {
		return err
	}
	s, err := resolveSettings(flags, getenv)
	if err != nil {
		return err
	}
	if logPath == "" {
		logPath = s.MCPLog
	}
	logger := util.NewLogger(util.CLILoggerConfig(s.Options.Debug))

	pkg, err := manifest.LoadFromFile(s.ManifestPath)
	if err != nil {
		return err
	}

	callLog, err := mcplog.NewLogger(logPath)
	if err != nil {
		return err
	}
	defer callLog.Close()

	srv := mcpserver.NewServer(pkg, wrapper.New(s.Options, nil, logger), callLog)
	logger.Info("serving MCP on stdio",
		"manifest", s.ManifestPath,
		"components", len(pkg.AllComponents()),
		"log", logPath)
	return srv.ServeStdio()
}
