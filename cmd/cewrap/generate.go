package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gnana997/cewrap/pkg/manifest"
	"github.com/gnana997/cewrap/pkg/output"
	"github.com/gnana997/cewrap/pkg/parser"
	"github.com/gnana997/cewrap/pkg/util"
	"github.com/gnana997/cewrap/pkg/wrapper"
)

// pipeline holds the long-lived pieces of generation. The writer's hash
// cache survives across runs in watch mode.
type pipeline struct {
	logger  *slog.Logger
	parsers *parser.ParserManager
	writer  *output.Writer
}

func newPipeline(logger *slog.Logger) (*pipeline, error) {
	parsers := parser.NewParserManager(logger, 0)
	writer, err := output.NewWriter(output.WriterConfig{
		Verifier: output.NewVerifier(parsers),
		Logger:   logger,
	})
	if err != nil {
		_ = parsers.Close()
		return nil, err
	}
	return &pipeline{logger: logger, parsers: parsers, writer: writer}, nil
}

// generate runs one generation. A fresh Generator is used per run so that
// package.json edits are picked up.
func (p *pipeline) generate(s *settings) (*wrapper.Result, error) {
	gen := wrapper.New(s.Options, p.writer, p.logger)
	if s.Options.Skip {
		return gen.Run(nil)
	}
	pkg, err := manifest.LoadFromFile(s.ManifestPath)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("loaded manifest",
		"path", s.ManifestPath,
		"components", len(pkg.AllComponents()))
	return gen.Run(pkg)
}

func (p *pipeline) close() {
	_ = p.parsers.Close()
}

// runGenerate is the entry point for `cewrap generate`.
func runGenerate(args []string, w io.Writer) error {
	flags, _, err := parseFlags("generate", args, nil)
	if err != nil {
		return err
	}
	s, err := resolveSettings(flags, getenv)
	if err != nil {
		return err
	}
	logger := util.NewLogger(util.CLILoggerConfig(s.Options.Debug))

	p, err := newPipeline(logger)
	if err != nil {
		return err
	}
	defer p.close()

	result, err := p.generate(s)
	if err != nil {
		return err
	}
	printResult(w, result, p.writer)
	return nil
}

func printResult(w io.Writer, result *wrapper.Result, writer *output.Writer) {
	if result.Skipped {
		fmt.Fprintln(w, "Skipped.")
		return
	}
	written, unchanged := writer.Stats()
	fmt.Fprintf(w, "Generated %d components into %s (%d files written, %d unchanged) in %dms\n",
		len(result.Components), result.OutDir, written, unchanged, result.Timings.Total.Milliseconds())
}
