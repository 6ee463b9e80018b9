package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnana997/cewrap/pkg/util"
	"github.com/gnana997/cewrap/pkg/watch"
)

// runWatch is the entry point for `cewrap watch`. Settings are resolved again
// on every regeneration so config edits take effect without a restart.
func runWatch(args []string) error {
	flags, _, err := parseFlags("watch", args, nil)
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

	regenerate := func() error {
		current, err := resolveSettings(flags, getenv)
		if err != nil {
			return err
		}
		_, err = p.generate(current)
		return err
	}

	// A failing first run is reported but does not stop watching.
	if _, err := p.generate(s); err != nil {
		logger.Error("[react-wrappers] - Generation failed", "error", err)
	}

	w, err := watch.New(s.watchedFiles(), regenerate, watch.Options{}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}
