// Package watch regenerates wrappers when the manifest or project
// configuration changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the burst of events a single save produces.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period before regenerating. Defaults to
	// DefaultDebounce.
	Debounce time.Duration
}

// RegenerateFunc runs one generation.
type RegenerateFunc func() error

// Watcher calls a RegenerateFunc whenever one of a set of files changes.
// Regenerations are debounced and never overlap.
//
// Usage:
//
//	w, err := watch.New([]string{"custom-elements.json"}, regenerate, watch.Options{}, logger)
//	if err != nil {
//	    return err
//	}
//	return w.Run(ctx)
type Watcher struct {
	watcher    *fsnotify.Watcher
	files      map[string]bool
	regenerate RegenerateFunc
	debounce   time.Duration
	logger     *slog.Logger

	timerMu sync.Mutex
	timer   *time.Timer

	// runMu serializes regenerations.
	runMu    sync.Mutex
	runs     int
	failures int

	mu       sync.Mutex
	started  bool
	stopped  bool
	stopChan chan struct{}
}

// Stats reports watcher activity.
type Stats struct {
	Regenerations int
	Failures      int
	Pending       bool
	IsRunning     bool
}

// New creates a Watcher for files. Files are watched through their parent
// directories so editors that save by renaming are still seen.
func New(files []string, regenerate RegenerateFunc, opts Options, logger *slog.Logger) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to watch")
	}
	if regenerate == nil {
		return nil, errors.New("no regenerate function")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	abs := make(map[string]bool, len(files))
	for _, f := range files {
		p, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		abs[p] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		watcher:    fsw,
		files:      abs,
		regenerate: regenerate,
		debounce:   opts.Debounce,
		logger:     logger,
		stopChan:   make(chan struct{}),
	}, nil
}

// Start begins watching in the background.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return errors.New("watcher already stopped")
	}
	if w.started {
		return errors.New("watcher already started")
	}

	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w.started = true
	go w.eventLoop()
	w.logger.Info("watching for changes", "files", len(w.files))
	return nil
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}

// Stop stops watching and waits for a regeneration already running to
// finish. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopChan)
	w.mu.Unlock()

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.timerMu.Unlock()

	err := w.watcher.Close()

	// Wait out the run in progress; later runs see stopChan closed.
	w.runMu.Lock()
	defer w.runMu.Unlock()

	w.logger.Info("watcher stopped")
	return err
}

// Stats returns watcher statistics.
func (w *Watcher) Stats() Stats {
	w.timerMu.Lock()
	pending := w.timer != nil
	w.timerMu.Unlock()

	w.runMu.Lock()
	runs, failures := w.runs, w.failures
	w.runMu.Unlock()

	w.mu.Lock()
	running := w.started && !w.stopped
	w.mu.Unlock()

	return Stats{
		Regenerations: runs,
		Failures:      failures,
		Pending:       pending,
		IsRunning:     running,
	}
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.files[filepath.Clean(event.Name)] {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	w.logger.Debug("file event", "op", event.Op.String(), "file", event.Name)
	w.schedule()
}

// schedule (re)starts the debounce timer.
func (w *Watcher) schedule() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(w.debounce, func() {
		w.timerMu.Lock()
		if w.timer == timer {
			w.timer = nil
		}
		w.timerMu.Unlock()
		w.run()
	})
	w.timer = timer
}

func (w *Watcher) run() {
	if w.isStopping() {
		return
	}

	w.runMu.Lock()
	defer w.runMu.Unlock()
	if w.isStopping() {
		return
	}

	start := time.Now()
	w.runs++
	if err := w.regenerate(); err != nil {
		w.failures++
		w.logger.Error("regeneration failed", "error", err)
		return
	}
	w.logger.Info("regenerated", "ms", time.Since(start).Milliseconds())
}

func (w *Watcher) isStopping() bool {
	select {
	case <-w.stopChan:
		return true
	default:
		return false
	}
}
