// Package watcher re-runs a handler whenever the roster document changes
// on disk.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"roster/internal/logger"
)

// WatchConfig contains watcher settings.
type WatchConfig struct {
	Debounce time.Duration // Quiet period before the handler runs (default: 250ms)
}

// DefaultWatchConfig returns a WatchConfig with sensible defaults.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		Debounce: 250 * time.Millisecond,
	}
}

// WatchSummary contains stats from the watch session.
type WatchSummary struct {
	Runs     int
	Failures int
	Duration time.Duration
}

// Handler processes the changed document. Runs never overlap.
type Handler func(path string) error

// Watcher monitors a single document file.
type Watcher struct {
	config    *WatchConfig
	handler   Handler
	log       logger.Logger
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	target    string
	done      chan struct{}
	wg        sync.WaitGroup
	startTime time.Time

	// runMu serializes handler runs.
	runMu sync.Mutex

	mu       sync.Mutex
	runs     int
	failures int
}

// New creates a new Watcher with the given configuration.
// If config is nil, default configuration is used.
func New(config *WatchConfig, handler Handler, log logger.Logger) *Watcher {
	if config == nil {
		config = DefaultWatchConfig()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Watcher{
		config:  config,
		handler: handler,
		log:     log,
		done:    make(chan struct{}),
	}
}

// Start begins watching path. The parent directory is watched because
// editors and atomic saves replace the file rather than writing in place.
func (w *Watcher) Start(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if w.handler == nil {
		return errors.New("watcher: nil handler")
	}

	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.fsWatcher.Add(filepath.Dir(abs)); err != nil {
		w.fsWatcher.Close()
		return err
	}

	w.target = abs
	w.startTime = time.Now()
	w.done = make(chan struct{})
	w.debouncer = NewDebouncer(w.config.Debounce, w.run)

	w.wg.Add(1)
	go w.processEvents()

	return nil
}

// Stop gracefully shuts down the watcher and returns a summary of the session.
func (w *Watcher) Stop() *WatchSummary {
	close(w.done)
	w.wg.Wait()

	if w.debouncer != nil {
		w.debouncer.Stop()
	}
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	// Wait for an in-flight handler run.
	w.runMu.Lock()
	defer w.runMu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	return &WatchSummary{
		Runs:     w.runs,
		Failures: w.failures,
		Duration: time.Since(w.startTime),
	}
}

// processEvents handles file system events from fsnotify.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.debouncer.Trigger()
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// relevant reports whether event changed the watched document's content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (w *Watcher) run() {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}

	err := w.handler(w.target)

	w.mu.Lock()
	w.runs++
	if err != nil {
		w.failures++
	}
	w.mu.Unlock()

	if err != nil {
		w.log.Error("document handler failed", "path", w.target, "error", err)
	}
}

// GetConfig returns the current watcher configuration.
func (w *Watcher) GetConfig() *WatchConfig {
	return w.config
}

// IsRunning returns true if the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	select {
	case <-w.done:
		return false
	default:
		return w.fsWatcher != nil
	}
}
