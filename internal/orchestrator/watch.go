package orchestrator

import (
	"context"

	"roster/internal/logger"
	"roster/internal/output"
	"roster/internal/store"
	"roster/internal/watcher"
)

// Watch organizes the document once and then again after every external
// change, until ctx is cancelled. Organize only saves when something
// changed, so its own writes settle after one extra no-op run.
func Watch(ctx context.Context, fs *store.FileStore, cfg *watcher.WatchConfig, out *output.Output) (*watcher.WatchSummary, error) {
	log := logger.FromContext(ctx)

	report := func(s *Summary) {
		if s.Saved {
			out.Info("%s", s.PrintSummary())
		} else {
			out.Verbose("%s", s.PrintSummary())
		}
	}

	summary, err := Organize(ctx, fs, Options{})
	if err != nil {
		return nil, err
	}
	report(summary)

	w := watcher.New(cfg, func(string) error {
		s, err := Organize(ctx, fs, Options{})
		if err != nil {
			return err
		}
		report(s)
		return nil
	}, log)

	if err := w.Start(fs.Path()); err != nil {
		return nil, err
	}
	out.Info("Watching %s (Ctrl+C to stop)", fs.Path())

	<-ctx.Done()
	return w.Stop(), nil
}
