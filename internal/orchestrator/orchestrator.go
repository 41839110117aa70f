// Package orchestrator runs the roster maintenance pass against a stored
// document.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"roster/internal/logger"
	"roster/internal/roster"
	"roster/internal/store"
)

// Options controls an organize run.
type Options struct {
	DryRun bool // Report what would change without saving
}

// Organize loads the document, deduplicates and re-sorts every category and
// saves the result when it differs from what was stored. A missing or
// corrupt document is treated as empty, as everywhere else.
func Organize(ctx context.Context, p store.Persister, opts Options) (*Summary, error) {
	start := time.Now()
	log := logger.FromContext(ctx).With("location", p.Location())

	before := store.LoadOrEmpty(ctx, p)
	after := roster.DeduplicateAndSort(before)

	summary := GenerateSummary(before, after, p.Location())
	summary.DryRun = opts.DryRun

	for _, name := range summary.Conflicts {
		log.Warn("name is listed in both categories; left in place", "name", name)
	}

	if summary.Changed && !opts.DryRun {
		if err := p.Save(ctx, after); err != nil {
			return nil, fmt.Errorf("failed to save organized document: %w", err)
		}
		summary.Saved = true
		log.Debug("document rewritten", "duplicates_removed", summary.DuplicatesRemoved)
	}

	summary.Duration = time.Since(start)
	return summary, nil
}
