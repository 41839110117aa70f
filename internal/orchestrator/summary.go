package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"roster/internal/roster"
)

// CategorySummary counts one category before and after the pass.
type CategorySummary struct {
	Before int
	After  int
}

// Summary contains statistics from an organize run.
type Summary struct {
	Location          string
	ByCategory        map[roster.Category]CategorySummary
	DuplicatesRemoved int
	Changed           bool     // The repaired document differs from the stored one
	Saved             bool     // The repaired document was written back
	DryRun            bool     // Saving was suppressed
	Conflicts         []string // Names present in both categories
	Duration          time.Duration
}

// GenerateSummary compares the stored and repaired documents.
func GenerateSummary(before, after *roster.Document, location string) *Summary {
	summary := &Summary{
		Location:   location,
		ByCategory: make(map[roster.Category]CategorySummary, len(roster.Categories)),
		Changed:    !before.Equal(after),
		Conflicts:  after.Conflicts(),
	}

	for _, c := range roster.Categories {
		cs := CategorySummary{Before: before.Len(c), After: after.Len(c)}
		summary.ByCategory[c] = cs
		summary.DuplicatesRemoved += cs.Before - cs.After
	}

	return summary
}

// PrintSummary returns a formatted summary string.
func (s *Summary) PrintSummary() string {
	var b strings.Builder

	switch {
	case !s.Changed:
		fmt.Fprintf(&b, "%s is already organized", s.Location)
	case s.DryRun:
		fmt.Fprintf(&b, "Would remove %d duplicates and sort lists in %s", s.DuplicatesRemoved, s.Location)
	default:
		fmt.Fprintf(&b, "Duplicates removed and lists sorted in %s", s.Location)
	}

	for _, c := range roster.Categories {
		cs := s.ByCategory[c]
		fmt.Fprintf(&b, "\n  %s: %d -> %d", c, cs.Before, cs.After)
	}

	if len(s.Conflicts) > 0 {
		fmt.Fprintf(&b, "\n  in both lists: %s", strings.Join(s.Conflicts, ", "))
	}

	return b.String()
}
