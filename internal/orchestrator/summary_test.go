package orchestrator

import (
	"strings"
	"testing"

	"roster/internal/roster"
)

// TestGenerateSummary_Unchanged tests that an organized document reports no work.
func TestGenerateSummary_Unchanged(t *testing.T) {
	doc := &roster.Document{MSR: []string{"alice", "Bob"}, QT: []string{"carol"}}

	summary := GenerateSummary(doc, doc.Clone(), "igns.json")

	if summary.Changed {
		t.Error("Expected Changed=false for identical documents")
	}
	if summary.DuplicatesRemoved != 0 {
		t.Errorf("Expected DuplicatesRemoved=0, got %d", summary.DuplicatesRemoved)
	}
	if got := summary.ByCategory[roster.CategoryMSR]; got.Before != 2 || got.After != 2 {
		t.Errorf("Expected msr 2 -> 2, got %d -> %d", got.Before, got.After)
	}
	if !strings.HasPrefix(summary.PrintSummary(), "igns.json is already organized") {
		t.Errorf("Unexpected summary: %q", summary.PrintSummary())
	}
}

// TestGenerateSummary_CountsDuplicates tests duplicate counting across categories.
func TestGenerateSummary_CountsDuplicates(t *testing.T) {
	before := &roster.Document{MSR: []string{"Bob", "alice", "BOB"}, QT: []string{"x", "X", "y"}}
	after := roster.DeduplicateAndSort(before)

	summary := GenerateSummary(before, after, "igns.json")

	if !summary.Changed {
		t.Error("Expected Changed=true")
	}
	if summary.DuplicatesRemoved != 2 {
		t.Errorf("Expected DuplicatesRemoved=2, got %d", summary.DuplicatesRemoved)
	}
	if got := summary.ByCategory[roster.CategoryQT]; got.Before != 3 || got.After != 2 {
		t.Errorf("Expected qt 3 -> 2, got %d -> %d", got.Before, got.After)
	}
}

// TestGenerateSummary_SortOnly tests that reordering alone counts as a change.
func TestGenerateSummary_SortOnly(t *testing.T) {
	before := &roster.Document{MSR: []string{"bob", "alice"}, QT: []string{}}
	after := roster.DeduplicateAndSort(before)

	summary := GenerateSummary(before, after, "igns.json")

	if !summary.Changed {
		t.Error("Expected Changed=true for a reordered list")
	}
	if summary.DuplicatesRemoved != 0 {
		t.Errorf("Expected DuplicatesRemoved=0, got %d", summary.DuplicatesRemoved)
	}
}

// TestPrintSummary tests the formatted output for each outcome.
func TestPrintSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    []string
	}{
		{
			name:    "saved",
			summary: Summary{Location: "igns.json", Changed: true, Saved: true},
			want:    []string{"Duplicates removed and lists sorted in igns.json", "  msr: 0 -> 0", "  qt: 0 -> 0"},
		},
		{
			name:    "dry run",
			summary: Summary{Location: "igns.json", Changed: true, DryRun: true, DuplicatesRemoved: 3},
			want:    []string{"Would remove 3 duplicates and sort lists in igns.json"},
		},
		{
			name:    "conflicts",
			summary: Summary{Location: "igns.json", Conflicts: []string{"alice", "bob"}},
			want:    []string{"already organized", "  in both lists: alice, bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.summary.PrintSummary()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("PrintSummary() = %q, missing %q", got, w)
				}
			}
		})
	}
}
