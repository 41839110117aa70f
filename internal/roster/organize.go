package roster

import (
	"slices"
	"strings"
)

// DeduplicateAndSort returns a repaired copy of doc. Within each category
// the first case-insensitive occurrence of a name wins (keeping its
// casing) and the survivors are sorted ascending case-insensitively.
//
// The pass is idempotent. Names present in both categories are left alone;
// see Document.Conflicts.
func DeduplicateAndSort(doc *Document) *Document {
	out := NewDocument()
	for _, c := range Categories {
		*out.list(c) = dedupSorted(*doc.list(c))
	}
	return out
}

func dedupSorted(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, name)
	}

	slices.SortStableFunc(unique, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return unique
}
