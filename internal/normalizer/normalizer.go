// Package normalizer handles display name normalization for the roster.
package normalizer

import (
	"strings"
	"unicode"
)

// Normalize converts raw user input into a canonical display name.
// Underscores become spaces, every rune that is not an ASCII letter, ASCII
// digit or whitespace is dropped, and surrounding whitespace is trimmed.
//
// An empty result means the input carried no usable characters; callers
// must treat it as an invalid name.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		if r == '_' {
			b.WriteByte(' ')
			continue
		}
		if isKept(r) {
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}

// isKept reports whether r survives normalization.
func isKept(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	default:
		return unicode.IsSpace(r)
	}
}

// IsValid reports whether raw normalizes to a non-empty name.
func IsValid(raw string) bool {
	return Normalize(raw) != ""
}
