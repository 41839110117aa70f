package normalizer

import (
	"strings"
	"testing"
	"unicode"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNormalizeExamples(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"underscores and punctuation", "j_ohn_doe!!", "j ohn doe"},
		{"only underscores", "___", ""},
		{"empty", "", ""},
		{"surrounding whitespace", "  Alice  ", "Alice"},
		{"inner whitespace kept", "Big  Bob", "Big  Bob"},
		{"digits kept", "player_123", "player 123"},
		{"non ascii letters dropped", "Zoë", "Zo"},
		{"symbols only", "!@#$%^&*()", ""},
		{"tab inside kept", "a\tb", "a\tb"},
		{"leading underscore trimmed", "_carol_", "carol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

// Underscore-separated names become spaced names.
func TestNormalizeUnderscoredName(t *testing.T) {
	if got := Normalize("john_doe!!"); got != "john doe" {
		t.Errorf("expected %q, got %q", "john doe", got)
	}
}

func TestIsValid(t *testing.T) {
	if IsValid("___") {
		t.Error("expected underscores-only input to be invalid")
	}
	if !IsValid("x") {
		t.Error("expected single letter to be valid")
	}
}

// genRawName produces strings mixing letters, digits, underscores, spaces
// and characters that normalization must drop.
func genRawName() gopter.Gen {
	return gen.SliceOf(gen.OneConstOf(
		'a', 'Z', 'q', '7', '0', '_', ' ', '\t', '!', '-', '.', 'é', '@',
	)).Map(func(rs []rune) string {
		return string(rs)
	})
}

func TestNormalizeIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("Normalize(Normalize(s)) == Normalize(s)", prop.ForAll(
		func(raw string) bool {
			once := Normalize(raw)
			return Normalize(once) == once
		},
		genRawName(),
	))

	properties.Property("output contains only ASCII alphanumerics and whitespace", prop.ForAll(
		func(raw string) bool {
			for _, r := range Normalize(raw) {
				if r > unicode.MaxASCII {
					return false
				}
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("output has no surrounding whitespace", prop.ForAll(
		func(raw string) bool {
			out := Normalize(raw)
			return out == strings.TrimSpace(out)
		},
		genRawName(),
	))

	properties.TestingRun(t)
}
