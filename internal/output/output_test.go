package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestVerboseOutputOnlyAppearsWhenEnabled(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		expectEmpty bool
	}{
		{"verbose disabled - no output", false, true},
		{"verbose enabled - has output", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			out := New(Config{
				Verbose:   tt.verbose,
				Writer:    &buf,
				ErrWriter: &buf,
				IsTTY:     false,
			})

			out.Verbose("test message")

			if tt.expectEmpty && buf.Len() > 0 {
				t.Errorf("expected no output when verbose disabled, got: %q", buf.String())
			}
			if !tt.expectEmpty && !strings.Contains(buf.String(), "test message") {
				t.Errorf("expected output to contain 'test message', got: %q", buf.String())
			}
		})
	}
}

func TestInfoOutputAlwaysShown(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		var buf bytes.Buffer
		out := New(Config{Verbose: verbose, Writer: &buf, ErrWriter: &buf})

		out.Info("Added '%s' to '%s' list", "alice", "msr")

		if buf.String() != "Added 'alice' to 'msr' list\n" {
			t.Errorf("verbose=%v: unexpected Info output %q", verbose, buf.String())
		}
	}
}

func TestErrorOutputGoesToErrWriter(t *testing.T) {
	var stdoutBuf, stderrBuf bytes.Buffer
	out := New(Config{
		Writer:    &stdoutBuf,
		ErrWriter: &stderrBuf,
	})

	out.Error("error message")

	if stdoutBuf.Len() > 0 {
		t.Errorf("expected no stdout output for Error, got: %q", stdoutBuf.String())
	}
	if !strings.Contains(stderrBuf.String(), "error message") {
		t.Errorf("expected stderr to contain 'error message', got: %q", stderrBuf.String())
	}
}

func TestPromptOnlyWhenInteractive(t *testing.T) {
	tests := []struct {
		name     string
		isTTY    bool
		expected string
	}{
		{"terminal shows prompt", true, "> "},
		{"piped input hides prompt", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			out := New(Config{Writer: &buf, IsTTY: tt.isTTY})

			out.Prompt("> ")

			if buf.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, buf.String())
			}
		})
	}
}

func TestNewWithNilWriters(t *testing.T) {
	out := New(Config{})
	if out.config.Writer == nil || out.config.ErrWriter == nil {
		t.Error("expected nil writers to be replaced by stdout/stderr")
	}
	if out.IsVerbose() || out.IsTTY() {
		t.Error("expected zero Config to be quiet and non-interactive")
	}
}

func TestMessagesEndWithSingleNewline(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("Info terminates every message with exactly one newline", prop.ForAll(
		func(msg string, trailing bool) bool {
			if trailing {
				msg += "\n"
			}
			var buf bytes.Buffer
			out := New(Config{Writer: &buf, ErrWriter: &buf})
			out.Info("%s", msg)
			got := buf.String()
			return strings.HasSuffix(got, "\n") && !strings.HasSuffix(got, "\n\n")
		},
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
