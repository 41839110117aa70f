// Package output handles user-facing CLI output: command results, verbose
// detail and the interactive prompt.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Config holds output configuration.
type Config struct {
	Verbose   bool      // Enable verbose output
	Writer    io.Writer // Output destination (default: os.Stdout)
	ErrWriter io.Writer // Error output destination (default: os.Stderr)
	IsTTY     bool      // Whether input comes from a terminal (enables the prompt)
}

// Output writes line-oriented messages. It is safe for use by the watch
// loop and the command loop at the same time.
type Output struct {
	config Config
	mu     sync.Mutex
}

// New creates a new Output instance with the given configuration.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}
	return &Output{
		config: config,
	}
}

// DefaultConfig returns a Config writing to stdout/stderr, with the prompt
// enabled only when both stdin and stdout are terminals.
func DefaultConfig() Config {
	isTTY := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	return Config{
		Verbose:   false,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		IsTTY:     isTTY,
	}
}

// Verbose prints a message only when verbose mode is enabled.
func (o *Output) Verbose(format string, args ...interface{}) {
	if !o.config.Verbose {
		return
	}
	o.writeLine(o.config.Writer, format, args...)
}

// Info prints an informational message (always shown).
func (o *Output) Info(format string, args ...interface{}) {
	o.writeLine(o.config.Writer, format, args...)
}

// Error prints an error message to stderr.
func (o *Output) Error(format string, args ...interface{}) {
	o.writeLine(o.config.ErrWriter, format, args...)
}

// Prompt prints the interactive prompt without a trailing newline.
// Nothing is printed when input is piped.
func (o *Output) Prompt(prompt string) {
	if !o.config.IsTTY {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprint(o.config.Writer, prompt)
}

func (o *Output) writeLine(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprint(w, msg)
}

// IsVerbose returns whether verbose mode is enabled.
func (o *Output) IsVerbose() bool {
	return o.config.Verbose
}

// IsTTY returns whether the session is interactive.
func (o *Output) IsTTY() bool {
	return o.config.IsTTY
}
