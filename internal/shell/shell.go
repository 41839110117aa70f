// Package shell implements the line-oriented roster command loop.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"roster/internal/logger"
	"roster/internal/output"
	"roster/internal/release"
	"roster/internal/roster"
	"roster/internal/store"
)

// Prompt is shown before each command on interactive terminals.
const Prompt = "> "

const helpText = `Commands:
  msr <name>      add a name to the msr list (moves it out of qt)
  qt <name>       add a name to the qt list (moves it out of msr)
  remove <name>   remove a name from every list
  push            commit the roster as the next version and push it
  help            show this help
  quit            leave the shell`

// Releaser publishes the saved roster.
type Releaser interface {
	Release(ctx context.Context) (*release.Result, error)
}

// Session owns the in-memory document for the lifetime of the command loop.
// Every successful mutation is saved before the next command is read.
type Session struct {
	reader   io.Reader
	out      *output.Output
	store    store.Persister
	doc      *roster.Document
	releaser Releaser
}

// NewSession creates a Session over doc. releaser may be nil, in which case
// push reports that publishing is unavailable.
func NewSession(reader io.Reader, out *output.Output, p store.Persister, doc *roster.Document, releaser Releaser) *Session {
	return &Session{
		reader:   reader,
		out:      out,
		store:    p,
		doc:      doc,
		releaser: releaser,
	}
}

// Document returns the session's current document.
func (s *Session) Document() *roster.Document {
	return s.doc
}

// Run reads and executes commands until EOF, quit, or ctx is cancelled.
// Cancellation (e.g. Ctrl+C) ends the loop without error; the document on
// disk is always the one saved after the last successful command.
func (s *Session) Run(ctx context.Context) error {
	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines, readErr := s.readLines(readCtx)

	for {
		s.out.Prompt(Prompt)

		select {
		case <-ctx.Done():
			s.out.Info("")
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("error reading input: %w", err)
				}
				return nil
			}
			if quit := s.Execute(ctx, line); quit {
				return nil
			}
		}
	}
}

// readLines scans input on its own goroutine so that a blocked read does not
// keep Run from noticing cancellation.
func (s *Session) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.reader)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

// Execute runs one command line and reports whether the loop should stop.
// No command failure stops the loop.
func (s *Session) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	cmd := strings.ToLower(parts[0])
	name := strings.Join(parts[1:], " ")

	if category, ok := roster.ParseCategory(cmd); ok {
		if name == "" {
			s.out.Error("Usage: %s <username>", category)
			return false
		}
		s.add(ctx, category, name)
		return false
	}

	switch cmd {
	case "remove":
		if name == "" {
			s.out.Error("Usage: remove <username>")
			return false
		}
		s.remove(ctx, name)
	case "push":
		s.push(ctx)
	case "help", "?":
		s.out.Info(helpText)
	case "quit", "exit":
		return true
	default:
		s.out.Error("Unknown command '%s' (type 'help')", parts[0])
	}
	return false
}

func (s *Session) add(ctx context.Context, category roster.Category, name string) {
	change, err := s.doc.Add(category, name)
	if err != nil {
		s.reportRejected(err)
		return
	}

	s.out.Info("%s", DescribeChange(change))
	s.save(ctx)
}

func (s *Session) remove(ctx context.Context, name string) {
	removal, err := s.doc.Remove(name)
	if err != nil {
		s.reportRejected(err)
		return
	}

	s.out.Info("%s", DescribeRemoval(removal))
	s.save(ctx)
}

// DescribeChange renders the message reported after a successful add.
func DescribeChange(c roster.Change) string {
	if c.Moved() {
		return fmt.Sprintf("Moved '%s' from '%s' to '%s' list", c.Name, c.MovedFrom, c.Category)
	}
	return fmt.Sprintf("Added '%s' to '%s' list", c.Name, c.Category)
}

// DescribeRemoval renders the message reported after a successful remove.
func DescribeRemoval(r roster.Removal) string {
	if len(r.From) == 1 {
		return fmt.Sprintf("Removed '%s' from '%s' list", r.Name, r.From[0])
	}
	return fmt.Sprintf("Removed '%s' from both lists", r.Name)
}

func (s *Session) reportRejected(err error) {
	switch {
	case errors.Is(err, roster.ErrInvalidName):
		s.out.Error("Invalid name: nothing left after removing unsupported characters")
	default:
		s.out.Info("%v", err)
	}
}

// save persists the document. A failure is reported but the in-memory
// change stands and the loop continues.
func (s *Session) save(ctx context.Context) {
	if err := s.store.Save(ctx, s.doc); err != nil {
		logger.FromContext(ctx).Error("save failed", "location", s.store.Location(), "error", err)
		s.out.Error("Error saving file: %v", err)
		return
	}
	s.out.Verbose("Saved %s", s.store.Location())
}

func (s *Session) push(ctx context.Context) {
	if s.releaser == nil {
		s.out.Error("Publishing is not configured")
		return
	}

	result, err := s.releaser.Release(ctx)
	if err != nil {
		var stepErr *release.StepError
		if errors.As(err, &stepErr) {
			s.out.Error("Error during %s of %s: %v", stepErr.Step, stepErr.Version, stepErr.Err)
		} else {
			s.out.Error("Error: %v", err)
		}
		return
	}

	s.out.Info("%s -> %s", release.Tag(result.From), release.Tag(result.To))
	s.out.Info("Successfully pushed %s", release.Tag(result.To))
}
