// Package store persists the roster document.
package store

import (
	"context"
	"errors"
	"fmt"

	"roster/internal/logger"
	"roster/internal/roster"
)

// StoreErrorType represents the type of persistence error.
type StoreErrorType string

const (
	PersistenceUnavailable StoreErrorType = "PERSISTENCE_UNAVAILABLE"
	InvalidDocument        StoreErrorType = "INVALID_DOCUMENT"
	PersistenceWriteFailed StoreErrorType = "PERSISTENCE_WRITE_FAILED"
)

// Sentinels for errors.Is; only the Type field is compared.
var (
	ErrUnavailable = &StoreError{Type: PersistenceUnavailable}
	ErrInvalid     = &StoreError{Type: InvalidDocument}
	ErrWriteFailed = &StoreError{Type: PersistenceWriteFailed}
)

// StoreError represents an error that occurred while loading or saving.
type StoreError struct {
	Type     StoreErrorType
	Location string
	Err      error
}

func (e *StoreError) Error() string {
	switch e.Type {
	case PersistenceUnavailable:
		return fmt.Sprintf("roster document unavailable: %s: %v", e.Location, e.Err)
	case InvalidDocument:
		return fmt.Sprintf("invalid roster document in %s: %v", e.Location, e.Err)
	case PersistenceWriteFailed:
		return fmt.Sprintf("failed to write roster document %s: %v", e.Location, e.Err)
	default:
		return fmt.Sprintf("store error: %v", e.Err)
	}
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is matches any *StoreError with the same Type.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// Persister loads and saves the whole document in one step.
type Persister interface {
	// Load returns the stored document. A missing or unreadable backing
	// resource yields PersistenceUnavailable, bad content InvalidDocument.
	Load(ctx context.Context) (*roster.Document, error)
	// Save replaces the stored document. Failures are PersistenceWriteFailed.
	Save(ctx context.Context, doc *roster.Document) error
	// Location names the backing resource for messages.
	Location() string
	Close() error
}

// LoadOrEmpty loads the document and falls back to an empty one when the
// backing resource is missing or corrupt. It never fails.
func LoadOrEmpty(ctx context.Context, p Persister) *roster.Document {
	log := logger.FromContext(ctx)

	doc, err := p.Load(ctx)
	if err == nil {
		return doc
	}

	switch {
	case errors.Is(err, ErrUnavailable):
		log.Info("no roster document, starting empty", "location", p.Location())
	case errors.Is(err, ErrInvalid):
		log.Warn("roster document is corrupt, starting empty", "location", p.Location(), "error", err)
	default:
		log.Warn("could not load roster document, starting empty", "location", p.Location(), "error", err)
	}
	return roster.NewDocument()
}
