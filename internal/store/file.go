package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"roster/internal/roster"
)

// FilePermissionsReadWrite is the mode used for the document file.
const FilePermissionsReadWrite = 0o644

// FileStore keeps the document as a JSON file.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore returns a store for the JSON document at path on fs.
// A nil fs means the operating system filesystem.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileStore{fs: fs, path: path}
}

func (s *FileStore) Location() string {
	return s.path
}

// Path returns the document path, used by the watcher.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(_ context.Context) (*roster.Document, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, &StoreError{Type: PersistenceUnavailable, Location: s.path, Err: err}
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, &StoreError{Type: InvalidDocument, Location: s.path, Err: err}
	}
	return doc, nil
}

// Save writes the document to a temporary sibling and renames it over the
// target, so readers see either the old or the new document.
func (s *FileStore) Save(_ context.Context, doc *roster.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return &StoreError{Type: PersistenceWriteFailed, Location: s.path, Err: err}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return &StoreError{Type: PersistenceWriteFailed, Location: s.path, Err: err}
		}
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, FilePermissionsReadWrite); err != nil {
		return &StoreError{Type: PersistenceWriteFailed, Location: s.path, Err: err}
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return &StoreError{Type: PersistenceWriteFailed, Location: s.path, Err: err}
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
