package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"roster/internal/roster"
)

// SQLiteStore keeps the document in a SQLite database, one row per
// category holding the JSON-encoded name list.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (and if needed creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "roster.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS roster (
		category TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create roster table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Location() string {
	return s.path
}

// Load reads every category row. An empty table means no document has
// been saved yet.
func (s *SQLiteStore) Load(ctx context.Context) (*roster.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, payload FROM roster`)
	if err != nil {
		return nil, &StoreError{Type: PersistenceUnavailable, Location: s.path, Err: err}
	}
	defer func() { _ = rows.Close() }()

	doc := roster.NewDocument()
	found := 0
	for rows.Next() {
		var (
			category string
			payload  []byte
		)
		if err := rows.Scan(&category, &payload); err != nil {
			return nil, &StoreError{Type: PersistenceUnavailable, Location: s.path, Err: err}
		}
		c, ok := roster.ParseCategory(category)
		if !ok {
			continue
		}
		var names []string
		if err := json.Unmarshal(payload, &names); err != nil {
			return nil, &StoreError{
				Type:     InvalidDocument,
				Location: s.path,
				Err:      fmt.Errorf("decode %s: %w", category, err),
			}
		}
		if c == roster.CategoryMSR {
			doc.MSR = names
		} else {
			doc.QT = names
		}
		found++
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Type: PersistenceUnavailable, Location: s.path, Err: err}
	}
	if found == 0 {
		return nil, &StoreError{Type: PersistenceUnavailable, Location: s.path, Err: errors.New("no saved roster")}
	}

	doc.Fill()
	return doc, nil
}

// Save replaces both category rows in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, doc *roster.Document) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StoreError{Type: PersistenceWriteFailed, Location: s.path, Err: err}
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for _, c := range roster.Categories {
		names := doc.Names(c)
		if names == nil {
			names = []string{}
		}
		payload, err := json.Marshal(names)
		if err != nil {
			return &StoreError{Type: PersistenceWriteFailed, Location: s.path, Err: err}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO roster (category, payload) VALUES (?, ?)
			ON CONFLICT(category) DO UPDATE SET payload = excluded.payload`,
			string(c), payload,
		); err != nil {
			return &StoreError{Type: PersistenceWriteFailed, Location: s.path, Err: fmt.Errorf("upsert %s: %w", c, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StoreError{Type: PersistenceWriteFailed, Location: s.path, Err: err}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
