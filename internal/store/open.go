package store

import (
	"fmt"

	"github.com/spf13/afero"
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Open returns the persister for driver at path.
func Open(driver, path string) (Persister, error) {
	switch driver {
	case DriverFile, "":
		return NewFileStore(afero.NewOsFs(), path), nil
	case DriverSQLite:
		s, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver: %q", driver)
	}
}
