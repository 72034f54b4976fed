package storage

import (
	"fmt"
	"io"

	"github.com/vidyasagar/tango/internal/recent"
)

const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreMemory = "memory"
)

type unknownStoreError struct {
	Name string
}

func (u unknownStoreError) Error() string {
	return fmt.Sprintf("unknown store: %q (want sqlite, file or memory)", u.Name)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open creates the store named by cfg.Store inside dataDir. The returned
// closer must be closed when the store is no longer used.
func Open(cfg *Config, dataDir string) (recent.Store, io.Closer, error) {
	switch cfg.Store {
	case "", StoreSQLite:
		s, err := OpenSQLite(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case StoreFile:
		s, err := NewFileStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	case StoreMemory:
		return NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, unknownStoreError{Name: cfg.Store}
	}
}
