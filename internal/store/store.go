package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"ptjobs/internal/domain"
)

var (
	// ErrCorrupted is returned when persisted data exists but cannot be decoded.
	ErrCorrupted = errors.New("store: persisted data is corrupted")
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Closer is implemented by stores that hold an open handle.
type Closer interface {
	Close() error
}

// Open returns the store for backend rooted at dir.
func Open(backend, dir string) (domain.KeyValueStore, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir), nil
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, sqliteFilename))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
}
