package store

import (
	"context"
	"path/filepath"
	"sync"

	"ptjobs/internal/domain"
)

const storageFilename = "storage.json"

// FileStore keeps every key in a single JSON document on disk. Each write
// rewrites the whole document, so SetMany and RemoveMany are atomic.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, storageFilename)}
}

// Path returns the document location.
func (s *FileStore) Path() string { return s.path }

// Get returns the value stored under key.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := readDocument(s.path)
	if err != nil {
		return "", false, err
	}
	v, ok := doc[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

// Remove deletes key.
func (s *FileStore) Remove(ctx context.Context, key string) error {
	return s.RemoveMany(ctx, key)
}

// SetMany stores all entries in one document replacement.
func (s *FileStore) SetMany(ctx context.Context, entries map[string]string) error {
	return s.update(ctx, func(doc map[string]string) bool {
		for k, v := range entries {
			doc[k] = v
		}
		return len(entries) > 0
	})
}

// RemoveMany deletes all keys in one document replacement.
func (s *FileStore) RemoveMany(ctx context.Context, keys ...string) error {
	return s.update(ctx, func(doc map[string]string) bool {
		changed := false
		for _, k := range keys {
			if _, ok := doc[k]; ok {
				delete(doc, k)
				changed = true
			}
		}
		return changed
	})
}

// update applies fn to the current document and writes it back if fn
// reports a change. A corrupted document is replaced rather than merged.
func (s *FileStore) update(ctx context.Context, fn func(map[string]string) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := readDocument(s.path)
	if err != nil {
		if !isCorrupted(err) {
			return err
		}
		doc = make(map[string]string)
		fn(doc)
		return writeDocument(s.path, doc, 0o600)
	}
	if !fn(doc) {
		return nil
	}
	return writeDocument(s.path, doc, 0o600)
}

// Compile-time assertion that FileStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*FileStore)(nil)
