package store

import (
	"context"
	"sync"

	"ptjobs/internal/domain"
)

// MemoryStore is a map-backed KeyValueStore. It never fails on its own.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	return s.RemoveMany(ctx, key)
}

func (s *MemoryStore) SetMany(ctx context.Context, entries map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range entries {
		s.m[k] = v
	}
	return nil
}

func (s *MemoryStore) RemoveMany(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.m, k)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Compile-time assertion that MemoryStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*MemoryStore)(nil)
