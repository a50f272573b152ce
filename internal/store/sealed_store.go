package store

import (
	"context"
	"errors"

	"ptjobs/internal/domain"
)

// SealedStore encrypts every value before handing it to the inner store.
// Keys stay in the clear; each value is bound to its key so values cannot be
// swapped between keys.
type SealedStore struct {
	inner      domain.KeyValueStore
	passphrase string
	params     ScryptParams
}

// NewSealedStore wraps inner. An empty passphrase is rejected.
func NewSealedStore(inner domain.KeyValueStore, passphrase string, params ScryptParams) (*SealedStore, error) {
	if passphrase == "" {
		return nil, errors.New("store: sealed store requires a passphrase")
	}
	if params.N == 0 {
		params = DefaultScryptParams()
	}
	return &SealedStore{inner: inner, passphrase: passphrase, params: params}, nil
}

func (s *SealedStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	pt, err := unseal(s.passphrase, []byte(key), v)
	if err != nil {
		return "", false, err
	}
	return string(pt), true, nil
}

func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *SealedStore) Remove(ctx context.Context, key string) error {
	return s.inner.RemoveMany(ctx, key)
}

func (s *SealedStore) SetMany(ctx context.Context, entries map[string]string) error {
	out := make(map[string]string, len(entries))
	for k, v := range entries {
		ct, err := seal(s.passphrase, []byte(k), []byte(v), s.params)
		if err != nil {
			return err
		}
		out[k] = ct
	}
	return s.inner.SetMany(ctx, out)
}

func (s *SealedStore) RemoveMany(ctx context.Context, keys ...string) error {
	return s.inner.RemoveMany(ctx, keys...)
}

// Close closes the inner store when it holds a handle.
func (s *SealedStore) Close() error {
	if c, ok := s.inner.(Closer); ok {
		return c.Close()
	}
	return nil
}

// Compile-time assertion that SealedStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*SealedStore)(nil)
