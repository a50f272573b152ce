package interfaces

import "context"

// KeyValueStore is durable device-local storage with string keys and values.
//
// Get reports ok=false for an absent key. Removing an absent key is not an
// error. SetMany and RemoveMany either apply every entry or none.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error

	SetMany(ctx context.Context, entries map[string]string) error
	RemoveMany(ctx context.Context, keys ...string) error
}
