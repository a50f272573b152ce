// Package store provides device-local persistence for the ptjobs client.
//
// It contains concrete implementations of domain.KeyValueStore. All methods
// are concurrency-safe. Stored files typically live under the user's
// configured home directory.
//
// The package includes:
//   - FileStore: one JSON document, replaced atomically on every write
//   - SQLiteStore: a two-column table in a SQLite database
//   - MemoryStore: a map, for tests and ephemeral runs
//   - SealedStore: a wrapper that encrypts values at rest
//
// Unreadable or tampered data is reported as ErrCorrupted so callers can
// tell it apart from an unavailable backend.
package store
