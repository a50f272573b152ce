// internal/store/file_store_test.go
package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ptjobs/internal/domain"
	"ptjobs/internal/store"
)

func backends(t *testing.T) map[string]domain.KeyValueStore {
	t.Helper()

	sq, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sq.Close() })

	sealed, err := store.NewSealedStore(store.NewMemoryStore(), "pass", store.ScryptParams{N: 1 << 4, R: 8, P: 1})
	if err != nil {
		t.Fatalf("sealed store: %v", err)
	}

	return map[string]domain.KeyValueStore{
		"file":   store.NewFileStore(t.TempDir()),
		"sqlite": sq,
		"memory": store.NewMemoryStore(),
		"sealed": sealed,
	}
}

func TestKeyValueContract(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
				t.Fatalf("get missing: ok=%v err=%v", ok, err)
			}

			if err := kv.SetMany(ctx, map[string]string{"a": "1", "b": "2", "c": "3"}); err != nil {
				t.Fatalf("set many: %v", err)
			}
			if err := kv.Set(ctx, "a", "one"); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			got := map[string]string{}
			for _, k := range []string{"a", "b", "c"} {
				v, ok, err := kv.Get(ctx, k)
				if err != nil || !ok {
					t.Fatalf("get %q: ok=%v err=%v", k, ok, err)
				}
				got[k] = v
			}
			if diff := cmp.Diff(map[string]string{"a": "one", "b": "2", "c": "3"}, got); diff != "" {
				t.Fatalf("values mismatch (-want +got):\n%s", diff)
			}

			if err := kv.RemoveMany(ctx, "a", "b", "never-set"); err != nil {
				t.Fatalf("remove many: %v", err)
			}
			if err := kv.Remove(ctx, "a"); err != nil {
				t.Fatalf("remove absent key: %v", err)
			}
			if _, ok, _ := kv.Get(ctx, "a"); ok {
				t.Fatal("a still present after remove")
			}
			if v, ok, _ := kv.Get(ctx, "c"); !ok || v != "3" {
				t.Fatalf("c = %q, %v; want 3", v, ok)
			}
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()

	if err := store.NewFileStore(home).Set(ctx, "userToken", "T"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := store.NewFileStore(home).Get(ctx, "userToken")
	if err != nil || !ok || v != "T" {
		t.Fatalf("reopen get = %q, %v, %v", v, ok, err)
	}
}

func TestFileStore_CorruptedDocument(t *testing.T) {
	ctx := context.Background()
	fs := store.NewFileStore(t.TempDir())

	if err := os.WriteFile(fs.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	if _, _, err := fs.Get(ctx, "userToken"); !errors.Is(err, store.ErrCorrupted) {
		t.Fatalf("get on corrupted document: %v, want ErrCorrupted", err)
	}

	// Removing keys from a corrupted document resets it.
	if err := fs.RemoveMany(ctx, "userToken"); err != nil {
		t.Fatalf("remove on corrupted document: %v", err)
	}
	if _, ok, err := fs.Get(ctx, "userToken"); err != nil || ok {
		t.Fatalf("after reset: ok=%v err=%v", ok, err)
	}
}

func TestFileStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.NewFileStore(t.TempDir()).Set(ctx, "k", "v"); !errors.Is(err, context.Canceled) {
		t.Fatalf("set with cancelled ctx: %v", err)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := store.Open("etcd", t.TempDir()); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
