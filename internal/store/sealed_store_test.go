package store_test

import (
	"context"
	"errors"
	"testing"

	"ptjobs/internal/store"
)

var fastScrypt = store.ScryptParams{N: 1 << 4, R: 8, P: 1}

func TestSealedStore_ValuesAreNotPlaintext(t *testing.T) {
	ctx := context.Background()
	inner := store.NewMemoryStore()
	ss, err := store.NewSealedStore(inner, "correct horse", fastScrypt)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := ss.Set(ctx, "userToken", "secret-token"); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, ok, _ := inner.Get(ctx, "userToken")
	if !ok || raw == "secret-token" {
		t.Fatalf("inner value = %q; want ciphertext", raw)
	}
	got, ok, err := ss.Get(ctx, "userToken")
	if err != nil || !ok || got != "secret-token" {
		t.Fatalf("get = %q, %v, %v", got, ok, err)
	}
}

func TestSealedStore_WrongPassphrase(t *testing.T) {
	ctx := context.Background()
	inner := store.NewMemoryStore()

	a, _ := store.NewSealedStore(inner, "right", fastScrypt)
	if err := a.Set(ctx, "userRole", "candidate"); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, _ := store.NewSealedStore(inner, "wrong", fastScrypt)
	if _, _, err := b.Get(ctx, "userRole"); !errors.Is(err, store.ErrCorrupted) {
		t.Fatalf("get with wrong passphrase: %v, want ErrCorrupted", err)
	}
}

func TestSealedStore_SwappedValueRejected(t *testing.T) {
	ctx := context.Background()
	inner := store.NewMemoryStore()
	ss, _ := store.NewSealedStore(inner, "pass", fastScrypt)

	if err := ss.SetMany(ctx, map[string]string{"userRole": "candidate", "userToken": "T"}); err != nil {
		t.Fatalf("set many: %v", err)
	}
	tok, _, _ := inner.Get(ctx, "userToken")
	if err := inner.Set(ctx, "userRole", tok); err != nil {
		t.Fatalf("swap: %v", err)
	}
	if _, _, err := ss.Get(ctx, "userRole"); !errors.Is(err, store.ErrCorrupted) {
		t.Fatalf("swapped value: %v, want ErrCorrupted", err)
	}
}

func TestSealedStore_RequiresPassphrase(t *testing.T) {
	if _, err := store.NewSealedStore(store.NewMemoryStore(), "", fastScrypt); err == nil {
		t.Fatal("expected error for empty passphrase")
	}
}
