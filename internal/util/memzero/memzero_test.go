package memzero

import "testing"

func TestZero(t *testing.T) {
	a := []byte("passphrase")
	b := []byte{1, 2, 3}
	Zero(a, nil, b)
	for _, buf := range [][]byte{a, b} {
		for i, c := range buf {
			if c != 0 {
				t.Fatalf("byte %d = %d, want 0", i, c)
			}
		}
	}
}
