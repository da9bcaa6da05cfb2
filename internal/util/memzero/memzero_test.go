package memzero

import "testing"

func TestZero(t *testing.T) {
	b := []byte("sealing key material")
	Zero(b)
	for i, c := range b {
		if c != 0 {
			t.Fatalf("byte %d = %#x", i, c)
		}
	}
	Zero(nil)
}
