// Package memzero clears secret material held in byte slices.
package memzero

import "runtime"

// Zero overwrites b with zeros. It is best effort: copies made elsewhere,
// e.g. by string conversions, are not reached.
//
//go:noinline
func Zero(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
