package interfaces

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Random supplies placeholder randomness. *math/rand/v2.Rand satisfies it.
type Random interface {
	IntN(n int) int
	Float64() float64
}
