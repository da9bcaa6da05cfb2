package backend

import (
	"math/rand/v2"
	"time"

	"qshield/internal/domain"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() domain.Clock { return systemClock{} }

// NewRandom returns a time-seeded placeholder randomness source.
func NewRandom() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}
