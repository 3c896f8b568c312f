package sim

import "math/rand/v2"

// NewRand returns a PCG-backed source for seed. Equal seeds give equal draw
// sequences.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}
