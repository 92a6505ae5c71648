package ntru

import (
	"math/rand"
)

// RNG is a seeded, non-cryptographic byte source. It makes key generation
// and hedged signing reproducible in tests and benchmarks; never use it
// for real keys.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a new RNG with given seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Read fills p and never fails.
func (r *RNG) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// Intn returns random int in [0,n).
func (r *RNG) Intn(n int) int {
	return r.r.Intn(n)
}
