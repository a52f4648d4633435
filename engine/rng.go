package engine

import "math/rand"

// RNG is a deterministic byte source for identities. Position counts the
// reads made since creation.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Read fills p from the seeded source. It never fails.
func (r *RNG) Read(p []byte) (int, error) {
	r.pos++
	var v uint64
	for i := range p {
		if i%8 == 0 {
			v = r.src.Uint64()
		}
		p[i] = byte(v)
		v >>= 8
	}
	return len(p), nil
}

// Seed returns the seed the RNG was created from.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of reads made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
