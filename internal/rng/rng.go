// Package rng provides the small seedable pseudo-random stream used by the humanizer.
//
// The seed is an FNV-1a hash of the caller's inputs and the stream is Mulberry32, so the
// same inputs always replay the same sequence of draws. A Source is not safe for
// concurrent use; each humanize call owns its own.
package rng

import (
	"hash/fnv"
)

// Seed hashes parts into a 32-bit seed. Parts are separated by a NUL byte so that
// ("ab", "c") and ("a", "bc") produce different seeds.
func Seed(parts ...string) uint32 {
	h := fnv.New32a()
	for i, p := range parts {
		if i > 0 {
			_, _ = h.Write([]byte{0})
		}
		_, _ = h.Write([]byte(p))
	}
	return h.Sum32()
}

// Source is a Mulberry32 generator.
type Source struct {
	state uint32
	draws int
}

// New returns a Source positioned at the start of the stream for seed.
func New(seed uint32) *Source {
	return &Source{state: seed}
}

// next advances the generator and returns the next 32-bit output.
func (s *Source) next() uint32 {
	s.draws++
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// Float64 returns a value in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.next()) / 4294967296.0
}

// Chance draws once and reports whether the draw fell below p.
// p <= 0 never passes and p >= 1 always passes, but a value is consumed either way.
func (s *Source) Chance(p float64) bool {
	return s.Float64() < p
}

// Intn returns a value in [0, n). It panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with non-positive n")
	}
	return int(s.Float64() * float64(n))
}

// Draws returns how many values have been consumed from the stream.
func (s *Source) Draws() int {
	return s.draws
}
