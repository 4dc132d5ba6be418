// Package rng provides the seeded random source used by every generation and
// decoration decision. Two sources built from the same seed produce identical
// streams forever; nothing here reads ambient entropy.
package rng

// LCG constants (Knuth MMIX)
const (
	multiplier uint64 = 6364136223846793005
	increment  uint64 = 1442695040888963407
)

// Random is the contract every generation step draws from. *Source implements it;
// tests substitute scripted implementations.
type Random interface {
	NextInt() uint32
	NextFloat() float64
	Range(lo, hi int) int
	Chance(p float64) bool
}

// Source is a 64-bit linear-congruential generator.
// It also satisfies math/rand.Source64, so rand.New(src) stays on the seeded stream.
type Source struct {
	state uint64
	seed  uint64
}

// New creates a source seeded with seed
func New(seed uint64) *Source {
	s := &Source{}
	s.Reseed(seed)
	return s
}

// Reseed resets the generator to the start of seed's stream
func (s *Source) Reseed(seed uint64) {
	s.seed = seed
	s.state = seed
}

// InitialSeed returns the seed the current stream started from
func (s *Source) InitialSeed() uint64 {
	return s.seed
}

// Seed implements math/rand.Source
func (s *Source) Seed(seed int64) {
	s.Reseed(uint64(seed))
}

func (s *Source) step() uint64 {
	s.state = s.state*multiplier + increment
	return s.state
}

// NextInt returns the next unsigned 32-bit value (high bits of the LCG state)
func (s *Source) NextInt() uint32 {
	return uint32(s.step() >> 32)
}

// NextFloat returns a float in [0, 1)
func (s *Source) NextFloat() float64 {
	return float64(s.NextInt()) / 4294967296.0
}

// Range returns an integer in [lo, hi). Returns lo when the range is empty.
func (s *Source) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(s.NextFloat()*float64(hi-lo))
}

// Chance reports true with probability p
func (s *Source) Chance(p float64) bool {
	return s.NextFloat() < p
}

// Select picks a uniform element of seq. Panics on an empty sequence, like indexing would.
func Select[T any](s Random, seq []T) T {
	return seq[s.Range(0, len(seq))]
}

// Shuffle permutes seq in place (Fisher-Yates)
func Shuffle[T any](s Random, seq []T) {
	for i := len(seq) - 1; i > 0; i-- {
		j := s.Range(0, i+1)
		seq[i], seq[j] = seq[j], seq[i]
	}
}

// Int63 implements math/rand.Source
func (s *Source) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

// Uint64 implements math/rand.Source64
func (s *Source) Uint64() uint64 {
	hi := uint64(s.NextInt())
	lo := uint64(s.NextInt())
	return hi<<32 | lo
}

// LevelSeed derives a deterministic seed for a level (or a retry attempt) from a base seed.
func LevelSeed(base uint64, level int) uint64 {
	seed := base ^ (uint64(level) * 0x9E3779B97F4A7C15)
	seed = (seed ^ (seed >> 30)) * 0xBF58476D1CE4E5B9
	seed = (seed ^ (seed >> 27)) * 0x94D049BB133111EB
	return seed ^ (seed >> 31)
}
