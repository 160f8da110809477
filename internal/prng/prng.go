// internal/prng/prng.go
//
// Deterministic 32-bit pseudo-random generator (Mulberry32).
//
// The same seed yields the same stream on every platform: the state update is
// pure uint32 arithmetic, and Float64 divides by 2^32 exactly. The browser
// client runs the identical algorithm, so a seed computed on either side
// picks the same puzzle.
//
// Seed 0 is valid: the odd increment is applied before the first mix, so the
// generator never sits on the all-zero fixed point.
package prng

// increment is the Weyl-sequence step added before each mix.
const increment uint32 = 0x6D2B79F5

// Rand is a Mulberry32 generator. The zero value is a generator seeded with 0.
// Not safe for concurrent use; create one per computation.
type Rand struct {
	state uint32
}

// New returns a generator seeded with seed.
func New(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Uint32 advances the state and returns the next mixed 32-bit value.
func (r *Rand) Uint32() uint32 {
	r.state += increment
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

// Intn returns floor(Float64() * n). n must be positive.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("prng: Intn called with non-positive n")
	}
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
