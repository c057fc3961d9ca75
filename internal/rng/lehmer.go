// Package rng provides the seeded pseudo-random stream behind every
// generation step.
//
// Lehmer is the Park–Miller "minimal standard" multiplicative congruential
// generator. It is intentionally simple: the same seed always yields the same
// sequence on every platform, which is what makes generated systems
// reproducible. One Lehmer belongs to one Generator; it is not safe for
// concurrent use, but independent streams share nothing.
package rng

import "math"

const (
	modulus    = 2147483647 // 2^31 - 1
	multiplier = 16807
)

// Source is anything that yields uniform floats in [0,1).
type Source interface {
	Float64() float64
}

// Lehmer is a single deterministic stream.
type Lehmer struct {
	state int64
}

// New seeds a stream. The state is always kept in [1, 2147483646].
func New(seed uint64) *Lehmer {
	state := int64(seed % modulus)
	if state <= 0 {
		state += modulus - 1
	}
	return &Lehmer{state: state}
}

// State returns the current cursor, mainly for tests and diagnostics.
func (r *Lehmer) State() int64 {
	return r.state
}

// Float64 advances the stream and returns a value in [0,1).
func (r *Lehmer) Float64() float64 {
	r.state = (r.state * multiplier) % modulus
	return float64(r.state-1) / float64(modulus-1)
}

// Range returns a uniform value in [min,max).
func (r *Lehmer) Range(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Intn returns a uniform int in [0,n). n <= 0 returns 0.
func (r *Lehmer) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// IntRange returns a uniform int in [min,max], both inclusive.
func (r *Lehmer) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// Chance returns true with probability p.
func (r *Lehmer) Chance(p float64) bool {
	return r.Float64() < p
}

// LogUniform draws 10^x with x uniform in [log10Min, log10Max).
func (r *Lehmer) LogUniform(log10Min, log10Max float64) float64 {
	return math.Pow(10, r.Range(log10Min, log10Max))
}

// Pick returns a uniform index into a collection of length n, or -1 if empty.
func (r *Lehmer) Pick(n int) int {
	if n <= 0 {
		return -1
	}
	return r.Intn(n)
}
