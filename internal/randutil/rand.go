// Package randutil derives reproducible random streams from a single int64
// seed and provides the sampling helpers the spot generator draws with.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// IntRange returns a uniform integer in [lo, hi].
func IntRange(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Pick returns a uniformly chosen element of xs. xs must not be empty.
func Pick[T any](r *rand.Rand, xs []T) T {
	return xs[r.IntN(len(xs))]
}

// Chance returns true with probability p.
func Chance(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// Shuffled returns a shuffled copy of xs.
func Shuffled[T any](r *rand.Rand, xs []T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Reader adapts r to an io.Reader so byte-oriented consumers (uuid) can
// draw from the same seeded stream.
type Reader struct {
	R *rand.Rand
}

func (rd Reader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := rd.R.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}
