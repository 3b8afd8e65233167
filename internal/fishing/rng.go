package fishing

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstracts the uniform draws every roll is built on.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

// entropySource backs live play: every draw comes from the OS CSPRNG.
type entropySource struct{}

func (entropySource) Float64() float64 {
	var b [8]byte
	cryptoRand.Read(b[:]) // does not fail since Go 1.24
	return float64(binary.LittleEndian.Uint64(b[:])>>11) * 0x1p-53
}

// DefaultRNG returns the source sessions use unless one is injected.
func DefaultRNG() RandomSource { return entropySource{} }

// replaySource replays the same rolls for the same seed, so a simulated run
// or a `-seed` CLI session can be reproduced.
type replaySource struct{ *rand.Rand }

// NewSeededRNG returns a deterministic PCG-backed source.
func NewSeededRNG(seed uint64) RandomSource {
	return replaySource{rand.New(rand.NewPCG(seed, 0))}
}

// unit reads one draw and pins it into [0, 1) so index math never overflows
// a slice even if a source misbehaves at the edges.
func unit(rng RandomSource) float64 {
	if rng == nil {
		rng = DefaultRNG()
	}
	f := rng.Float64()
	if !(f >= 0) { // also catches NaN
		return 0
	}
	if f >= 1 {
		return 1 - 1e-12
	}
	return f
}

// RollInt returns a uniform integer in the inclusive range [lo, hi].
func RollInt(rng RandomSource, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(unit(rng)*float64(hi-lo+1))
}

// pick returns a uniformly chosen element; names must be non-empty.
func pick(names []string, rng RandomSource) string {
	return names[RollInt(rng, 0, len(names)-1)]
}
