package fishing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// seqRNG replays a fixed script of draws and then repeats the last one.
type seqRNG struct {
	vals []float64
	i    int
}

func seq(vals ...float64) *seqRNG { return &seqRNG{vals: vals} }

func (s *seqRNG) Float64() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	if s.i >= len(s.vals) {
		return s.vals[len(s.vals)-1]
	}
	v := s.vals[s.i]
	s.i++
	return v
}

func TestRollIntBounds(t *testing.T) {
	assert.Equal(t, 8, RollInt(seq(0), 8, 20))
	assert.Equal(t, 20, RollInt(seq(0.999999), 8, 20))
	assert.Equal(t, 20, RollInt(seq(1.0), 8, 20), "a draw of 1 must not overflow the range")
	assert.Equal(t, 5, RollInt(seq(0.7), 5, 5))
	assert.Equal(t, 5, RollInt(seq(0.7), 5, 3), "inverted range collapses to lo")
}

func TestRollIntCoversRange(t *testing.T) {
	rng := NewSeededRNG(7)
	seen := map[int]int{}
	for i := 0; i < 20000; i++ {
		v := RollInt(rng, 1, 5)
		if v < 1 || v > 5 {
			t.Fatalf("RollInt out of range: %d", v)
		}
		seen[v]++
	}
	assert.Len(t, seen, 5)
}

func TestRollCatchBounds(t *testing.T) {
	assert.False(t, RollCatch(0, seq(0)), "p=0 should never hit")
	assert.True(t, RollCatch(1, seq(0.999)), "p=1 should always hit")
	assert.True(t, RollCatch(0.25, seq(0.25)), "a draw equal to p is a catch")
	assert.False(t, RollCatch(0.25, seq(0.5)))
	assert.True(t, RollCatch(0.25, seq(0.1)))
}

func TestRollCatchStatApprox(t *testing.T) {
	const p = 0.3
	const n = 100000
	rng := NewSeededRNG(42)
	hit := 0
	for i := 0; i < n; i++ {
		if RollCatch(p, rng) {
			hit++
		}
	}
	assert.InDelta(t, p, float64(hit)/n, 0.01)
}

func TestSeededSourceReplays(t *testing.T) {
	a, b := NewSeededRNG(99), NewSeededRNG(99)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestDefaultSourceInUnitRange(t *testing.T) {
	rng := DefaultRNG()
	for i := 0; i < 1000; i++ {
		f := rng.Float64()
		assert.True(t, f >= 0 && f < 1, "draw %v", f)
	}
}
