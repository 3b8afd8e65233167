package fishing

import "errors"

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

// RollCatch draws once against the catch chance p.
// p <= 0 => never hits. p >= 1 => always hits. otherwise a draw above p is a miss,
// so a draw exactly equal to p still lands the fish.
func RollCatch(p float64, rng RandomSource) bool {
	if !(p > 0) {
		return false
	}
	if p >= 1 {
		return true
	}
	return unit(rng) <= p
}
