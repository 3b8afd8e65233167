package fishing

import "math"

// Tier is a rarity category.
type Tier string

const (
	TierCommon    Tier = "common"
	TierUncommon  Tier = "uncommon"
	TierRare      Tier = "rare"
	TierEpic      Tier = "epic"
	TierLegendary Tier = "legendary"
)

// Tiers lists every tier in canonical order. The sampler walks them in this
// order, so ties resolve toward the front.
var Tiers = []Tier{TierCommon, TierUncommon, TierRare, TierEpic, TierLegendary}

// Valid reports whether t is one of the five known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierCommon, TierUncommon, TierRare, TierEpic, TierLegendary:
		return true
	}
	return false
}

// Weights maps tiers to relative, non-negative sampling weights.
type Weights map[Tier]float64

// Total sums the weights of the canonical tiers.
func (w Weights) Total() float64 {
	var sum float64
	for _, t := range Tiers {
		sum += w[t]
	}
	return sum
}

// Clone returns an independent copy.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for t, v := range w {
		out[t] = v
	}
	return out
}

// Probability returns w[t] / Total, or 0 when the table is empty.
func (w Weights) Probability(t Tier) float64 {
	total := w.Total()
	if total <= 0 {
		return 0
	}
	return w[t] / total
}

// SampleRarity draws one tier with probability weight/total.
// Degenerate tables fall back to common.
func SampleRarity(w Weights, rng RandomSource) Tier {
	total := w.Total()
	if !(total > 0) || math.IsInf(total, 0) {
		return TierCommon
	}
	return walkTiers(w, unit(rng)*total)
}

// walkTiers subtracts each tier's weight from r in canonical order and
// returns the tier that takes r to zero or below. Tiers with no weight are
// skipped, so they are never returned. If r outlasts the table, the result
// is common.
func walkTiers(w Weights, r float64) Tier {
	for _, t := range Tiers {
		weight := w[t]
		if !(weight > 0) {
			continue
		}
		if r -= weight; r <= 0 {
			return t
		}
	}
	return TierCommon
}
