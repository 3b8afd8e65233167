package fishing

import (
	"math"
	"slices"
)

// SimParams describes one simulated fishing run.
type SimParams struct {
	Rules     Rules
	Inventory Inventory
	Casts     int // casts per trial
	StartCast int // cast counter before the first simulated cast
}

// Stats summarizes integer samples.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	Samples []int `json:"-"` // per-trial totals, in trial order
}

// SimReport aggregates every trial of a simulation.
type SimReport struct {
	Trials     int
	Coins      Stats        // coins earned per trial
	HitRate    float64      // landed casts / all casts
	TierCounts map[Tier]int // landed fish per tier, across all trials
	Milestones int          // chests opened across all trials
}

// TierFrequency returns the share of landed fish that were tier t.
func (r SimReport) TierFrequency(t Tier) float64 {
	var hits int
	for _, n := range r.TierCounts {
		hits += n
	}
	if hits == 0 {
		return 0
	}
	return float64(r.TierCounts[t]) / float64(hits)
}

// calcStats summarizes coin totals per trial. Variance is the population
// variance; percentiles interpolate linearly between the sorted samples.
func calcStats(xs []int) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	var sum, sumSq float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(len(xs))
	for _, v := range xs {
		d := float64(v) - mean
		sumSq += d * d
	}
	variance := sumSq / float64(len(xs))

	sorted := slices.Sorted(slices.Values(xs))
	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     quantile(sorted, 0.50),
		P90:     quantile(sorted, 0.90),
		P99:     quantile(sorted, 0.99),
		Samples: xs,
	}
}

// quantile reads the q-th quantile of an ascending, non-empty slice.
func quantile(sorted []int, q float64) float64 {
	last := len(sorted) - 1
	q = math.Max(0, math.Min(1, q))
	pos := q * float64(last)
	lo := int(pos)
	if lo >= last {
		return float64(sorted[last])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}

// RunMonteCarlo repeats trials of p.Casts casts and returns summary stats.
// The inventory stays fixed for the whole run; nothing is bought.
func RunMonteCarlo(p SimParams, trials int, rng RandomSource) (SimReport, error) {
	if trials <= 0 || p.Casts <= 0 {
		return SimReport{TierCounts: map[Tier]int{}}, nil
	}
	if err := p.Rules.Validate(); err != nil {
		return SimReport{}, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	report := SimReport{Trials: trials, TierCounts: make(map[Tier]int, len(Tiers))}
	samples := make([]int, trials)
	var hits int
	for i := 0; i < trials; i++ {
		earned := 0
		for c := 1; c <= p.Casts; c++ {
			out := p.Rules.Cast(p.Inventory, p.StartCast+c, rng)
			earned += out.Total()
			if out.Hit {
				hits++
				report.TierCounts[out.Rarity]++
			}
			if out.Milestone {
				report.Milestones++
			}
		}
		samples[i] = earned
	}
	report.Coins = calcStats(samples)
	report.HitRate = float64(hits) / float64(trials*p.Casts)
	return report, nil
}
