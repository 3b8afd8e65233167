package fishing

// ExpectedCoins is the long-run average number of coins one cast pays for a
// player owning inv, milestone chests included.
func (r Rules) ExpectedCoins(inv Inventory) float64 {
	st := r.Compute(inv)
	var fish float64
	for _, t := range Tiers {
		p := st.RarityWeights.Probability(t)
		if p == 0 {
			continue
		}
		e := FishCatalog[t]
		fish += p * meanScaled(e.MinCoins, e.MaxCoins, st.CoinMultiplier)
	}
	ev := st.CatchChance * fish
	if r.MilestoneEvery > 0 {
		ev += meanScaled(r.MilestoneMin, r.MilestoneMax, st.CoinMultiplier) / float64(r.MilestoneEvery)
	}
	return ev
}

// meanScaled averages ScaleCoins over every base in [lo, hi].
func meanScaled(lo, hi int, multiplier float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	var sum int
	for b := lo; b <= hi; b++ {
		sum += ScaleCoins(b, multiplier)
	}
	return float64(sum) / float64(hi-lo+1)
}
