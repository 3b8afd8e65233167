package fishing

import "math"

// Reward is what a landed fish pays out.
type Reward struct {
	FishName string
	Coins    int
}

// ScaleCoins applies the coin multiplier to a base roll. The result is
// rounded half up and never below one coin.
func ScaleCoins(base int, multiplier float64) int {
	return max(1, int(math.Round(float64(base)*multiplier)))
}

// ResolveReward picks a fish of tier from FishCatalog and rolls its payout.
// Unknown tiers resolve as common.
func ResolveReward(tier Tier, multiplier float64, rng RandomSource) Reward {
	entry, ok := FishCatalog[tier]
	if !ok {
		entry = FishCatalog[TierCommon]
	}
	name := pick(entry.Names, rng)
	base := RollInt(rng, entry.MinCoins, entry.MaxCoins)
	return Reward{FishName: name, Coins: ScaleCoins(base, multiplier)}
}
