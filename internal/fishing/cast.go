package fishing

// Outcome reports one resolved cast.
type Outcome struct {
	CastNumber   int  // cast counter after this cast
	Hit          bool // true if something bit
	Rarity       Tier // set when Hit
	FishName     string
	CoinsAwarded int // fish payout, 0 on a miss

	Milestone      bool // true if this cast opened a milestone chest
	MilestoneBonus int
}

// Total is the number of coins the cast adds to the balance.
func (o Outcome) Total() int { return o.CoinsAwarded + o.MilestoneBonus }

// Cast resolves cast number castNumber for a player owning inv.
// Draws are consumed in a fixed order: catch, rarity, fish name, coins and,
// on milestone casts, the chest roll. The chest is granted whether or not the
// fish bit.
func (r Rules) Cast(inv Inventory, castNumber int, rng RandomSource) Outcome {
	if rng == nil {
		rng = DefaultRNG()
	}
	stats := r.Compute(inv)
	out := Outcome{CastNumber: castNumber}

	if RollCatch(stats.CatchChance, rng) {
		tier := SampleRarity(stats.RarityWeights, rng)
		reward := ResolveReward(tier, stats.CoinMultiplier, rng)
		out.Hit = true
		out.Rarity = tier
		out.FishName = reward.FishName
		out.CoinsAwarded = reward.Coins
	}

	if r.MilestoneDue(castNumber) {
		base := RollInt(rng, r.MilestoneMin, r.MilestoneMax)
		out.Milestone = true
		out.MilestoneBonus = ScaleCoins(base, stats.CoinMultiplier)
	}
	return out
}
