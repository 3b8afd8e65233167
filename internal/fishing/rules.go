package fishing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var ErrInvalidRules = errors.New("invalid progression rules")

// Rules carries the numeric tuning of the progression system.
// Which item does what is fixed at build time; how strongly it does so lives here.
type Rules struct {
	BaseCatch  float64            // catch chance with an empty inventory
	CatchCap   float64            // hard ceiling on catch chance
	CatchBonus map[ItemID]float64 // additive catch chance per owned unit

	BaseWeights Weights // rarity weights before item adjustments

	MilestoneEvery int // every Nth cast opens a chest
	MilestoneMin   int // inclusive chest roll range
	MilestoneMax   int

	AutoBase        time.Duration // auto-cast interval with no speed upgrades
	AutoFloor       time.Duration // shortest interval ever scheduled
	AutoMaxHalvings int           // speed units beyond this have no effect

	PriceScale float64 // stackable price growth per owned unit
}

// DefaultRules returns the canonical rule set.
func DefaultRules() Rules {
	return Rules{
		BaseCatch: 0.25,
		CatchCap:  0.85,
		CatchBonus: map[ItemID]float64{
			ItemCrystalLures: 0.07,
			ItemLuckBooster:  0.15,
			ItemLuckyAnchor:  0.02,
		},
		BaseWeights: Weights{
			TierCommon:    70,
			TierUncommon:  20,
			TierRare:      8,
			TierEpic:      1.9,
			TierLegendary: 0.1,
		},
		MilestoneEvery:  10,
		MilestoneMin:    8,
		MilestoneMax:    20,
		AutoBase:        2000 * time.Millisecond,
		AutoFloor:       400 * time.Millisecond,
		AutoMaxHalvings: 3,
		PriceScale:      1.25,
	}
}

// Clone returns a copy that shares no maps with r.
func (r Rules) Clone() Rules {
	out := r
	out.CatchBonus = make(map[ItemID]float64, len(r.CatchBonus))
	for id, v := range r.CatchBonus {
		out.CatchBonus[id] = v
	}
	out.BaseWeights = r.BaseWeights.Clone()
	return out
}

// Validate checks the invariants the calculator relies on.
func (r Rules) Validate() error {
	if err := validateProb(r.BaseCatch); err != nil {
		return fmt.Errorf("%w: base catch %v", ErrInvalidRules, r.BaseCatch)
	}
	if err := validateProb(r.CatchCap); err != nil || r.CatchCap < r.BaseCatch {
		return fmt.Errorf("%w: catch cap %v must be in [base catch, 1]", ErrInvalidRules, r.CatchCap)
	}
	for id, b := range r.CatchBonus {
		if !validWeight(b) {
			return fmt.Errorf("%w: catch bonus for item %d must be >= 0", ErrInvalidRules, id)
		}
	}
	for _, t := range Tiers {
		if !validWeight(r.BaseWeights[t]) {
			return fmt.Errorf("%w: weight for %s must be finite and >= 0", ErrInvalidRules, t)
		}
	}
	if !(r.BaseWeights.Total() > 0) {
		return fmt.Errorf("%w: total rarity weight must be > 0", ErrInvalidRules)
	}
	if r.MilestoneEvery < 1 {
		return fmt.Errorf("%w: milestone cadence must be >= 1", ErrInvalidRules)
	}
	if r.MilestoneMin < 1 || r.MilestoneMax < r.MilestoneMin {
		return fmt.Errorf("%w: milestone range [%d,%d]", ErrInvalidRules, r.MilestoneMin, r.MilestoneMax)
	}
	if r.AutoFloor <= 0 || r.AutoBase < r.AutoFloor {
		return fmt.Errorf("%w: auto-cast base %v must be >= floor %v > 0", ErrInvalidRules, r.AutoBase, r.AutoFloor)
	}
	if r.AutoMaxHalvings < 0 {
		return fmt.Errorf("%w: auto-cast halvings must be >= 0", ErrInvalidRules)
	}
	if math.IsNaN(r.PriceScale) || r.PriceScale < 1 {
		return fmt.Errorf("%w: price scale must be >= 1", ErrInvalidRules)
	}
	return nil
}

// PlayerStats is everything a cast needs to know about the player's gear.
type PlayerStats struct {
	CatchChance    float64
	RarityWeights  Weights
	CoinMultiplier float64
}

// ComputeStats derives stats from inv using the default rules.
func ComputeStats(inv Inventory) PlayerStats {
	return DefaultRules().Compute(inv)
}

// Compute derives catch chance, rarity weights and coin multiplier from the
// owned quantities. It is a pure function of r and inv.
func (r Rules) Compute(inv Inventory) PlayerStats {
	// fixed summation order keeps the result bit-identical across calls
	ids := make([]ItemID, 0, len(r.CatchBonus))
	for id := range r.CatchBonus {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	chance := r.BaseCatch
	for _, id := range ids {
		chance += float64(inv.Count(id)) * r.CatchBonus[id]
	}
	chance = math.Max(0, math.Min(r.CatchCap, chance))

	w := r.BaseWeights.Clone()
	if n := float64(inv.Count(ItemMagicWorms)); n > 0 {
		w[TierRare] *= 1 + 0.15*n
		w[TierEpic] *= 1 + 0.08*n
		w[TierLegendary] *= 1 + 0.02*n
	}
	if n := float64(inv.Count(ItemRainbowFlies)); n > 0 {
		w[TierEpic] *= 1 + 0.2*n
		w[TierLegendary] *= 1 + 0.05*n
	}
	if inv.Has(ItemMysticRod) {
		w[TierLegendary] *= 1.5
	}

	return PlayerStats{
		CatchChance:    chance,
		RarityWeights:  w,
		CoinMultiplier: CoinMultiplier(inv),
	}
}

// CoinMultiplier returns the bonus of the best rod owned. Rods do not stack.
func CoinMultiplier(inv Inventory) float64 {
	switch {
	case inv.Has(ItemMysticRod):
		return 1.3
	case inv.Has(ItemSteelRod):
		return 1.1
	default:
		return 1.0
	}
}

// MilestoneDue reports whether castNumber opens a milestone chest.
func (r Rules) MilestoneDue(castNumber int) bool {
	if r.MilestoneEvery <= 0 || castNumber <= 0 {
		return false
	}
	return castNumber%r.MilestoneEvery == 0
}

// AutoCastInterval returns the auto-cast period for inv, and false when the
// auto-clicker is not owned. Each speed unit halves the base interval up to
// AutoMaxHalvings; the result never goes below AutoFloor.
func (r Rules) AutoCastInterval(inv Inventory) (time.Duration, bool) {
	if !inv.Has(ItemAutoClicker) {
		return 0, false
	}
	halvings := min(inv.Count(ItemSpeedEnhancer), r.AutoMaxHalvings)
	ms := float64(r.AutoBase.Milliseconds()) * math.Pow(0.5, float64(halvings))
	d := time.Duration(math.Floor(ms)) * time.Millisecond
	return max(d, r.AutoFloor), true
}
