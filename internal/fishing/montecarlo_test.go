package fishing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMonteCarloEmptyInventory(t *testing.T) {
	p := SimParams{Rules: DefaultRules(), Inventory: Inventory{}, Casts: 10}
	rep, err := RunMonteCarlo(p, 10000, NewSeededRNG(99))
	require.NoError(t, err)

	assert.Equal(t, 10000, rep.Trials)
	assert.InDelta(t, 0.25, rep.HitRate, 0.01)
	assert.Equal(t, 10000, rep.Milestones, "one chest per ten casts")
	assert.InDelta(t, 0.70, rep.TierFrequency(TierCommon), 0.02)
	assert.Len(t, rep.Coins.Samples, 10000)
	assert.GreaterOrEqual(t, rep.Coins.P99, rep.Coins.P50)
	// every trial opens one chest worth at least 8
	assert.GreaterOrEqual(t, rep.Coins.Mean, 8.0)
}

func TestRunMonteCarloGearPaysMore(t *testing.T) {
	base := SimParams{Rules: DefaultRules(), Inventory: Inventory{}, Casts: 50}
	geared := base
	geared.Inventory = Inventory{ItemLuckBooster: 2, ItemMysticRod: 1, ItemMagicWorms: 3}

	a, err := RunMonteCarlo(base, 2000, NewSeededRNG(1))
	require.NoError(t, err)
	b, err := RunMonteCarlo(geared, 2000, NewSeededRNG(1))
	require.NoError(t, err)

	assert.Greater(t, b.HitRate, a.HitRate)
	assert.Greater(t, b.Coins.Mean, a.Coins.Mean)
}

func TestRunMonteCarloEdges(t *testing.T) {
	rep, err := RunMonteCarlo(SimParams{Rules: DefaultRules(), Casts: 10}, 0, nil)
	require.NoError(t, err)
	assert.Zero(t, rep.Trials)

	bad := DefaultRules().Clone()
	bad.MilestoneEvery = 0
	_, err = RunMonteCarlo(SimParams{Rules: bad, Casts: 10}, 5, nil)
	assert.ErrorIs(t, err, ErrInvalidRules)
}

func TestCalcStats(t *testing.T) {
	s := calcStats([]int{1, 2, 3, 4})
	assert.Equal(t, 2.5, s.Mean)
	assert.Equal(t, 1.25, s.Var)
	assert.Equal(t, 2.5, s.P50)
	assert.Equal(t, Stats{}, calcStats(nil))
}

func TestQuantile(t *testing.T) {
	assert.Equal(t, 7.0, quantile([]int{7}, 0.99))
	assert.Equal(t, 10.0, quantile([]int{0, 10}, 1.5))
	assert.InDelta(t, 9.0, quantile([]int{0, 10}, 0.9), 1e-9)
}
