package fishing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanScaled(t *testing.T) {
	assert.Equal(t, 3.0, meanScaled(1, 5, 1))
	assert.Equal(t, 3.0, meanScaled(5, 1, 1))
	// 1.1 * [1..5] rounds to 1,2,3,4,6
	assert.InDelta(t, 3.2, meanScaled(1, 5, 1.1), 1e-9)
}

func TestExpectedCoinsGrowsWithGear(t *testing.T) {
	r := DefaultRules()
	base := r.ExpectedCoins(Inventory{})
	assert.Greater(t, r.ExpectedCoins(Inventory{ItemLuckBooster: 1}), base)
	assert.Greater(t, r.ExpectedCoins(Inventory{ItemSteelRod: 1}), base)
	assert.Greater(t, r.ExpectedCoins(Inventory{ItemMagicWorms: 1}), base)
	assert.Equal(t, base, r.ExpectedCoins(Inventory{ItemTropicalPlants: 3}))
}

func TestExpectedCoinsMatchesSimulation(t *testing.T) {
	r := DefaultRules()
	inv := Inventory{ItemCrystalLures: 2, ItemSteelRod: 1}
	rep, err := RunMonteCarlo(SimParams{Rules: r, Inventory: inv, Casts: 100}, 4000, NewSeededRNG(11))
	require.NoError(t, err)
	assert.InEpsilon(t, r.ExpectedCoins(inv)*100, rep.Coins.Mean, 0.05)
}
