package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectred/fishclicker/internal/fishing"
)

func TestAdviseSkipsItemsWithoutIncome(t *testing.T) {
	adv := Advise(fishing.DefaultRules(), fishing.Inventory{}, 0)
	require.NotEmpty(t, adv)
	for _, a := range adv {
		assert.NotContains(t, []fishing.ItemID{
			fishing.ItemWoodenRod, fishing.ItemAutoClicker, fishing.ItemSpeedEnhancer,
			fishing.ItemFishingGnome, fishing.ItemTropicalPlants,
		}, a.Product.ID)
		assert.False(t, a.Affordable)
		assert.Positive(t, a.Gain)
	}
}

func TestAdviseOrdersByPayback(t *testing.T) {
	adv := Advise(fishing.DefaultRules(), fishing.Inventory{}, 1000)
	for i := 1; i < len(adv); i++ {
		assert.LessOrEqual(t, adv[i-1].Payback, adv[i].Payback)
	}
	for _, a := range adv {
		assert.True(t, a.Affordable)
		assert.InDelta(t, float64(a.Price)/a.Gain, a.Payback, 1e-9)
	}
}

func TestAdviseUsesEscalatedPrice(t *testing.T) {
	inv := fishing.Inventory{fishing.ItemLuckBooster: 2}
	for _, a := range Advise(fishing.DefaultRules(), inv, 0) {
		if a.Product.ID == fishing.ItemLuckBooster {
			assert.Equal(t, Price(a.Product, 2, scale), a.Price)
			return
		}
	}
	t.Fatal("luck booster missing from advice")
}

func TestAdviseDropsOwnedAndOutclassedRods(t *testing.T) {
	adv := Advise(fishing.DefaultRules(), fishing.Inventory{fishing.ItemMysticRod: 1}, 0)
	for _, a := range adv {
		assert.NotEqual(t, fishing.ItemMysticRod, a.Product.ID)
		assert.NotEqual(t, fishing.ItemSteelRod, a.Product.ID)
	}
}
