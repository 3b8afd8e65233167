package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestValidateRawAcceptsEmpty(t *testing.T) {
	require.NoError(t, ValidateRaw(RawConfig{}))
}

func TestValidateRawAggregates(t *testing.T) {
	cfg := RawConfig{
		Catch: CatchConfig{Base: ptr(1.5), Bonus: map[int]float64{42: 0.1, 3: -1}},
		Rarity: &RarityConfig{Weights: map[string]float64{
			"mythic": 1,
			"epic":   -2,
		}},
		Milestone: &MilestoneConfig{Every: ptr(0), Min: ptr(5), Max: ptr(2)},
		Auto:      &AutoConfig{BaseMS: ptr(100), FloorMS: ptr(400), MaxHalvings: ptr(-1)},
		Store:     &StoreConfig{PriceScale: ptr(0.5)},
	}
	err := ValidateRaw(cfg)
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{
		"catch.base must be in [0,1]",
		"catch.bonus[42]: unknown item",
		"catch.bonus[3] must be >= 0",
		"rarity.weights.mythic: unknown tier",
		"rarity.weights.epic must be finite and >= 0",
		"milestone.every must be >= 1",
		"milestone.max must be >= milestone.min",
		"auto.base_ms must be >= auto.floor_ms",
		"auto.max_halvings must be >= 0",
		"store.price_scale must be >= 1",
	} {
		assert.Contains(t, msg, want)
	}
}
