// resolve.go
package game

import (
	"fmt"
	"time"

	"github.com/projectred/fishclicker/internal/fishing"
)

// Overrides carries command-line overrides applied on top of every file.
type Overrides struct {
	BaseCatch      *float64
	CatchCap       *float64
	MilestoneEvery *int
	PriceScale     *float64
}

// apply folds o into cfg as the top-most layer.
func (o Overrides) apply(cfg RawConfig) RawConfig {
	top := RawConfig{Catch: CatchConfig{Base: o.BaseCatch, Cap: o.CatchCap}}
	if o.MilestoneEvery != nil {
		top.Milestone = &MilestoneConfig{Every: o.MilestoneEvery}
	}
	if o.PriceScale != nil {
		top.Store = &StoreConfig{PriceScale: o.PriceScale}
	}
	return mergeRaw(cfg, top)
}

type Resolver interface {
	// Returns merged RawConfig and normalized rules
	Resolve(ruleset string, o Overrides) (RawConfig, fishing.Rules, error)
}

// Normalize validates cfg and lays it over the built-in rules.
func Normalize(cfg RawConfig) (fishing.Rules, error) {
	if err := ValidateRaw(cfg); err != nil {
		return fishing.Rules{}, err
	}
	r := fishing.DefaultRules().Clone()

	if cfg.Catch.Base != nil {
		r.BaseCatch = *cfg.Catch.Base
	}
	if cfg.Catch.Cap != nil {
		r.CatchCap = *cfg.Catch.Cap
	}
	for id, b := range cfg.Catch.Bonus {
		r.CatchBonus[fishing.ItemID(id)] = b
	}
	if cfg.Rarity != nil {
		for name, w := range cfg.Rarity.Weights {
			r.BaseWeights[fishing.Tier(name)] = w
		}
	}
	if m := cfg.Milestone; m != nil {
		setInt(&r.MilestoneEvery, m.Every)
		setInt(&r.MilestoneMin, m.Min)
		setInt(&r.MilestoneMax, m.Max)
	}
	if a := cfg.Auto; a != nil {
		if a.BaseMS != nil {
			r.AutoBase = time.Duration(*a.BaseMS) * time.Millisecond
		}
		if a.FloorMS != nil {
			r.AutoFloor = time.Duration(*a.FloorMS) * time.Millisecond
		}
		setInt(&r.AutoMaxHalvings, a.MaxHalvings)
	}
	if cfg.Store != nil && cfg.Store.PriceScale != nil {
		r.PriceScale = *cfg.Store.PriceScale
	}

	if err := r.Validate(); err != nil {
		return fishing.Rules{}, fmt.Errorf("config validation failed: %w", err)
	}
	return r, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
