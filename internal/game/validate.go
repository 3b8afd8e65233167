package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/projectred/fishclicker/internal/fishing"
)

// ValidateRaw checks semantic constraints of a RawConfig. It reports every
// problem it finds in one error.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// catch
	if cfg.Catch.Base != nil && !inUnit(*cfg.Catch.Base) {
		errs = append(errs, "catch.base must be in [0,1]")
	}
	if cfg.Catch.Cap != nil && !inUnit(*cfg.Catch.Cap) {
		errs = append(errs, "catch.cap must be in [0,1]")
	}
	if cfg.Catch.Base != nil && cfg.Catch.Cap != nil && *cfg.Catch.Cap < *cfg.Catch.Base {
		errs = append(errs, "catch.cap must be >= catch.base")
	}
	for id, b := range cfg.Catch.Bonus {
		if id < int(fishing.ItemMagicWorms) || id > int(fishing.ItemTropicalPlants) {
			errs = append(errs, fmt.Sprintf("catch.bonus[%d]: unknown item", id))
		}
		if !finiteNonNeg(b) {
			errs = append(errs, fmt.Sprintf("catch.bonus[%d] must be >= 0", id))
		}
	}

	// rarity
	if cfg.Rarity != nil {
		for name, w := range cfg.Rarity.Weights {
			if !fishing.Tier(name).Valid() {
				errs = append(errs, fmt.Sprintf("rarity.weights.%s: unknown tier", name))
				continue
			}
			if !finiteNonNeg(w) {
				errs = append(errs, fmt.Sprintf("rarity.weights.%s must be finite and >= 0", name))
			}
		}
	}

	// milestone
	if m := cfg.Milestone; m != nil {
		if m.Every != nil && *m.Every < 1 {
			errs = append(errs, "milestone.every must be >= 1")
		}
		if m.Min != nil && *m.Min < 1 {
			errs = append(errs, "milestone.min must be >= 1")
		}
		if m.Min != nil && m.Max != nil && *m.Max < *m.Min {
			errs = append(errs, "milestone.max must be >= milestone.min")
		}
	}

	// auto
	if a := cfg.Auto; a != nil {
		if a.FloorMS != nil && *a.FloorMS <= 0 {
			errs = append(errs, "auto.floor_ms must be > 0")
		}
		if a.BaseMS != nil && a.FloorMS != nil && *a.BaseMS < *a.FloorMS {
			errs = append(errs, "auto.base_ms must be >= auto.floor_ms")
		}
		if a.MaxHalvings != nil && *a.MaxHalvings < 0 {
			errs = append(errs, "auto.max_halvings must be >= 0")
		}
	}

	// store
	if cfg.Store != nil && cfg.Store.PriceScale != nil && !(*cfg.Store.PriceScale >= 1) {
		errs = append(errs, "store.price_scale must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func inUnit(p float64) bool { return p >= 0 && p <= 1 }

func finiteNonNeg(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 }
