package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/projectred/fishclicker/internal/fishing"
)

// Paths helper for default/ruleset files.
type Paths struct {
	BaseDir string // base directory, e.g., ./configs
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "games", "default.yaml")
}
func (p Paths) RulesetPath(ruleset string) string {
	return filepath.Join(p.BaseDir, "games", "rulesets", ruleset+".yaml")
}

// Files lists every file that feeds ruleset, in merge order.
func (p Paths) Files(ruleset string) []string {
	if ruleset == "" {
		return []string{p.DefaultPath()}
	}
	return []string{p.DefaultPath(), p.RulesetPath(ruleset)}
}

const defaultKey = "$default"

// Loader reads YAML tuning and merges default → ruleset.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: ruleset name, or "$default"
}

// NewLoader creates a tuning loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the file layout the loader reads from.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → ruleset (ruleset optional).
// It returns the merged RawConfig (without normalization).
func (l *Loader) LoadMerged(ruleset string) (RawConfig, error) {
	key := ruleset
	if key == "" {
		key = defaultKey
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if ruleset != "" {
		path := l.paths.RulesetPath(ruleset)
		if _, err := os.Stat(path); err != nil {
			return RawConfig{}, fmt.Errorf("ruleset %q: %w", ruleset, err)
		}
		rsCfg, err := readYAML(path)
		if err != nil {
			return RawConfig{}, fmt.Errorf("read ruleset %q: %w", ruleset, err)
		}
		merged = mergeRaw(defCfg, rsCfg)
	}

	l.mu.Lock()
	l.cache[defaultKey] = defCfg
	l.cache[key] = merged
	l.mu.Unlock()

	return merged, nil
}

// Resolve merges default → ruleset → overrides and normalizes the result.
func (l *Loader) Resolve(ruleset string, o Overrides) (RawConfig, fishing.Rules, error) {
	cfg, err := l.LoadMerged(ruleset)
	if err != nil {
		return RawConfig{}, fishing.Rules{}, err
	}
	cfg = o.apply(cfg)
	rules, err := Normalize(cfg)
	if err != nil {
		return cfg, fishing.Rules{}, err
	}
	return cfg, rules, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw performs a deep merge: 'b' overrides 'a' wherever b sets a value.
// Maps merge key by key.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// catch
	if b.Catch.Base != nil {
		out.Catch.Base = b.Catch.Base
	}
	if b.Catch.Cap != nil {
		out.Catch.Cap = b.Catch.Cap
	}
	if len(b.Catch.Bonus) > 0 {
		bonus := make(map[int]float64, len(a.Catch.Bonus)+len(b.Catch.Bonus))
		for id, v := range a.Catch.Bonus {
			bonus[id] = v
		}
		for id, v := range b.Catch.Bonus {
			bonus[id] = v
		}
		out.Catch.Bonus = bonus
	}

	// rarity
	if b.Rarity != nil {
		weights := map[string]float64{}
		if a.Rarity != nil {
			for t, w := range a.Rarity.Weights {
				weights[t] = w
			}
		}
		for t, w := range b.Rarity.Weights {
			weights[t] = w
		}
		out.Rarity = &RarityConfig{Weights: weights}
	}

	// milestone
	if b.Milestone != nil {
		m := MilestoneConfig{}
		if a.Milestone != nil {
			m = *a.Milestone
		}
		pick(&m.Every, b.Milestone.Every)
		pick(&m.Min, b.Milestone.Min)
		pick(&m.Max, b.Milestone.Max)
		out.Milestone = &m
	}

	// auto
	if b.Auto != nil {
		c := AutoConfig{}
		if a.Auto != nil {
			c = *a.Auto
		}
		pick(&c.BaseMS, b.Auto.BaseMS)
		pick(&c.FloorMS, b.Auto.FloorMS)
		pick(&c.MaxHalvings, b.Auto.MaxHalvings)
		out.Auto = &c
	}

	// store
	if b.Store != nil && b.Store.PriceScale != nil {
		out.Store = &StoreConfig{PriceScale: b.Store.PriceScale}
	}

	return out
}

func pick[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}
