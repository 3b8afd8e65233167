// types.go
package game

// RawConfig is a tuning file as loaded from YAML. Every field is optional;
// unset fields fall back to the layer below and finally to the built-in rules.
type RawConfig struct {
	Version   string           `yaml:"version"`
	Catch     CatchConfig      `yaml:"catch"`
	Rarity    *RarityConfig    `yaml:"rarity,omitempty"`
	Milestone *MilestoneConfig `yaml:"milestone,omitempty"`
	Auto      *AutoConfig      `yaml:"auto,omitempty"`
	Store     *StoreConfig     `yaml:"store,omitempty"`
	Notes     string           `yaml:"notes,omitempty"`
}

type CatchConfig struct {
	Base  *float64        `yaml:"base"`
	Cap   *float64        `yaml:"cap"`
	Bonus map[int]float64 `yaml:"bonus,omitempty"` // item id -> chance per unit
}

type RarityConfig struct {
	Weights map[string]float64 `yaml:"weights"` // tier name -> weight; missing tiers keep theirs
}

type MilestoneConfig struct {
	Every *int `yaml:"every"`
	Min   *int `yaml:"min"`
	Max   *int `yaml:"max"`
}

type AutoConfig struct {
	BaseMS      *int `yaml:"base_ms"`
	FloorMS     *int `yaml:"floor_ms"`
	MaxHalvings *int `yaml:"max_halvings"`
}

type StoreConfig struct {
	PriceScale *float64 `yaml:"price_scale"`
}
