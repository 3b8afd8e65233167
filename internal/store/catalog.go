// Package store prices and sells the upgrade catalog.
package store

import (
	"math"

	"github.com/projectred/fishclicker/internal/fishing"
)

// Category groups products on the store shelf.
type Category string

const (
	CategoryBaits       Category = "baits"
	CategoryRods        Category = "rods"
	CategoryUpgrades    Category = "upgrades"
	CategoryDecorations Category = "decorations"
)

// Product models a purchasable catalog entry.
type Product struct {
	ID          fishing.ItemID
	Name        string
	Category    Category
	BasePrice   int    // coins for the first unit
	Description string // shelf blurb
	Effect      string
}

// Stackable reports whether the product can be owned more than once.
// Rods are single items; everything else stacks.
func (p Product) Stackable() bool { return p.Category != CategoryRods }

// Products is the full store catalog.
var Products = []Product{
	{ID: fishing.ItemMagicWorms, Name: "Magic Worms", Category: CategoryBaits, BasePrice: 15,
		Description: "Enchanted earthworms that glow underwater", Effect: "Attracts rare fish"},
	{ID: fishing.ItemCrystalLures, Name: "Crystal Lures", Category: CategoryBaits, BasePrice: 25,
		Description: "Shimmering crystal that mesmerizes fish", Effect: "Higher catch rate"},
	{ID: fishing.ItemRainbowFlies, Name: "Rainbow Flies", Category: CategoryBaits, BasePrice: 35,
		Description: "Colorful flies that change color mid-flight", Effect: "Attracts exotic species"},

	{ID: fishing.ItemWoodenRod, Name: "Wooden Rod", Category: CategoryRods, BasePrice: 50,
		Description: "A sturdy oak fishing rod for beginners", Effect: "Basic fishing capability"},
	{ID: fishing.ItemSteelRod, Name: "Steel Rod", Category: CategoryRods, BasePrice: 150,
		Description: "Professional-grade steel rod with carbon fiber grip", Effect: "Improved casting distance"},
	{ID: fishing.ItemMysticRod, Name: "Mystic Rod", Category: CategoryRods, BasePrice: 500,
		Description: "Ancient rod imbued with ocean magic", Effect: "Can catch legendary fish"},

	{ID: fishing.ItemAutoClicker, Name: "Auto-Clicker", Category: CategoryUpgrades, BasePrice: 100,
		Description: "Automatically casts for you every 2 seconds", Effect: "Passive income generation"},
	{ID: fishing.ItemLuckBooster, Name: "Luck Booster", Category: CategoryUpgrades, BasePrice: 200,
		Description: "Increases your fishing luck", Effect: "Better catch quality"},
	{ID: fishing.ItemSpeedEnhancer, Name: "Speed Enhancer", Category: CategoryUpgrades, BasePrice: 300,
		Description: "Halves the auto-cast interval", Effect: "Faster fishing cycles"},

	{ID: fishing.ItemFishingGnome, Name: "Fishing Gnome", Category: CategoryDecorations, BasePrice: 75,
		Description: "A cheerful gnome to watch over your fishing spot", Effect: "Provides moral support"},
	{ID: fishing.ItemLuckyAnchor, Name: "Lucky Anchor", Category: CategoryDecorations, BasePrice: 125,
		Description: "An ornate anchor that brings good fortune", Effect: "Slight luck increase"},
	{ID: fishing.ItemTropicalPlants, Name: "Tropical Plants", Category: CategoryDecorations, BasePrice: 60,
		Description: "Beautiful plants to decorate your fishing area", Effect: "Aesthetic enhancement"},
}

// Lookup finds a product by id.
func Lookup(id fishing.ItemID) (Product, bool) {
	for _, p := range Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Price is what the next unit of p costs when owned units are already held.
// Single items keep their base price; stackables grow by scale per owned unit.
func Price(p Product, owned int, scale float64) int {
	if !p.Stackable() || owned <= 0 {
		return p.BasePrice
	}
	return int(math.Round(float64(p.BasePrice) * math.Pow(scale, float64(owned))))
}
