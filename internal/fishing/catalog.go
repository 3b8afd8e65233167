package fishing

// CatalogEntry lists the fish of one tier and the inclusive coin range they pay.
type CatalogEntry struct {
	Names    []string
	MinCoins int
	MaxCoins int
}

// Catalog maps every tier to its entry.
type Catalog map[Tier]CatalogEntry

// FishCatalog is the static fish table. Every tier has at least one name.
var FishCatalog = Catalog{
	TierCommon: {
		Names:    []string{"Minnow", "Puddle Bass", "Tin Carp", "Street Trout", "Bubble Guppy", "Pond Perch", "Brook Stickleback"},
		MinCoins: 1, MaxCoins: 5,
	},
	TierUncommon: {
		Names:    []string{"Shimmer Perch", "Spotty Pike", "Neon Guppy", "Copper Sunfish", "Jade Barb", "Amber Tetra"},
		MinCoins: 4, MaxCoins: 10,
	},
	TierRare: {
		Names:    []string{"Azure Snapper", "Crystal Cod", "Gilded Sunfish", "Prism Angelfish", "Sapphire Bass", "Moonstone Trout"},
		MinCoins: 10, MaxCoins: 25,
	},
	TierEpic: {
		Names:    []string{"Phantom Koi", "Storm Barracuda", "Crimson Swordfish", "Void Shark", "Thunder Pike"},
		MinCoins: 25, MaxCoins: 60,
	},
	TierLegendary: {
		Names:    []string{"Mythic Leviathan", "Golden Marlin", "Celestial Dragon Fish", "Prismatic Whale Shark", "Astral Manta"},
		MinCoins: 60, MaxCoins: 150,
	},
}
