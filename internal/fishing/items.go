package fishing

// ItemID identifies an upgrade in the store catalog.
type ItemID int

const (
	ItemMagicWorms     ItemID = 1  // rare-boost bait
	ItemCrystalLures   ItemID = 2  // catch-rate bait
	ItemRainbowFlies   ItemID = 3  // exotic bait
	ItemWoodenRod      ItemID = 4  // base rod
	ItemSteelRod       ItemID = 5  // mid-tier rod
	ItemMysticRod      ItemID = 6  // top-tier rod
	ItemAutoClicker    ItemID = 7  // unlocks auto casting
	ItemLuckBooster    ItemID = 8  // catch chance
	ItemSpeedEnhancer  ItemID = 9  // auto-cast speed
	ItemFishingGnome   ItemID = 10 // cosmetic
	ItemLuckyAnchor    ItemID = 11 // catch chance (small)
	ItemTropicalPlants ItemID = 12 // cosmetic
)

// Inventory maps item ids to owned quantity.
type Inventory map[ItemID]int

// Count returns the owned quantity of id; anything below zero counts as none.
func (inv Inventory) Count(id ItemID) int {
	n := inv[id]
	if n < 0 {
		return 0
	}
	return n
}

// Has reports whether at least one unit of id is owned.
func (inv Inventory) Has(id ItemID) bool { return inv.Count(id) > 0 }

// Clone returns an independent copy.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for id, n := range inv {
		out[id] = n
	}
	return out
}

// Equal reports whether both inventories own the same quantities.
// Zero and missing entries are treated alike.
func (inv Inventory) Equal(other Inventory) bool {
	for id := range inv {
		if inv.Count(id) != other.Count(id) {
			return false
		}
	}
	for id := range other {
		if inv.Count(id) != other.Count(id) {
			return false
		}
	}
	return true
}
