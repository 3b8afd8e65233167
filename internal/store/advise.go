package store

import (
	"math"
	"sort"

	"github.com/projectred/fishclicker/internal/fishing"
)

// Advice rates the next unit of one product by how fast it pays for itself.
type Advice struct {
	Product    Product
	Price      int
	Gain       float64 // extra expected coins per cast
	Payback    float64 // casts until Gain covers Price
	Affordable bool
}

// Advise ranks every product whose next unit raises expected coins per cast,
// quickest payback first. Items that only unlock features or decorate are
// left out.
func Advise(r fishing.Rules, inv fishing.Inventory, coins int) []Advice {
	base := r.ExpectedCoins(inv)
	var out []Advice
	for _, p := range Products {
		owned := inv.Count(p.ID)
		if !p.Stackable() && owned > 0 {
			continue
		}
		next := inv.Clone()
		next[p.ID] = owned + 1
		gain := r.ExpectedCoins(next) - base
		if gain <= 1e-9 {
			continue
		}
		price := Price(p, owned, r.PriceScale)
		out = append(out, Advice{
			Product:    p,
			Price:      price,
			Gain:       gain,
			Payback:    float64(price) / gain,
			Affordable: coins >= price,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if math.Abs(out[i].Payback-out[j].Payback) > 1e-9 {
			return out[i].Payback < out[j].Payback
		}
		return out[i].Product.ID < out[j].Product.ID
	})
	return out
}
