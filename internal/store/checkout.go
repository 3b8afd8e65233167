package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownProduct    = errors.New("unknown product")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyOwned      = errors.New("already owned")
)

// Receipt records one completed purchase.
type Receipt struct {
	TransactionID string
	Product       Product
	PricePaid     int
	Quantity      int // units owned after the purchase
	Balance       int // coins left after the purchase
	PurchasedAt   time.Time
}

// Checkout sells one unit of p to a player holding coins and owning owned
// units already. It does not touch storage; callers persist the receipt.
func Checkout(p Product, coins, owned int, scale float64) (Receipt, error) {
	if !p.Stackable() && owned > 0 {
		return Receipt{}, fmt.Errorf("%w: %s", ErrAlreadyOwned, p.Name)
	}
	price := Price(p, owned, scale)
	if coins < price {
		return Receipt{}, fmt.Errorf("%w: need %d more coins to buy %s", ErrInsufficientFunds, price-coins, p.Name)
	}
	return Receipt{
		TransactionID: uuid.NewString(),
		Product:       p,
		PricePaid:     price,
		Quantity:      max(owned, 0) + 1,
		Balance:       coins - price,
		PurchasedAt:   time.Now().UTC(),
	}, nil
}

// Plan summarizes buying several units of one product in a row.
type Plan struct {
	Units     int
	Prices    []int // price of each successive unit
	TotalCost int
	Remaining int // coins left afterwards
}

// MaxAffordable works out how many successive units of p a balance of coins
// buys, given owned units already held and escalating stackable prices.
func MaxAffordable(p Product, coins, owned int, scale float64) Plan {
	plan := Plan{Remaining: coins}
	if !p.Stackable() {
		if owned <= 0 && coins >= p.BasePrice {
			plan.Units = 1
			plan.Prices = []int{p.BasePrice}
			plan.TotalCost = p.BasePrice
			plan.Remaining = coins - p.BasePrice
		}
		return plan
	}
	for n := max(owned, 0); ; n++ {
		price := Price(p, n, scale)
		if price <= 0 || price > plan.Remaining {
			return plan
		}
		plan.Units++
		plan.Prices = append(plan.Prices, price)
		plan.TotalCost += price
		plan.Remaining -= price
	}
}
