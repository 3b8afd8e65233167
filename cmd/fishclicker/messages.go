package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/projectred/fishclicker/internal/fishing"
	"github.com/projectred/fishclicker/internal/session"
	"github.com/projectred/fishclicker/internal/store"
)

var missLines = []string{
	"Nothing bit this time…",
	"Ripples only. Try again!",
	"The fish swiped left.",
	"Something tugged… and fled.",
}

// taunts keyed by total cast count.
var taunts = map[int]string{
	5:  "wonder what happens if you do this 10x?",
	10: "No, not 10x in total, 5 x 10",
	15: "No, not 5 PLUS 10, 5 TIMES 10",
	20: "No pun here, just keep clicking cast...",
	25: "Glad you listened! Keep going!!",
	30: "If it helps, you reached the halfway point at the last message.",
	35: "....70%",
	40: "You're actually still clicking cast?",
	45: "You've come this far, bring it on home!",
	50: "TIME FOR A PRIZE! Check the store!",
}

// describeCast renders the lines shown after one cast.
func describeCast(o fishing.Outcome) []string {
	var lines []string
	if o.Hit {
		lines = append(lines, fmt.Sprintf("Cast #%d: caught a %s %s! +%d coins", o.CastNumber, o.Rarity, o.FishName, o.CoinsAwarded))
	} else {
		lines = append(lines, fmt.Sprintf("Cast #%d: %s", o.CastNumber, missLines[rand.IntN(len(missLines))]))
	}
	if o.Milestone {
		lines = append(lines, fmt.Sprintf("Milestone chest opened! Bonus +%d coins", o.MilestoneBonus))
	}
	if t, ok := taunts[o.CastNumber]; ok {
		lines = append(lines, t)
	}
	return lines
}

func describeStats(st session.State, ps fishing.PlayerStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "casts: %d\ncoins: %d\n", st.CastCount, st.Coins)
	fmt.Fprintf(&b, "catch chance: %.1f%%\ncoin multiplier: x%.2f\n", ps.CatchChance*100, ps.CoinMultiplier)
	b.WriteString("rarity odds:\n")
	for _, t := range fishing.Tiers {
		fmt.Fprintf(&b, "  %-10s %6.2f%%\n", t, ps.RarityWeights.Probability(t)*100)
	}
	if len(st.Inventory) > 0 {
		b.WriteString("inventory:\n")
		for _, p := range store.Products {
			if n := st.Inventory.Count(p.ID); n > 0 {
				fmt.Fprintf(&b, "  %-22s x%d\n", p.Name, n)
			}
		}
	}
	return b.String()
}

func describeReceipt(r store.Receipt) string {
	return fmt.Sprintf("Bought %s for %d coins (owned: %d, balance: %d) [%s]",
		r.Product.Name, r.PricePaid, r.Quantity, r.Balance, r.TransactionID)
}
