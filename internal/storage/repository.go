package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/projectred/fishclicker/internal/fishing"
)

// Keys shared with every other writer of the store.
const (
	KeyCastCount = "castCount"
	KeyCoins     = "fishCoins"
	KeyInventory = "fishingInventory"
)

// InventoryItem is one persisted inventory entry. Only ID and Quantity carry
// meaning; the rest is display data written alongside by the store.
type InventoryItem struct {
	ID           int    `json:"id" msgpack:"id"`
	Quantity     int    `json:"quantity" msgpack:"quantity"`
	Name         string `json:"name,omitempty" msgpack:"name,omitempty"`
	Category     string `json:"category,omitempty" msgpack:"category,omitempty"`
	PurchaseDate string `json:"purchaseDate,omitempty" msgpack:"purchaseDate,omitempty"`
}

// Repository gives typed access to the progress keys. Malformed or missing
// values read as zero or an empty inventory; only backend failures are errors.
type Repository struct {
	kv KV
}

// NewRepository wraps kv.
func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv}
}

// CastCount returns the persisted cast counter.
func (r *Repository) CastCount(ctx context.Context) (int, error) {
	return r.readCount(ctx, KeyCastCount)
}

// Coins returns the persisted coin balance.
func (r *Repository) Coins(ctx context.Context) (int, error) {
	return r.readCount(ctx, KeyCoins)
}

// SetCastCount persists the cast counter.
func (r *Repository) SetCastCount(ctx context.Context, n int) error {
	return r.writeCount(ctx, KeyCastCount, n)
}

// SetCoins persists the coin balance.
func (r *Repository) SetCoins(ctx context.Context, n int) error {
	return r.writeCount(ctx, KeyCoins, n)
}

// Items returns the persisted inventory entries, one per id, in stored order.
func (r *Repository) Items(ctx context.Context) ([]InventoryItem, error) {
	raw, ok, err := r.kv.Get(ctx, KeyInventory)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return ParseItems(raw), nil
}

// Inventory returns the owned quantities keyed by item id.
func (r *Repository) Inventory(ctx context.Context) (fishing.Inventory, error) {
	items, err := r.Items(ctx)
	if err != nil {
		return fishing.Inventory{}, err
	}
	return ToInventory(items), nil
}

// SetItems persists the inventory as a JSON array.
func (r *Repository) SetItems(ctx context.Context, items []InventoryItem) error {
	if items == nil {
		items = []InventoryItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}
	return r.kv.Set(ctx, KeyInventory, string(b))
}

// ParseItems decodes a persisted inventory. Anything that is not a JSON array
// of items yields an empty inventory. Duplicate ids keep their first entry and
// negative quantities become zero.
func ParseItems(raw string) []InventoryItem {
	var items []InventoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	seen := make(map[int]bool, len(items))
	out := items[:0]
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		if it.Quantity < 0 {
			it.Quantity = 0
		}
		out = append(out, it)
	}
	return out
}

// ToInventory flattens entries into owned quantities.
func ToInventory(items []InventoryItem) fishing.Inventory {
	inv := make(fishing.Inventory, len(items))
	for _, it := range items {
		if it.Quantity > 0 {
			inv[fishing.ItemID(it.ID)] = it.Quantity
		}
	}
	return inv
}

func (r *Repository) readCount(ctx context.Context, key string) (int, error) {
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return parseCount(raw), nil
}

func (r *Repository) writeCount(ctx context.Context, key string, n int) error {
	return r.kv.Set(ctx, key, strconv.Itoa(max(0, n)))
}

// parseCount reads a non-negative decimal counter; garbage reads as 0.
func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
