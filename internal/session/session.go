// Package session runs casts and purchases for one player against a
// persistent repository.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/projectred/fishclicker/internal/fishing"
	"github.com/projectred/fishclicker/internal/storage"
	"github.com/projectred/fishclicker/internal/store"
)

// Repository is the persistence the session needs. *storage.Repository
// satisfies it.
type Repository interface {
	CastCount(ctx context.Context) (int, error)
	Coins(ctx context.Context) (int, error)
	Items(ctx context.Context) ([]storage.InventoryItem, error)
	SetCastCount(ctx context.Context, n int) error
	SetCoins(ctx context.Context, n int) error
	SetItems(ctx context.Context, items []storage.InventoryItem) error
}

// State is the player's progress as the session last saw it.
type State struct {
	CastCount int
	Coins     int
	Inventory fishing.Inventory
}

// Option configures a Session.
type Option func(*Session)

// WithRules replaces the default rules.
func WithRules(r fishing.Rules) Option {
	return func(s *Session) { s.rules = r.Clone() }
}

// WithRNG injects the random source used by every roll.
func WithRNG(rng fishing.RandomSource) Option {
	return func(s *Session) { s.rng = rng }
}

// Session owns one player's state. Casts and purchases are serialized, so a
// resolution always runs to completion before the next one starts.
type Session struct {
	repo Repository

	mu        sync.Mutex
	rules     fishing.Rules
	rng       fishing.RandomSource
	state     State
	items     []storage.InventoryItem
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(fishing.Inventory)
}

// New loads the player's progress from repo. Unreadable values start at zero.
func New(ctx context.Context, repo Repository, opts ...Option) *Session {
	s := &Session{
		repo:  repo,
		rules: fishing.DefaultRules(),
		rng:   fishing.DefaultRNG(),
		state: State{Inventory: fishing.Inventory{}},
	}
	for _, opt := range opts {
		opt(s)
	}

	casts, err := repo.CastCount(ctx)
	if err != nil {
		slog.Warn("reading cast count", "err", err)
	}
	s.state.CastCount = casts
	s.refresh(ctx)
	return s
}

// State returns a copy of the current progress.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Inventory = s.state.Inventory.Clone()
	return st
}

// Rules returns the rules in effect.
func (s *Session) Rules() fishing.Rules {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.Clone()
}

// SetRules swaps the rules used by later casts and purchases.
func (s *Session) SetRules(r fishing.Rules) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.rules = r.Clone()
	s.mu.Unlock()
	return nil
}

// Stats returns the derived stats for the current inventory.
func (s *Session) Stats() fishing.PlayerStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.Compute(s.state.Inventory)
}

// OnInventoryChange registers fn to be called with the new inventory after a
// purchase, or when a cast finds the stored inventory was changed by
// another writer. fn runs outside the session lock. The returned func
// removes fn; calling it more than once is harmless.
func (s *Session) OnInventoryChange(fn func(fishing.Inventory)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == id })
	}
}

// ResolveCast performs one cast: it re-reads coins and inventory, bumps the
// cast counter, rolls the outcome, credits the coins and writes the counters
// back. Write failures are logged and otherwise ignored.
func (s *Session) ResolveCast(ctx context.Context) fishing.Outcome {
	s.mu.Lock()
	changed := s.refresh(ctx)
	s.state.CastCount++
	out := s.rules.Cast(s.state.Inventory, s.state.CastCount, s.rng)
	s.state.Coins += out.Total()
	s.persistCounters(ctx)
	inv, listeners := s.snapshotListeners(changed)
	s.mu.Unlock()

	notify(listeners, inv)
	slog.Debug("cast resolved",
		"cast", out.CastNumber,
		"hit", out.Hit,
		"rarity", out.Rarity,
		"coins", out.Total(),
		"milestone", out.Milestone,
	)
	return out
}

// Purchase buys one unit of item id with the current balance.
func (s *Session) Purchase(ctx context.Context, id fishing.ItemID) (store.Receipt, error) {
	p, ok := store.Lookup(id)
	if !ok {
		return store.Receipt{}, fmt.Errorf("%w: id %d", store.ErrUnknownProduct, id)
	}

	s.mu.Lock()
	changed := s.refresh(ctx)
	receipt, err := store.Checkout(p, s.state.Coins, s.state.Inventory.Count(id), s.rules.PriceScale)
	if err != nil {
		inv, listeners := s.snapshotListeners(changed)
		s.mu.Unlock()
		notify(listeners, inv)
		return store.Receipt{}, err
	}

	s.addItem(p, receipt)
	s.state.Coins = receipt.Balance
	if err := s.repo.SetCoins(ctx, s.state.Coins); err != nil {
		slog.Warn("persisting coins", "err", err)
	}
	if err := s.repo.SetItems(ctx, s.items); err != nil {
		slog.Warn("persisting inventory", "err", err)
	}
	inv, listeners := s.snapshotListeners(true)
	s.mu.Unlock()

	notify(listeners, inv)
	slog.Info("purchase",
		"tx", receipt.TransactionID,
		"item", p.Name,
		"price", receipt.PricePaid,
		"quantity", receipt.Quantity,
		"balance", receipt.Balance,
	)
	return receipt, nil
}

// refresh re-reads the values other writers may have changed. It reports
// whether the inventory differs from what the session held. s.mu must be held.
func (s *Session) refresh(ctx context.Context) bool {
	if coins, err := s.repo.Coins(ctx); err != nil {
		slog.Warn("reading coins", "err", err)
	} else {
		s.state.Coins = coins
	}

	items, err := s.repo.Items(ctx)
	if err != nil {
		slog.Warn("reading inventory", "err", err)
		return false
	}
	inv := storage.ToInventory(items)
	changed := !inv.Equal(s.state.Inventory)
	s.items = items
	s.state.Inventory = inv
	return changed
}

func (s *Session) persistCounters(ctx context.Context) {
	if err := s.repo.SetCastCount(ctx, s.state.CastCount); err != nil {
		slog.Warn("persisting cast count", "err", err)
	}
	if err := s.repo.SetCoins(ctx, s.state.Coins); err != nil {
		slog.Warn("persisting coins", "err", err)
	}
}

// addItem records a purchase in the item list. s.mu must be held.
func (s *Session) addItem(p store.Product, r store.Receipt) {
	s.state.Inventory[p.ID] = r.Quantity
	for i := range s.items {
		if s.items[i].ID == int(p.ID) {
			s.items[i].Quantity = r.Quantity
			return
		}
	}
	s.items = append(s.items, storage.InventoryItem{
		ID:           int(p.ID),
		Quantity:     r.Quantity,
		Name:         p.Name,
		Category:     string(p.Category),
		PurchaseDate: r.PurchasedAt.Format(time.RFC3339),
	})
}

func (s *Session) snapshotListeners(changed bool) (fishing.Inventory, []func(fishing.Inventory)) {
	if !changed || len(s.listeners) == 0 {
		return nil, nil
	}
	fns := make([]func(fishing.Inventory), len(s.listeners))
	for i, l := range s.listeners {
		fns[i] = l.fn
	}
	return s.state.Inventory.Clone(), fns
}

func notify(listeners []func(fishing.Inventory), inv fishing.Inventory) {
	for _, fn := range listeners {
		fn(inv)
	}
}
