package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/projectred/fishclicker/internal/fishing"
)

var ErrAutoCastLocked = errors.New("auto casting requires the Auto-Clicker upgrade")

// AutoCaster casts on a fixed interval derived from the owned upgrades.
// While started it reschedules itself whenever the session's inventory
// changes. Ticks that arrive while a cast is still running are dropped, not
// queued.
type AutoCaster struct {
	session *Session
	onCast  func(fishing.Outcome)

	mu          sync.Mutex
	ctx         context.Context
	stop        chan struct{}
	running     bool
	interval    time.Duration
	unsubscribe func()

	loops sync.WaitGroup // every loop goroutine, including superseded ones
}

// NewAutoCaster binds an auto-caster to s. onCast, if non-nil, receives
// every automatic outcome.
func NewAutoCaster(s *Session, onCast func(fishing.Outcome)) *AutoCaster {
	return &AutoCaster{session: s, onCast: onCast}
}

// Start begins auto casting until Stop is called or ctx is done.
func (a *AutoCaster) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ctx = ctx
	if a.unsubscribe == nil {
		a.unsubscribe = a.session.OnInventoryChange(a.inventoryChanged)
	}
	if err := a.scheduleLocked(a.session.State().Inventory); err != nil {
		a.unsubscribe()
		a.unsubscribe = nil
		return err
	}
	return nil
}

// Stop clears the timer, detaches from the session and waits for a cast that
// is already underway, so no outcome is delivered after Stop returns. It is
// safe to call when not running, but not from inside onCast.
func (a *AutoCaster) Stop() {
	a.mu.Lock()
	if a.running {
		slog.Info("auto casting disabled")
	}
	a.stopLocked()
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.mu.Unlock()

	a.loops.Wait()
}

// Reschedule recomputes the interval, e.g. after the rules were reloaded.
func (a *AutoCaster) Reschedule() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return nil
	}
	return a.scheduleLocked(a.session.State().Inventory)
}

// Running reports whether the timer is active.
func (a *AutoCaster) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Interval returns the current period, or 0 when stopped.
func (a *AutoCaster) Interval() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return 0
	}
	return a.interval
}

func (a *AutoCaster) inventoryChanged(inv fishing.Inventory) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return
	}
	if err := a.scheduleLocked(inv); err != nil {
		slog.Warn("auto casting stopped", "err", err)
	}
}

// scheduleLocked cancels any running timer and starts a new one. a.mu must be
// held. It never waits for the old loop: a reschedule triggered by a cast
// runs on that loop's goroutine.
func (a *AutoCaster) scheduleLocked(inv fishing.Inventory) error {
	a.stopLocked()
	interval, ok := a.session.Rules().AutoCastInterval(inv)
	if !ok {
		return ErrAutoCastLocked
	}
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	stop := make(chan struct{})
	a.stop = stop
	a.running = true
	a.interval = interval
	a.loops.Add(1)
	go a.loop(ctx, interval, stop)
	slog.Info("auto casting enabled", "interval", interval)
	return nil
}

func (a *AutoCaster) stopLocked() {
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
	a.running = false
	a.interval = 0
}

func (a *AutoCaster) loop(ctx context.Context, interval time.Duration, stop chan struct{}) {
	defer a.loops.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			out := a.session.ResolveCast(ctx)
			if a.onCast != nil {
				a.onCast(out)
			}
		case <-stop:
			return
		case <-ctx.Done():
			a.mu.Lock()
			if a.stop == stop {
				a.stop = nil
				a.running = false
				a.interval = 0
			}
			a.mu.Unlock()
			return
		}
	}
}
