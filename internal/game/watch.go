package game

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/projectred/fishclicker/internal/fishing"
)

// FileWatcher polls file modification times and triggers a callback on change.
type FileWatcher struct {
	Paths     []string
	Interval  time.Duration
	onChange  func(string) // called with path that changed
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Paths:     paths,
		Interval:  interval,
		onChange:  onChange,
		lastMTime: make(map[string]time.Time),
	}
}

// Run polls until ctx is done. It always returns nil so it fits an errgroup.
func (w *FileWatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	w.scanAll(true)
	for {
		select {
		case <-ticker.C:
			w.scanAll(false)
		case <-ctx.Done():
			return nil
		}
	}
}

// scanAll checks mtimes and invokes onChange for files that changed since last scan.
// A file that appears after the first scan counts as a change.
func (w *FileWatcher) scanAll(prime bool) {
	for _, p := range w.Paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		if prime {
			continue
		}
		if !ok || mt.After(last) {
			if w.onChange != nil {
				w.onChange(p)
			}
		}
	}
}

// Reloader re-resolves a ruleset whenever one of its files changes and hands
// the new rules to apply. Invalid edits are logged and the old rules stay.
type Reloader struct {
	loader    *Loader
	ruleset   string
	overrides Overrides
	apply     func(fishing.Rules) error
}

// NewReloader builds a reloader for ruleset.
func NewReloader(l *Loader, ruleset string, o Overrides, apply func(fishing.Rules) error) *Reloader {
	return &Reloader{loader: l, ruleset: ruleset, overrides: o, apply: apply}
}

// Reload invalidates the cache and applies the freshly resolved rules.
func (r *Reloader) Reload() error {
	r.loader.Invalidate()
	_, rules, err := r.loader.Resolve(r.ruleset, r.overrides)
	if err != nil {
		return err
	}
	return r.apply(rules)
}

// Watch polls the ruleset's files every interval until ctx is done.
func (r *Reloader) Watch(ctx context.Context, interval time.Duration) error {
	w := NewFileWatcher(r.loader.Paths().Files(r.ruleset), interval, func(path string) {
		if err := r.Reload(); err != nil {
			slog.Warn("tuning reload rejected", "path", path, "err", err)
			return
		}
		slog.Info("tuning reloaded", "path", path, "ruleset", r.ruleset)
	})
	return w.Run(ctx)
}
