package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrUnknownFormat   = errors.New("unknown snapshot format")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

const snapshotVersion = 1

// Format selects the snapshot encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk", ".mp":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

// Snapshot is a full save of player progress.
type Snapshot struct {
	Version    int             `json:"version" msgpack:"version"`
	ExportedAt time.Time       `json:"exportedAt" msgpack:"exportedAt"`
	CastCount  int             `json:"castCount" msgpack:"castCount"`
	Coins      int             `json:"fishCoins" msgpack:"fishCoins"`
	Inventory  []InventoryItem `json:"fishingInventory" msgpack:"fishingInventory"`
}

// Validate rejects snapshots that would break the progress invariants.
func (s Snapshot) Validate() error {
	if s.Version != snapshotVersion {
		return fmt.Errorf("%w: version %d", ErrInvalidSnapshot, s.Version)
	}
	if s.CastCount < 0 || s.Coins < 0 {
		return fmt.Errorf("%w: negative counters", ErrInvalidSnapshot)
	}
	seen := map[int]bool{}
	for _, it := range s.Inventory {
		if it.Quantity < 0 {
			return fmt.Errorf("%w: item %d has negative quantity", ErrInvalidSnapshot, it.ID)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: item %d listed twice", ErrInvalidSnapshot, it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}

// Export reads every progress key into a snapshot.
func (r *Repository) Export(ctx context.Context) (Snapshot, error) {
	casts, err := r.CastCount(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading cast count: %w", err)
	}
	coins, err := r.Coins(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading coins: %w", err)
	}
	items, err := r.Items(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading inventory: %w", err)
	}
	return Snapshot{
		Version:    snapshotVersion,
		ExportedAt: time.Now().UTC(),
		CastCount:  casts,
		Coins:      coins,
		Inventory:  items,
	}, nil
}

// Import validates s and overwrites every progress key with it.
func (r *Repository) Import(ctx context.Context, s Snapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := r.SetCastCount(ctx, s.CastCount); err != nil {
		return fmt.Errorf("writing cast count: %w", err)
	}
	if err := r.SetCoins(ctx, s.Coins); err != nil {
		return fmt.Errorf("writing coins: %w", err)
	}
	if err := r.SetItems(ctx, s.Inventory); err != nil {
		return fmt.Errorf("writing inventory: %w", err)
	}
	return nil
}

// EncodeSnapshot writes s to w in format f.
func EncodeSnapshot(w io.Writer, s Snapshot, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// DecodeSnapshot reads a snapshot in format f from rd.
func DecodeSnapshot(rd io.Reader, f Format) (Snapshot, error) {
	var s Snapshot
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(rd).Decode(&s)
	case FormatMsgpack:
		err = msgpack.NewDecoder(rd).Decode(&s)
	default:
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("decoding %s snapshot: %w", f, err)
	}
	return s, nil
}
