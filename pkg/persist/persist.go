// Package persist saves and restores navigation history across process
// restarts. A snapshot records the history paths and cursor position;
// restoring replays them through the engine's public operations, so guards
// run again and can veto entries that are no longer reachable.
package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/termo-dev/termo/pkg/nav"
)

// SnapshotVersion is the current snapshot wire format version.
const SnapshotVersion = 1

// ErrNoSnapshot is returned by Store.Load when no snapshot exists.
var ErrNoSnapshot = errors.New("persist: no snapshot")

// Entry is one persisted history entry.
type Entry struct {
	// Path is the full navigation target including the encoded query.
	Path string `json:"path"`

	// Name is the matched route name at capture time, informational only.
	Name string `json:"name,omitempty"`
}

// Snapshot is a point-in-time copy of the navigation history.
type Snapshot struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Entries []Entry   `json:"entries"`
	Index   int       `json:"index"`
}

// Store persists snapshots.
type Store interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}

// Capture copies the engine's history into a snapshot.
func Capture(engine *nav.Engine) *Snapshot {
	entries := engine.History()
	snap := &Snapshot{
		Version: SnapshotVersion,
		SavedAt: time.Now().UTC(),
		Entries: make([]Entry, len(entries)),
		Index:   engine.HistoryIndex(),
	}
	for i, e := range entries {
		snap.Entries[i] = Entry{
			Path: e.Path + nav.EncodeQuery(e.Query),
			Name: e.Name,
		}
	}
	return snap
}

// Restore replays a snapshot through the engine: every entry is pushed in
// order, then the cursor is moved back to the saved index. Guards run for
// each step exactly as they would for live navigation; a guard abort fails
// the restore rather than bypassing it.
func Restore(engine *nav.Engine, snap *Snapshot) error {
	if snap == nil || len(snap.Entries) == 0 {
		return nil
	}
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("persist: unsupported snapshot version %d", snap.Version)
	}
	if snap.Index < 0 || snap.Index >= len(snap.Entries) {
		return fmt.Errorf("persist: snapshot index %d out of range", snap.Index)
	}

	for _, entry := range snap.Entries {
		if !engine.Push(entry.Path) {
			return fmt.Errorf("persist: restore of %q rejected", entry.Path)
		}
	}

	if delta := snap.Index - (len(snap.Entries) - 1); delta != 0 {
		if !engine.Go(delta) {
			return fmt.Errorf("persist: restoring cursor to index %d rejected", snap.Index)
		}
	}
	return nil
}
