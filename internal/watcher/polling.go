package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"
)

type fileSnapshot struct {
	modTime time.Time
	size    int64
}

// snapshot stats every tracked file. Missing files are absent from the map.
func (w *Watcher) snapshot() map[string]fileSnapshot {
	state := make(map[string]fileSnapshot, len(w.tracked))
	for rel := range w.tracked {
		info, err := os.Stat(filepath.Join(w.root, filepath.FromSlash(rel)))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		state[rel] = fileSnapshot{modTime: info.ModTime(), size: info.Size()}
	}
	return state
}

// diffSnapshots returns the events that turn prev into curr, sorted by path.
func diffSnapshots(prev, curr map[string]fileSnapshot) []FileEvent {
	now := time.Now()
	var events []FileEvent
	for rel, snap := range curr {
		old, existed := prev[rel]
		switch {
		case !existed:
			events = append(events, FileEvent{Path: rel, Operation: OpCreate, Timestamp: now})
		case old.modTime != snap.modTime || old.size != snap.size:
			events = append(events, FileEvent{Path: rel, Operation: OpModify, Timestamp: now})
		}
	}
	for rel := range prev {
		if _, ok := curr[rel]; !ok {
			events = append(events, FileEvent{Path: rel, Operation: OpDelete, Timestamp: now})
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })
	return events
}

// runPolling stats the tracked files every PollInterval.
func (w *Watcher) runPolling(ctx context.Context) error {
	state := w.snapshot()

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			curr := w.snapshot()
			for _, e := range diffSnapshots(state, curr) {
				w.debouncer.Add(e)
			}
			state = curr
		}
	}
}
