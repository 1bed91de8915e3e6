// Package watcher notifies callers when any file a rulebook checks changes.
//
// Only the directories leading to the tracked files are watched, so large
// engine output trees (Binaries, Intermediate, Saved) never generate events.
// fsnotify is used when available, with stat polling as a fallback for
// filesystems that do not deliver events (network mounts, some container
// volumes). Events are debounced so an editor's save burst triggers a
// single re-check.
//
// Usage:
//
//	w, err := watcher.New(root, rules.WatchedPaths(), watcher.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	err = w.Run(ctx, func(events []watcher.FileEvent) {
//	    // re-run the checks
//	})
package watcher
