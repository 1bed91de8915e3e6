package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Operation represents a file system operation type.
type Operation int

const (
	// OpCreate indicates a tracked file appeared.
	OpCreate Operation = iota
	// OpModify indicates a tracked file was written.
	OpModify
	// OpDelete indicates a tracked file was removed or renamed away.
	OpDelete
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// FileEvent is a change to one tracked file.
type FileEvent struct {
	// Path is relative to the project root, with forward slashes.
	Path      string
	Operation Operation
	Timestamp time.Time
}

// Options configures the watcher behavior.
type Options struct {
	// DebounceWindow is the quiet period before a batch is delivered.
	// Default: 300ms
	DebounceWindow time.Duration

	// PollInterval is the stat interval in polling mode.
	// Default: 2s
	PollInterval time.Duration

	// ForcePolling skips fsnotify entirely.
	ForcePolling bool

	// Logger receives debug records. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the default watcher options.
func DefaultOptions() Options {
	return Options{
		DebounceWindow: 300 * time.Millisecond,
		PollInterval:   2 * time.Second,
	}
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	defaults := DefaultOptions()
	if o.DebounceWindow <= 0 {
		o.DebounceWindow = defaults.DebounceWindow
	}
	if o.PollInterval <= 0 {
		o.PollInterval = defaults.PollInterval
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Watcher watches a fixed set of files below a project root.
type Watcher struct {
	root    string
	tracked map[string]bool // relative file paths
	dirs    map[string]bool // relative directories leading to tracked files
	opts    Options
	logger  *slog.Logger

	debouncer *Debouncer
	fsWatcher *fsnotify.Watcher
}

// New creates a watcher for paths (relative to root, forward slashes).
func New(root string, paths []string, opts Options) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute path: %w", err)
	}

	opts = opts.WithDefaults()
	w := &Watcher{
		root:    absRoot,
		tracked: make(map[string]bool, len(paths)),
		dirs:    map[string]bool{".": true},
		opts:    opts,
		logger:  opts.Logger,
	}
	for _, p := range paths {
		rel := path.Clean(filepath.ToSlash(p))
		w.tracked[rel] = true
		for dir := path.Dir(rel); dir != "."; dir = path.Dir(dir) {
			w.dirs[dir] = true
		}
	}
	return w, nil
}

// Tracked returns the tracked paths in sorted order.
func (w *Watcher) Tracked() []string {
	out := make([]string, 0, len(w.tracked))
	for p := range w.tracked {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Run watches until ctx is cancelled, calling onChange once per debounced
// batch. Calls to onChange never overlap. Cancellation is a normal exit
// and returns nil.
func (w *Watcher) Run(ctx context.Context, onChange func([]FileEvent)) error {
	w.debouncer = NewDebouncer(w.opts.DebounceWindow)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for batch := range w.debouncer.Output() {
			onChange(batch)
		}
	}()

	var err error
	if fsw, fsErr := w.newFsnotify(); fsErr == nil {
		w.fsWatcher = fsw
		err = w.runFsnotify(ctx)
		_ = fsw.Close()
	} else {
		if !w.opts.ForcePolling {
			w.logger.Debug("fsnotify unavailable, polling",
				slog.String("error", fsErr.Error()),
				slog.Duration("interval", w.opts.PollInterval))
		}
		err = w.runPolling(ctx)
	}

	w.debouncer.Stop()
	wg.Wait()
	return err
}

func (w *Watcher) newFsnotify() (*fsnotify.Watcher, error) {
	if w.opts.ForcePolling {
		return nil, fmt.Errorf("polling forced")
	}
	return fsnotify.NewWatcher()
}

// runFsnotify adds the existing watch directories and pumps events.
func (w *Watcher) runFsnotify(ctx context.Context) error {
	if err := w.fsWatcher.Add(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	w.addDirsUnder(".")

	w.logger.Debug("Watching project",
		slog.String("root", w.root),
		slog.Int("files", len(w.tracked)),
		slog.Int("dirs", len(w.fsWatcher.WatchList())))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleFsnotifyEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Debug("Watcher error", slog.String("error", err.Error()))
		}
	}
}

// handleFsnotifyEvent filters an event to the tracked set.
func (w *Watcher) handleFsnotifyEvent(event fsnotify.Event) {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	// A watched directory (re)appeared: watch it and anything below it,
	// and report tracked files that were created before the watch existed.
	if w.dirs[rel] && event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.fsWatcher.Add(event.Name)
			w.addDirsUnder(rel)
			for p := range w.tracked {
				if isUnder(p, rel) && w.isFile(p) {
					w.debouncer.Add(FileEvent{Path: p, Operation: OpCreate, Timestamp: time.Now()})
				}
			}
			return
		}
	}

	if !w.tracked[rel] {
		return
	}

	var op Operation
	switch {
	case event.Op&fsnotify.Create != 0:
		op = OpCreate
	case event.Op&fsnotify.Write != 0:
		op = OpModify
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		op = OpDelete
	default:
		return
	}

	w.debouncer.Add(FileEvent{Path: rel, Operation: op, Timestamp: time.Now()})
}

// addDirsUnder adds every existing watch directory strictly below rel.
func (w *Watcher) addDirsUnder(rel string) {
	for dir := range w.dirs {
		if dir == rel || !isUnder(dir, rel) {
			continue
		}
		abs := filepath.Join(w.root, filepath.FromSlash(dir))
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			_ = w.fsWatcher.Add(abs)
		}
	}
}

func (w *Watcher) isFile(rel string) bool {
	info, err := os.Stat(filepath.Join(w.root, filepath.FromSlash(rel)))
	return err == nil && info.Mode().IsRegular()
}

// isUnder reports whether p equals dir or lies below it.
func isUnder(p, dir string) bool {
	if dir == "." {
		return true
	}
	return p == dir || len(p) > len(dir) && p[:len(dir)] == dir && p[len(dir)] == '/'
}
