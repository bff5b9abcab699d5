// Package filewatch monitors files for changes, coalescing the bursts
// editors produce per logical save (write-to-temp, rename) behind a
// debounce window. Changes surface only through PollChanges, so callers
// stay single-threaded; the fsnotify goroutine feeds the pending map
// and nothing else.
//
// When the OS notification backend cannot be constructed the watcher
// degrades to stat-based polling with the same debounce semantics
// instead of disabling change detection silently.
package filewatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period required before a change is
// reported: long enough to coalesce an editor's multi-step save, short
// enough to keep reload latency unnoticeable.
const DefaultDebounce = 150 * time.Millisecond

// ErrBackendUnavailable reports that neither the notification backend
// nor the polling fallback could be set up.
var ErrBackendUnavailable = errors.New("filewatch: no watch backend available")

// PathNotFoundError reports a Watch call on a path that does not exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("filewatch: path not found: %s", e.Path)
}

// Mode reports which change-detection backend a watcher runs on.
type Mode int

const (
	// ModeNotify uses OS file notifications via fsnotify.
	ModeNotify Mode = iota
	// ModePoll stats watched files on every PollChanges call.
	ModePoll
)

func (m Mode) String() string {
	if m == ModePoll {
		return "poll"
	}
	return "notify"
}

// Options configure a watcher.
type Options struct {
	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration
	// ForcePoll skips fsnotify entirely; for callers that already know
	// the notification backend is unreliable (network mounts).
	ForcePoll bool

	// now is an injectable clock for tests.
	now func() time.Time
}

// fileState is the stat signature used by the polling fallback.
type fileState struct {
	modTime time.Time
	size    int64
}

// Watcher tracks a set of files. One caller owns it; the internal mutex
// only fences the fsnotify goroutine.
type Watcher struct {
	mu       sync.Mutex
	mode     Mode
	notify   *fsnotify.Watcher
	debounce time.Duration
	now      func() time.Time

	watched map[string]fileState // abs path -> last stat signature
	dirs    map[string]int       // watched parent dirs, refcounted
	pending map[string]time.Time // abs path -> debounce deadline
	closed  bool
}

// New builds a watcher, preferring OS notifications and degrading to
// polling when fsnotify cannot start.
func New(opts Options) (*Watcher, error) {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	now := opts.now
	if now == nil {
		now = time.Now
	}
	w := &Watcher{
		mode:     ModePoll,
		debounce: debounce,
		now:      now,
		watched:  make(map[string]fileState),
		dirs:     make(map[string]int),
		pending:  make(map[string]time.Time),
	}
	if !opts.ForcePoll {
		if notify, err := fsnotify.NewWatcher(); err == nil {
			w.mode = ModeNotify
			w.notify = notify
			go w.pump()
		}
	}
	return w, nil
}

// Mode reports the active backend.
func (w *Watcher) Mode() Mode {
	return w.mode
}

// Watch starts monitoring path. Watching an already-watched path is a
// no-op. The parent directory is what fsnotify actually watches, so
// editors that replace files by rename are still seen.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return &PathNotFoundError{Path: path}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.watched[abs]; ok {
		return nil
	}
	w.watched[abs] = fileState{modTime: info.ModTime(), size: info.Size()}

	if w.mode == ModeNotify {
		dir := filepath.Dir(abs)
		if w.dirs[dir] == 0 {
			if err := w.notify.Add(dir); err != nil {
				delete(w.watched, abs)
				return fmt.Errorf("filewatch: watch %s: %w", dir, err)
			}
		}
		w.dirs[dir]++
	}
	return nil
}

// Unwatch stops monitoring path; unknown paths are ignored.
func (w *Watcher) Unwatch(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.watched[abs]; !ok {
		return
	}
	delete(w.watched, abs)
	delete(w.pending, abs)

	if w.mode == ModeNotify {
		dir := filepath.Dir(abs)
		if w.dirs[dir]--; w.dirs[dir] <= 0 {
			delete(w.dirs, dir)
			w.notify.Remove(dir)
		}
	}
}

// Watched returns the watched paths, sorted.
func (w *Watcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := make([]string, 0, len(w.watched))
	for p := range w.watched {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// PollChanges returns the set of changed paths whose debounce window
// has elapsed, clearing their pending state. It never blocks and
// returns nil while nothing has settled. Each coalesced change set is
// delivered exactly once.
func (w *Watcher) PollChanges() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.mode == ModePoll {
		w.pollStats()
	}

	now := w.now()
	var settled []string
	for path, deadline := range w.pending {
		if !now.Before(deadline) {
			settled = append(settled, path)
		}
	}
	for _, path := range settled {
		delete(w.pending, path)
	}
	if len(settled) == 0 {
		return nil
	}
	sort.Strings(settled)
	return settled
}

// pollStats marks watched files whose stat signature moved. A deleted
// file counts as changed once; its stored signature is zeroed so it
// fires again if recreated.
func (w *Watcher) pollStats() {
	for path, prev := range w.watched {
		info, err := os.Stat(path)
		if err != nil {
			if prev != (fileState{}) {
				w.watched[path] = fileState{}
				w.markPending(path)
			}
			continue
		}
		state := fileState{modTime: info.ModTime(), size: info.Size()}
		if state != prev {
			w.watched[path] = state
			w.markPending(path)
		}
	}
}

// markPending opens or extends a path's debounce window. The caller
// holds the mutex.
func (w *Watcher) markPending(path string) {
	w.pending[path] = w.now().Add(w.debounce)
}

// pump moves fsnotify events into the pending map. Events for files
// nobody watches (siblings in a watched directory) are dropped.
func (w *Watcher) pump() {
	for {
		select {
		case ev, ok := <-w.notify.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			w.mu.Lock()
			if !w.closed {
				if _, watched := w.watched[abs]; watched {
					w.markPending(abs)
				}
			}
			w.mu.Unlock()
		case _, ok := <-w.notify.Errors:
			if !ok {
				return
			}
			// Backend errors are non-fatal; the caller just sees fewer
			// events and PollChanges stays usable.
		}
	}
}

// Close releases the notification backend. The watcher is unusable
// afterwards.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if w.notify != nil {
		return w.notify.Close()
	}
	return nil
}
