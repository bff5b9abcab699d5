// Package engine owns the hot-reload state machine. It ties the loader,
// the file watcher and a pluggable compiler together: a successful load
// swaps the active definition and re-watches its dependency set, a
// failed one keeps the previous definition rendering and surfaces an
// error overlay instead. User and UI state survive reloads untouched.
package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/frescoui/fresco/pkg/loader"
	"github.com/frescoui/fresco/pkg/logging"
	"github.com/frescoui/fresco/pkg/telemetry"
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
	"github.com/frescoui/fresco/pkg/ui/theme"
)

// State is the engine's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Definition is a compiled dashboard. Compilation is pluggable; the
// engine only needs something it can render against the live state.
type Definition interface {
	Render(area cellbuf.Rect, buf *cellbuf.Buffer, state *DashboardState)
}

// CompileFunc turns a loaded file tree into a Definition. entry is the
// absolute path of the root file; files holds it and every transitive
// #load target.
type CompileFunc func(entry string, files map[string]*loader.LoadedFile) (Definition, error)

// ChangeSource is the watcher seam. *filewatch.Watcher satisfies it.
type ChangeSource interface {
	Watch(path string) error
	Unwatch(path string)
	PollChanges() []string
}

// Options configures a new Engine. Compile is required; Watcher and
// Logger may be nil (no auto-reload, no logging).
type Options struct {
	Compile CompileFunc
	Watcher ChangeSource
	Logger  *logging.Logger
	Theme   *theme.Theme
}

// Engine is single-owner: all methods must be called from the runtime
// goroutine.
type Engine struct {
	loader  *loader.Loader
	watcher ChangeSource
	compile CompileFunc
	log     *logging.Logger
	theme   *theme.Theme

	state    State
	entry    string
	active   Definition
	watchSet map[string]bool
	dash     *DashboardState
	dirty    bool
}

// New returns an idle engine with empty dashboard state.
func New(opts Options) *Engine {
	th := opts.Theme
	if th == nil {
		th = theme.Default()
	}
	return &Engine{
		loader:   loader.New(),
		watcher:  opts.Watcher,
		compile:  opts.Compile,
		log:      opts.Logger,
		theme:    th,
		state:    StateIdle,
		watchSet: make(map[string]bool),
		dash:     NewDashboardState(),
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// ActivePath returns the entry file of the active definition, or "".
func (e *Engine) ActivePath() string { return e.entry }

// DashboardState returns the live state. The engine never replaces the
// maps inside it, so references held across reloads stay valid.
func (e *Engine) DashboardState() *DashboardState { return e.dash }

// Dirty reports whether something changed since the last MarkClean.
func (e *Engine) Dirty() bool { return e.dirty }

// MarkClean is called by the runtime after rendering a frame.
func (e *Engine) MarkClean() { e.dirty = false }

// Load loads and compiles path, making it the active definition on
// success. On failure the previous definition (if any) stays live and
// the failure is recorded into the dashboard state for the overlay.
func (e *Engine) Load(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	e.setState(StateLoading)
	start := time.Now()

	files, err := e.loader.LoadTree(abs)
	if err != nil {
		return e.fail(abs, start, err)
	}
	def, err := e.compile(abs, files)
	if err != nil {
		return e.fail(abs, start, err)
	}

	e.active = def
	e.entry = abs
	e.dash.Err = nil
	e.rewatch(abs)
	e.setState(StateReady)
	e.dirty = true

	telemetry.Reloads.WithLabelValues(telemetry.ResultOK).Inc()
	telemetry.ReloadDuration.Observe(time.Since(start).Seconds())
	e.log.Info(logging.CategoryReload, "reload_ok", "definition loaded", map[string]any{
		"path":  abs,
		"files": len(files),
	})
	return nil
}

// Reload re-runs Load against the active path, forcing a re-read of
// the whole active tree so edits the watcher missed are picked up.
func (e *Engine) Reload() error {
	if e.entry == "" {
		return errors.New("engine: nothing loaded")
	}
	e.loader.Invalidate(e.entry)
	for _, dep := range e.loader.Dependencies(e.entry) {
		e.loader.Invalidate(dep)
	}
	return e.Load(e.entry)
}

// PollChanges asks the watcher for settled changes, invalidates them in
// the loader, and reloads when the changed set touches the active tree.
// It reports whether a reload was attempted.
func (e *Engine) PollChanges() (bool, error) {
	if e.watcher == nil {
		return false, nil
	}
	changed := e.watcher.PollChanges()
	if len(changed) == 0 {
		return false, nil
	}
	telemetry.WatchEvents.Inc()
	e.log.Debug(logging.CategoryWatch, "changes", "files changed on disk", map[string]any{
		"paths": changed,
	})

	hit := false
	for _, p := range changed {
		e.loader.Invalidate(p)
		if e.watchSet[p] {
			hit = true
		}
	}
	if !hit || e.entry == "" {
		return false, nil
	}
	return true, e.Load(e.entry)
}

// DismissError clears the recorded error. The lifecycle state is left
// alone so a failed engine still reports failed until the next reload.
func (e *Engine) DismissError() {
	if e.dash.Err != nil {
		e.dash.Err = nil
		e.dirty = true
	}
}

// Render draws the active definition into buf, then the error overlay
// on top when a failure is recorded. With nothing loaded it clears to
// the theme background so the overlay has a stable canvas.
func (e *Engine) Render(buf *cellbuf.Buffer) {
	area := buf.Area()
	if e.active != nil {
		e.active.Render(area, buf, e.dash)
	} else {
		buf.Fill(area, " ", e.theme.Background)
	}
	if e.dash.Err != nil {
		overlay := ErrorOverlay{Record: e.dash.Err, Theme: e.theme}
		overlay.Render(area, buf)
	}
}

// fail records a load failure without disturbing the active definition.
func (e *Engine) fail(path string, start time.Time, err error) error {
	e.dash.Err = recordFromError(path, err)
	e.setState(StateFailed)
	e.dirty = true

	telemetry.Reloads.WithLabelValues(telemetry.ResultFailed).Inc()
	telemetry.ReloadDuration.Observe(time.Since(start).Seconds())
	e.log.Error(logging.CategoryReload, "reload_failed", err.Error(), map[string]any{
		"path": path,
	})
	return err
}

// rewatch syncs the watcher with the new dependency set.
func (e *Engine) rewatch(entry string) {
	next := map[string]bool{entry: true}
	for _, dep := range e.loader.Dependencies(entry) {
		next[dep] = true
	}
	if e.watcher != nil {
		for p := range e.watchSet {
			if !next[p] {
				e.watcher.Unwatch(p)
			}
		}
		for p := range next {
			if !e.watchSet[p] {
				if err := e.watcher.Watch(p); err != nil {
					e.log.Warn(logging.CategoryWatch, "watch_failed", err.Error(), map[string]any{
						"path": p,
					})
				}
			}
		}
	}
	e.watchSet = next
}

func (e *Engine) setState(s State) {
	e.state = s
	telemetry.EngineState.Set(float64(s))
}

// recordFromError maps the loader/compiler error taxonomy onto an
// overlay record.
func recordFromError(path string, err error) *ErrorRecord {
	rec := &ErrorRecord{
		Title:    "Reload Failed",
		Message:  err.Error(),
		Path:     path,
		Severity: SeverityError,
	}

	var parseErr *loader.ParseError
	var cycleErr *loader.CircularDependencyError
	var notFound *loader.NotFoundError
	var ioErr *loader.IOError
	switch {
	case errors.As(err, &parseErr):
		rec.Title = "Parse Error"
		rec.Message = parseErr.Message
		rec.Path = parseErr.Path
		rec.Line = parseErr.Line
		rec.Col = parseErr.Col
		rec.Hints = append(rec.Hints, "Check the syntax near the reported location")
	case errors.As(err, &cycleErr):
		rec.Title = "Circular Dependency"
		rec.Message = err.Error()
		rec.Hints = append(rec.Hints, "Break the cycle by removing one of the #load directives")
	case errors.As(err, &notFound):
		rec.Title = "File Not Found"
		rec.Path = notFound.Path
		rec.Hints = append(rec.Hints, "Check the path in the #load directive or on the command line")
	case errors.As(err, &ioErr):
		rec.Title = "Read Error"
		rec.Path = ioErr.Path
	}
	return rec
}
