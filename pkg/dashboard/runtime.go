// Package dashboard runs the event/render loop. The loop is
// single-threaded: it owns the renderer, the reload engine and the
// dashboard state, and nothing else touches them. The only concession
// to concurrency is a snapshot of the last frame and state published
// under a narrow mutex for the debug server.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/frescoui/fresco/pkg/engine"
	"github.com/frescoui/fresco/pkg/logging"
	"github.com/frescoui/fresco/pkg/render"
	"github.com/frescoui/fresco/pkg/telemetry"
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// UpdateFunc lets the application react to events the runtime does not
// claim. It returns true when the state changed and a redraw is due.
type UpdateFunc func(state *engine.DashboardState, ev render.Event) bool

// TickFunc runs once per loop iteration, for feeding simulated or
// polled data into the state. It returns true when a redraw is due.
type TickFunc func(state *engine.DashboardState) bool

// Options configures a Runtime. Renderer and Engine are required.
type Options struct {
	Renderer render.Renderer
	Engine   *engine.Engine
	Logger   *logging.Logger
	Update   UpdateFunc
	Tick     TickFunc
	// TickRate bounds how long one PollEvent waits; default 250ms.
	TickRate time.Duration
	// MaxFPS caps the redraw rate; default 60.
	MaxFPS int
}

// Runtime is the dashboard loop.
type Runtime struct {
	r       render.Renderer
	eng     *engine.Engine
	log     *logging.Logger
	update  UpdateFunc
	tick    TickFunc
	tickDur time.Duration
	limiter *rate.Limiter

	prev  *cellbuf.Buffer
	dirty bool

	snapMu    sync.Mutex
	snapFrame string
	snapState map[string]any
}

// New builds a runtime.
func New(opts Options) *Runtime {
	tickDur := opts.TickRate
	if tickDur <= 0 {
		tickDur = 250 * time.Millisecond
	}
	fps := opts.MaxFPS
	if fps <= 0 {
		fps = 60
	}
	return &Runtime{
		r:       opts.Renderer,
		eng:     opts.Engine,
		log:     opts.Logger,
		update:  opts.Update,
		tick:    opts.Tick,
		tickDur: tickDur,
		limiter: rate.NewLimiter(rate.Limit(fps), 1),
		dirty:   true,
	}
}

// Run drives the loop until the context is cancelled, a quit key
// arrives, or the renderer fails. The terminal is restored on every
// exit path, panics included.
func (rt *Runtime) Run(ctx context.Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			rt.r.Cleanup()
			err = fmt.Errorf("dashboard panicked: %v", p)
			rt.log.Error(logging.CategoryRuntime, "panic", err.Error(), nil)
		}
	}()

	for {
		if ctx.Err() != nil {
			rt.r.Cleanup()
			return ctx.Err()
		}

		ev := rt.r.PollEvent(rt.tickDur)
		if ev != nil {
			quit := rt.apply(ev)
			if quit {
				rt.r.Cleanup()
				return nil
			}
			// Drain whatever queued behind the first event before
			// spending time on a frame.
			for {
				next := rt.r.PollEvent(0)
				if next == nil {
					break
				}
				if rt.apply(next) {
					rt.r.Cleanup()
					return nil
				}
			}
		}

		// Reload failures surface through the overlay, not the loop.
		rt.eng.PollChanges()
		if rt.tick != nil && rt.tick(rt.eng.DashboardState()) {
			rt.dirty = true
		}

		if (rt.dirty || rt.eng.Dirty()) && rt.limiter.Allow() {
			if err := rt.renderFrame(); err != nil {
				rt.r.Cleanup()
				return err
			}
		}
	}
}

// apply routes one event, reporting whether the runtime should quit.
func (rt *Runtime) apply(ev render.Event) bool {
	switch e := ev.(type) {
	case render.KeyEvent:
		switch {
		case e.IsCtrl('c'), e.Code == render.KeyRune && e.Rune == 'q' && e.Mods == 0:
			return true
		case e.IsCtrl('r'):
			if err := rt.eng.Reload(); err != nil {
				rt.log.Warn(logging.CategoryReload, "manual_reload_failed", err.Error(), nil)
			}
			return false
		case e.IsCtrl('d'):
			rt.eng.DismissError()
			return false
		}
	case render.ResizeEvent:
		rt.prev = nil
		rt.dirty = true
		return false
	}
	if rt.update != nil && rt.update(rt.eng.DashboardState(), ev) {
		rt.dirty = true
	}
	return false
}

func (rt *Runtime) renderFrame() error {
	buf := cellbuf.New(rt.r.Size())
	rt.eng.Render(buf)

	if err := rt.r.Draw(buf); err != nil {
		var mismatch *render.SizeMismatchError
		if errors.As(err, &mismatch) {
			// Raced a resize; try again next iteration at the new size.
			rt.prev = nil
			return nil
		}
		if errors.Is(err, render.ErrConnectionLost) {
			rt.log.Warn(logging.CategoryShm, "reader_lost", "attached reader went stale", nil)
			return nil
		}
		return fmt.Errorf("draw: %w", err)
	}
	if err := rt.r.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	telemetry.FramesRendered.Inc()
	telemetry.CellsEmitted.Add(float64(len(buf.Diff(rt.prev))))
	rt.prev = buf
	rt.dirty = false
	rt.eng.MarkClean()
	rt.publishSnapshot(buf)
	return nil
}

// publishSnapshot copies the frame and a shallow state view for the
// debug server.
func (rt *Runtime) publishSnapshot(buf *cellbuf.Buffer) {
	st := rt.eng.DashboardState()
	snap := map[string]any{
		"engine_state": rt.eng.State().String(),
		"active_path":  rt.eng.ActivePath(),
		"user":         maps.Clone(st.User),
		"ui":           maps.Clone(st.UI),
	}
	if st.Err != nil {
		snap["error"] = map[string]any{
			"title":    st.Err.Title,
			"message":  st.Err.Message,
			"location": st.Err.Location(),
			"severity": st.Err.Severity.String(),
		}
	}
	frame := buf.String()

	rt.snapMu.Lock()
	rt.snapFrame = frame
	rt.snapState = snap
	rt.snapMu.Unlock()
}

// StateSnapshot returns the last published state view.
func (rt *Runtime) StateSnapshot() any {
	rt.snapMu.Lock()
	defer rt.snapMu.Unlock()
	if rt.snapState == nil {
		return map[string]any{"engine_state": engine.StateIdle.String()}
	}
	return rt.snapState
}

// FrameSnapshot returns the last flushed frame as plain text.
func (rt *Runtime) FrameSnapshot() string {
	rt.snapMu.Lock()
	defer rt.snapMu.Unlock()
	return rt.snapFrame
}
