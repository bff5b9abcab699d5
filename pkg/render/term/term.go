// Package term renders frames to a local terminal over ANSI escape
// sequences. Output volume is bounded by the number of changed cells:
// each Draw diffs against the previously flushed frame and emits only
// the cells that differ, with minimal cursor repositioning.
//
// Input byte decoding is a collaborator, not part of this package; the
// renderer accepts any EventSource and synthesizes ResizeEvents itself
// from SIGWINCH.
package term

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/frescoui/fresco/pkg/render"
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// EventSource supplies decoded input events to the renderer. PollEvent
// follows the render.Renderer timeout contract.
type EventSource interface {
	PollEvent(timeout time.Duration) render.Event
}

// Options configure the terminal renderer.
type Options struct {
	// Output defaults to os.Stdout and must be a terminal.
	Output *os.File
	// Input supplies decoded events; nil means no input channel.
	Input EventSource
	// Profile overrides color-profile detection when non-nil.
	Profile *termenv.Profile
}

// Renderer drives a local TTY. It owns the terminal's raw mode and the
// alternate screen from construction until Cleanup.
type Renderer struct {
	out     *os.File
	input   EventSource
	profile termenv.Profile

	size    cellbuf.Rect
	prev    *cellbuf.Buffer
	next    *cellbuf.Buffer
	pending *ansiWriter

	rawState *term.State
	winch    chan os.Signal

	mu        sync.Mutex
	cleanedUp bool
}

// New acquires raw mode, enters the alternate screen, and hides the
// cursor. The caller must arrange for Cleanup to run, including on
// failure paths.
func New(opts Options) (*Renderer, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	fd := int(out.Fd())
	if !term.IsTerminal(fd) {
		return nil, &render.BackendError{Op: "init", Err: fmt.Errorf("%s is not a terminal", out.Name())}
	}

	profile := termenv.NewOutput(out).ColorProfile()
	if opts.Profile != nil {
		profile = *opts.Profile
	}

	r := &Renderer{
		out:     out,
		input:   opts.Input,
		profile: profile,
		pending: newANSIWriter(profile),
		winch:   make(chan os.Signal, 1),
	}

	rawState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, &render.BackendError{Op: "raw mode", Err: err}
	}
	r.rawState = rawState

	if _, err := io.WriteString(out, ansiAltScreen+ansiCursorHide+ansiClear+ansiCursorHome); err != nil {
		r.Cleanup()
		return nil, &render.BackendError{Op: "init", Err: err}
	}

	w, h, err := term.GetSize(fd)
	if err != nil {
		r.Cleanup()
		return nil, &render.BackendError{Op: "size", Err: err}
	}
	r.size = cellbuf.NewRect(0, 0, w, h)

	signal.Notify(r.winch, unix.SIGWINCH)
	return r, nil
}

// Size reports the terminal dimensions, refreshing them when a resize
// signal is pending.
func (r *Renderer) Size() cellbuf.Rect {
	r.drainResize()
	return r.size
}

// drainResize folds any pending SIGWINCH into the cached size and
// invalidates the previous frame so the next Draw repaints fully.
func (r *Renderer) drainResize() bool {
	resized := false
	for {
		select {
		case <-r.winch:
			resized = true
		default:
			if resized {
				if w, h, err := term.GetSize(int(r.out.Fd())); err == nil {
					r.size = cellbuf.NewRect(0, 0, w, h)
				}
				r.prev = nil
			}
			return resized
		}
	}
}

// Draw diffs the frame against the previously flushed one and queues
// escape output for the changed cells. Nothing reaches the terminal
// until Flush.
func (r *Renderer) Draw(buf *cellbuf.Buffer) error {
	r.drainResize()
	if buf.Area() != r.size {
		return &render.SizeMismatchError{Got: buf.Area(), Want: r.size}
	}

	patches := buf.Diff(r.prev)
	for _, p := range patches {
		r.pending.moveTo(p.X, p.Y)
		r.pending.setStyle(p.Cell.Style)
		r.pending.writeCell(p.Cell)
	}
	if len(patches) > 0 {
		r.pending.reset()
	}
	r.next = buf.Clone()
	return nil
}

// Flush writes the queued output and promotes the drawn frame to the
// previous-frame cache.
func (r *Renderer) Flush() error {
	if r.pending.Len() > 0 {
		if _, err := io.WriteString(r.out, r.pending.String()); err != nil {
			return &render.BackendError{Op: "flush", Err: err}
		}
		r.pending = newANSIWriter(r.profile)
	}
	if r.next != nil {
		r.prev = r.next
		r.next = nil
	}
	return nil
}

// PollEvent returns a pending resize, then delegates to the configured
// input source. Without an input source it waits out the timeout and
// returns nil.
func (r *Renderer) PollEvent(timeout time.Duration) render.Event {
	if r.drainResize() {
		return render.ResizeEvent{Width: r.size.Width, Height: r.size.Height}
	}
	if r.input == nil {
		if timeout > 0 {
			time.Sleep(timeout)
		}
		return nil
	}
	return r.input.PollEvent(timeout)
}

// Cleanup restores the terminal: cooked mode, main screen, visible
// cursor. Safe to call repeatedly and after partial construction.
func (r *Renderer) Cleanup() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cleanedUp {
		return nil
	}
	r.cleanedUp = true

	signal.Stop(r.winch)

	var firstErr error
	if _, err := io.WriteString(r.out, ansiReset+ansiCursorShow+ansiMainScreen); err != nil {
		firstErr = &render.BackendError{Op: "cleanup", Err: err}
	}
	if r.rawState != nil {
		if err := term.Restore(int(r.out.Fd()), r.rawState); err != nil && firstErr == nil {
			firstErr = &render.BackendError{Op: "cleanup", Err: err}
		}
	}
	return firstErr
}

var _ render.Renderer = (*Renderer)(nil)
