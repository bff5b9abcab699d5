// Package rendertest provides the in-memory renderer used across the
// test suites: it stores the last drawn frame verbatim (no diffing), lets
// tests inject synthetic events, and asserts frame content without any
// timing dependence.
package rendertest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/frescoui/fresco/pkg/render"
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// Renderer is the test backend. Zero timing: PollEvent returns queued
// events immediately and nil once the queue is empty.
type Renderer struct {
	size    cellbuf.Rect
	last    *cellbuf.Buffer
	flushed *cellbuf.Buffer
	events  []render.Event

	DrawCount    int
	FlushCount   int
	CleanupCount int

	// Injectable failures for driver error-path tests.
	DrawErr  error
	FlushErr error
}

// New returns a test renderer with the given drawable size.
func New(width, height int) *Renderer {
	return &Renderer{size: cellbuf.NewRect(0, 0, width, height)}
}

// Size implements render.Renderer.
func (r *Renderer) Size() cellbuf.Rect {
	return r.size
}

// Resize changes the reported size and queues a ResizeEvent, the way a
// real backend surfaces a terminal resize.
func (r *Renderer) Resize(width, height int) {
	r.size = cellbuf.NewRect(0, 0, width, height)
	r.Inject(render.ResizeEvent{Width: width, Height: height})
}

// Draw stores a verbatim copy of the frame.
func (r *Renderer) Draw(buf *cellbuf.Buffer) error {
	if r.DrawErr != nil {
		return r.DrawErr
	}
	if buf.Area() != r.size {
		return &render.SizeMismatchError{Got: buf.Area(), Want: r.size}
	}
	r.last = buf.Clone()
	r.DrawCount++
	return nil
}

// Flush publishes the last drawn frame as the visible one.
func (r *Renderer) Flush() error {
	if r.FlushErr != nil {
		return r.FlushErr
	}
	r.flushed = r.last
	r.FlushCount++
	return nil
}

// PollEvent pops the next injected event, ignoring the timeout.
func (r *Renderer) PollEvent(timeout time.Duration) render.Event {
	if len(r.events) == 0 {
		return nil
	}
	ev := r.events[0]
	r.events = r.events[1:]
	return ev
}

// Cleanup implements render.Renderer.
func (r *Renderer) Cleanup() error {
	r.CleanupCount++
	return nil
}

// Inject queues events for PollEvent in order.
func (r *Renderer) Inject(events ...render.Event) {
	r.events = append(r.events, events...)
}

// InjectKeys queues one KeyEvent per rune.
func (r *Renderer) InjectKeys(s string) {
	for _, ru := range s {
		r.Inject(render.KeyEvent{Code: render.KeyRune, Rune: ru})
	}
}

// Last returns the most recently drawn frame, flushed or not.
func (r *Renderer) Last() *cellbuf.Buffer {
	return r.last
}

// Flushed returns the frame made visible by the most recent Flush.
func (r *Renderer) Flushed() *cellbuf.Buffer {
	return r.flushed
}

// Text returns the last drawn frame as plain text.
func (r *Renderer) Text() string {
	if r.last == nil {
		return ""
	}
	return r.last.String()
}

// ContainsText reports whether the last drawn frame shows the text on
// any single row.
func (r *Renderer) ContainsText(text string) bool {
	return strings.Contains(r.Text(), text)
}

// CellAt returns the cell at (x, y) of the last drawn frame.
func (r *Renderer) CellAt(x, y int) (cellbuf.Cell, bool) {
	if r.last == nil {
		return cellbuf.Cell{}, false
	}
	return r.last.Get(x, y)
}

// RequireFrame fails the test with a unified diff when the last drawn
// frame's text does not match want.
func (r *Renderer) RequireFrame(t *testing.T, want string) {
	t.Helper()
	got := r.Text()
	if got == want {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		diff = fmt.Sprintf("want:\n%s\ngot:\n%s", want, got)
	}
	t.Fatalf("frame mismatch:\n%s", diff)
}

var _ render.Renderer = (*Renderer)(nil)
