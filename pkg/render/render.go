// Package render defines the backend-agnostic renderer contract: a
// renderer turns a frame buffer into visible output and, when the
// backend has an input channel, produces events. Implementations live in
// the subpackages term, tcell, sim, shm, and rendertest.
package render

import (
	"time"

	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// Renderer is the sink every dashboard frame is drawn to.
//
// The contract to callers is "the whole buffer was rendered" even when
// an implementation diffs against its previous frame and emits only the
// changed cells. Draw alone need not be visible; Flush makes pending
// output visible. Cleanup is idempotent and must be safe to call even
// when construction only partially succeeded.
type Renderer interface {
	// Size reports the current drawable area. It may change between
	// calls when the backend is resized.
	Size() cellbuf.Rect

	// Draw renders a frame. The buffer's area must equal Size() at call
	// time; a mismatch fails with a SizeMismatchError.
	Draw(buf *cellbuf.Buffer) error

	// Flush makes everything drawn since the previous Flush visible.
	Flush() error

	// PollEvent returns the next input event, or nil after timeout or
	// when the backend has no input channel. It never blocks longer
	// than timeout.
	PollEvent(timeout time.Duration) Event

	// Cleanup restores any external state the renderer altered.
	Cleanup() error
}
