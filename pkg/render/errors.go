package render

import (
	"errors"
	"fmt"

	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// ErrConnectionLost reports that the peer on the other side of a
// cross-process renderer went away. Surfaced by Draw or Flush, never as
// a silent hang.
var ErrConnectionLost = errors.New("render: connection lost")

// SizeMismatchError reports a Draw whose buffer does not cover the
// renderer's current area.
type SizeMismatchError struct {
	Got  cellbuf.Rect
	Want cellbuf.Rect
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("render: buffer area %v does not match renderer size %v", e.Got, e.Want)
}

// FrameTooLargeError reports a frame exceeding a fixed-capacity
// backend. Oversized frames are rejected whole, never truncated.
type FrameTooLargeError struct {
	Width     int
	Height    int
	MaxWidth  int
	MaxHeight int
}

func (e *FrameTooLargeError) Error() string {
	return fmt.Sprintf("render: frame %dx%d exceeds capacity %dx%d",
		e.Width, e.Height, e.MaxWidth, e.MaxHeight)
}

// BackendError wraps an I/O failure from the underlying terminal or
// transport.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("render: %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
