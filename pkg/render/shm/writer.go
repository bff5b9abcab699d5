package shm

import (
	"encoding/binary"
	"os"
	"sync/atomic"
	"time"

	"github.com/frescoui/fresco/pkg/render"
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// Capacity and liveness defaults.
const (
	DefaultMaxWidth  = 512
	DefaultMaxHeight = 256

	// DefaultStaleAfter is how long a heartbeat may age before the
	// peer counts as gone.
	DefaultStaleAfter = 3 * time.Second
)

// WriterOptions configure the writer side of the segment.
type WriterOptions struct {
	// MaxWidth and MaxHeight fix the grid capacity; frames larger than
	// this are rejected, never truncated. Zero means the defaults.
	MaxWidth  int
	MaxHeight int

	// Width and Height set the initial drawable size, before the host
	// sends its first resize. Zero means the full capacity.
	Width  int
	Height int

	// StaleAfter bounds how long an attached reader may go silent
	// before Draw and Flush surface ErrConnectionLost.
	StaleAfter time.Duration

	// RemoveOnCleanup unlinks the segment file in Cleanup.
	RemoveOnCleanup bool

	// now is an injectable clock for tests.
	now func() time.Time
}

// Writer is the runtime-side renderer that publishes frames into a
// shared-memory segment. It never blocks on the reader: frame publish
// is a seqlock write and events drain from a non-blocking ring.
type Writer struct {
	seg  *segment
	path string
	opts WriterOptions

	size         cellbuf.Rect
	staging      *cellbuf.Buffer
	pastePartial []byte
	lostReported bool
	cleanedUp    bool
}

// NewWriter creates the segment file at path and maps it.
func NewWriter(path string, opts WriterOptions) (*Writer, error) {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultMaxWidth
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = DefaultMaxHeight
	}
	if opts.Width <= 0 {
		opts.Width = opts.MaxWidth
	}
	if opts.Height <= 0 {
		opts.Height = opts.MaxHeight
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = DefaultStaleAfter
	}
	if opts.now == nil {
		opts.now = time.Now
	}

	seg, err := createSegment(path, opts.MaxWidth, opts.MaxHeight)
	if err != nil {
		return nil, err
	}
	w := &Writer{
		seg:  seg,
		path: path,
		opts: opts,
		size: cellbuf.NewRect(0, 0, opts.Width, opts.Height),
	}
	w.beat()
	return w, nil
}

// Size reports the current drawable area. The host drives it through
// resize events on the ring.
func (w *Writer) Size() cellbuf.Rect {
	return w.size
}

// Draw validates and stages a frame. Publication happens in Flush.
func (w *Writer) Draw(buf *cellbuf.Buffer) error {
	if err := w.checkReader(); err != nil {
		return err
	}
	if buf.Area() != w.size {
		return &render.SizeMismatchError{Got: buf.Area(), Want: w.size}
	}
	maxW, maxH := w.seg.capacity()
	if buf.Area().Width > maxW || buf.Area().Height > maxH {
		return &render.FrameTooLargeError{
			Width:     buf.Area().Width,
			Height:    buf.Area().Height,
			MaxWidth:  maxW,
			MaxHeight: maxH,
		}
	}
	w.staging = buf.Clone()
	return nil
}

// Flush publishes the staged frame through the seqlock: sequence goes
// odd, the grid and dimensions are written, sequence goes even. The
// atomic increments order the grid writes so a reader that sees a
// stable even sequence holds exactly that frame.
func (w *Writer) Flush() error {
	if err := w.checkReader(); err != nil {
		return err
	}
	w.beat()
	if w.staging == nil {
		return nil
	}
	frame := w.staging
	w.staging = nil
	area := frame.Area()

	atomic.AddUint64(w.seg.sequence(), 1) // odd: write in progress

	binary.LittleEndian.PutUint32(w.seg.data[offWidth:], uint32(area.Width))
	binary.LittleEndian.PutUint32(w.seg.data[offHeight:], uint32(area.Height))
	grid := w.seg.grid()
	maxW, _ := w.seg.capacity()
	for y := 0; y < area.Height; y++ {
		for x := 0; x < area.Width; x++ {
			c, _ := frame.Get(area.X+x, area.Y+y)
			off := (y*maxW + x) * cellStride
			encodeCell(grid[off:off+cellStride], c)
		}
	}

	atomic.AddUint64(w.seg.sequence(), 1) // even: frame complete
	return nil
}

// PollEvent drains the host's event ring, waiting up to timeout for the
// first event. Resize events update the drawable size before being
// returned to the caller.
func (w *Writer) PollEvent(timeout time.Duration) render.Event {
	deadline := w.opts.now().Add(timeout)
	for {
		if ev, ok := w.seg.popEvent(&w.pastePartial); ok {
			if resize, isResize := ev.(render.ResizeEvent); isResize {
				w.size = cellbuf.NewRect(0, 0, resize.Width, resize.Height)
			}
			return ev
		}
		if !w.opts.now().Before(deadline) {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
}

// Cleanup unmaps the segment; with RemoveOnCleanup it also unlinks the
// backing file so stale segments do not accumulate.
func (w *Writer) Cleanup() error {
	if w.cleanedUp {
		return nil
	}
	w.cleanedUp = true
	err := w.seg.close()
	if w.opts.RemoveOnCleanup {
		if rmErr := os.Remove(w.path); rmErr != nil && err == nil && !os.IsNotExist(rmErr) {
			err = rmErr
		}
	}
	if err != nil {
		return &render.BackendError{Op: "shm cleanup", Err: err}
	}
	return nil
}

// FrameSequence exposes the published frame counter, mainly for tests
// and the debug surface. Odd values mean a write is in flight.
func (w *Writer) FrameSequence() uint64 {
	return atomic.LoadUint64(w.seg.sequence())
}

// beat refreshes the writer's liveness timestamp.
func (w *Writer) beat() {
	atomic.StoreInt64(w.seg.writerHeartbeat(), w.opts.now().UnixNano())
}

// checkReader surfaces a stale attached reader exactly once as a lost
// connection, then detaches it so a standalone runtime can continue.
func (w *Writer) checkReader() error {
	if atomic.LoadUint32(w.seg.readerAttached()) == 0 {
		w.lostReported = false
		return nil
	}
	last := atomic.LoadInt64(w.seg.readerHeartbeat())
	if last == 0 {
		return nil
	}
	if w.opts.now().Sub(time.Unix(0, last)) > w.opts.StaleAfter {
		if !w.lostReported {
			w.lostReported = true
			atomic.StoreUint32(w.seg.readerAttached(), 0)
			return render.ErrConnectionLost
		}
	}
	return nil
}

var _ render.Renderer = (*Writer)(nil)
