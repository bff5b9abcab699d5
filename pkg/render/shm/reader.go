package shm

import (
	"encoding/binary"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/frescoui/fresco/pkg/render"
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// Reader is the host-process side of the segment: it copies out
// published frames without taking any lock and feeds input events back
// through the ring.
type Reader struct {
	seg      *segment
	lastSeen uint64
	now      func() time.Time
}

// OpenReader maps an existing segment, validating its magic, layout
// version, and cell stride, and marks the reader attached.
func OpenReader(path string) (*Reader, error) {
	seg, err := openSegment(path)
	if err != nil {
		return nil, err
	}
	r := &Reader{seg: seg, now: time.Now}
	atomic.StoreInt64(seg.readerHeartbeat(), r.now().UnixNano())
	atomic.StoreUint32(seg.readerAttached(), 1)
	return r, nil
}

// Beat refreshes the reader's liveness timestamp. The host loop calls
// it at least as often as the writer's staleness bound.
func (r *Reader) Beat() {
	atomic.StoreInt64(r.seg.readerHeartbeat(), r.now().UnixNano())
}

// WriterAlive reports whether the writer's heartbeat is fresher than
// staleAfter.
func (r *Reader) WriterAlive(staleAfter time.Duration) bool {
	last := atomic.LoadInt64(r.seg.writerHeartbeat())
	if last == 0 {
		return false
	}
	return r.now().Sub(time.Unix(0, last)) <= staleAfter
}

// Poll returns the latest frame when its sequence differs from the last
// one this reader saw. It never blocks the writer: an in-flight write
// (odd sequence, or a sequence change during the copy) just retries.
func (r *Reader) Poll() (*cellbuf.Buffer, uint64, bool) {
	seq := atomic.LoadUint64(r.seg.sequence())
	if seq == r.lastSeen || seq == 0 {
		return nil, r.lastSeen, false
	}
	frame, seq := r.snapshot()
	r.lastSeen = seq
	return frame, seq, true
}

// Frame copies out the current frame regardless of whether it is new.
func (r *Reader) Frame() (*cellbuf.Buffer, uint64) {
	frame, seq := r.snapshot()
	r.lastSeen = seq
	return frame, seq
}

// snapshot performs the seqlock read: sample an even sequence, copy the
// grid, and keep retrying until the sequence is unchanged across the
// copy. The writer is never waited on; at worst the copy is repeated.
func (r *Reader) snapshot() (*cellbuf.Buffer, uint64) {
	maxW, maxH := r.seg.capacity()
	grid := r.seg.grid()
	for {
		s1 := atomic.LoadUint64(r.seg.sequence())
		if s1&1 != 0 {
			runtime.Gosched()
			continue
		}
		width := int(binary.LittleEndian.Uint32(r.seg.data[offWidth:]))
		height := int(binary.LittleEndian.Uint32(r.seg.data[offHeight:]))
		// A torn dimension read is caught by the re-check below; the
		// clamp just keeps the copy inside the mapping meanwhile.
		width = min(width, maxW)
		height = min(height, maxH)
		buf := cellbuf.New(cellbuf.NewRect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				off := (y*maxW + x) * cellStride
				buf.Set(x, y, decodeCell(grid[off:off+cellStride]))
			}
		}
		s2 := atomic.LoadUint64(r.seg.sequence())
		if s1 == s2 {
			return buf, s2
		}
	}
}

// LastSequence returns the sequence of the last frame this reader
// consumed.
func (r *Reader) LastSequence() uint64 {
	return r.lastSeen
}

// SendEvent pushes an input event toward the runtime. A full ring drops
// the event and reports false rather than blocking.
func (r *Reader) SendEvent(ev render.Event) bool {
	return r.seg.pushEvent(ev)
}

// Close detaches the reader and unmaps the segment.
func (r *Reader) Close() error {
	atomic.StoreUint32(r.seg.readerAttached(), 0)
	return r.seg.close()
}
