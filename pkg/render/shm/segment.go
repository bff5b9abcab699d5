package shm

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/frescoui/fresco/pkg/render"
)

// segment is one mapping of the shared file. Writer and reader each
// hold their own mapping of the same pages.
type segment struct {
	file *os.File
	data []byte
}

// createSegment makes (or truncates) the backing file and maps it.
func createSegment(path string, maxWidth, maxHeight int) (*segment, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, &render.BackendError{Op: "shm create", Err: err}
	}
	size := segmentSize(maxWidth, maxHeight)
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, &render.BackendError{Op: "shm truncate", Err: err}
	}
	s, err := mapFile(f, size)
	if err != nil {
		f.Close()
		return nil, err
	}

	copy(s.data[offMagic:], magic)
	binary.LittleEndian.PutUint32(s.data[offVersion:], layoutVersion)
	binary.LittleEndian.PutUint32(s.data[offCellStride:], cellStride)
	binary.LittleEndian.PutUint32(s.data[offMaxWidth:], uint32(maxWidth))
	binary.LittleEndian.PutUint32(s.data[offMaxHeight:], uint32(maxHeight))
	atomic.StoreUint64(s.sequence(), 0)
	atomic.StoreUint64(s.ringHead(), 0)
	atomic.StoreUint64(s.ringTail(), 0)
	atomic.StoreUint32(s.readerAttached(), 0)
	return s, nil
}

// openSegment maps an existing segment and validates its layout tag.
func openSegment(path string) (*segment, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, &render.BackendError{Op: "shm open", Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &render.BackendError{Op: "shm stat", Err: err}
	}
	if info.Size() < offGrid {
		f.Close()
		return nil, &render.BackendError{Op: "shm open", Err: fmt.Errorf("segment too small: %d bytes", info.Size())}
	}
	s, err := mapFile(f, int(info.Size()))
	if err != nil {
		f.Close()
		return nil, err
	}

	if string(s.data[offMagic:offMagic+4]) != magic {
		s.close()
		return nil, &render.BackendError{Op: "shm open", Err: fmt.Errorf("bad magic %q", s.data[offMagic:offMagic+4])}
	}
	if v := binary.LittleEndian.Uint32(s.data[offVersion:]); v != layoutVersion {
		s.close()
		return nil, &render.BackendError{Op: "shm open", Err: fmt.Errorf("layout version %d, want %d", v, layoutVersion)}
	}
	if stride := binary.LittleEndian.Uint32(s.data[offCellStride:]); stride != cellStride {
		s.close()
		return nil, &render.BackendError{Op: "shm open", Err: fmt.Errorf("cell stride %d, want %d", stride, cellStride)}
	}
	maxW, maxH := s.capacity()
	if want := segmentSize(maxW, maxH); int(info.Size()) < want {
		s.close()
		return nil, &render.BackendError{Op: "shm open", Err: fmt.Errorf("segment %d bytes, need %d", info.Size(), want)}
	}
	return s, nil
}

func mapFile(f *os.File, size int) (*segment, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, &render.BackendError{Op: "shm mmap", Err: err}
	}
	return &segment{file: f, data: data}, nil
}

func (s *segment) close() error {
	var firstErr error
	if s.data != nil {
		if err := unix.Munmap(s.data); err != nil {
			firstErr = err
		}
		s.data = nil
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.file = nil
	}
	return firstErr
}

// Word accessors. The offsets are 8-byte aligned and the mapping is
// page aligned, so these pointers satisfy the atomic package's
// alignment requirement.

func (s *segment) sequence() *uint64 {
	return (*uint64)(unsafe.Pointer(&s.data[offSequence]))
}

func (s *segment) ringHead() *uint64 {
	return (*uint64)(unsafe.Pointer(&s.data[offRingHead]))
}

func (s *segment) ringTail() *uint64 {
	return (*uint64)(unsafe.Pointer(&s.data[offRingTail]))
}

func (s *segment) writerHeartbeat() *int64 {
	return (*int64)(unsafe.Pointer(&s.data[offWriterHeartbeat]))
}

func (s *segment) readerHeartbeat() *int64 {
	return (*int64)(unsafe.Pointer(&s.data[offReaderHeartbeat]))
}

func (s *segment) readerAttached() *uint32 {
	return (*uint32)(unsafe.Pointer(&s.data[offReaderAttached]))
}

func (s *segment) capacity() (maxWidth, maxHeight int) {
	return int(binary.LittleEndian.Uint32(s.data[offMaxWidth:])),
		int(binary.LittleEndian.Uint32(s.data[offMaxHeight:]))
}

func (s *segment) slot(i uint64) []byte {
	off := offRingSlots + int(i%ringSlots)*slotSize
	return s.data[off : off+slotSize]
}

func (s *segment) grid() []byte {
	return s.data[offGrid:]
}
