package shm

import (
	"encoding/binary"
	"sync/atomic"
	"unsafe"

	"github.com/frescoui/fresco/pkg/render"
)

// Event ring: fixed 64-byte slots, one producer (the host) and one
// consumer (the runtime). Each slot carries a published word; the
// producer fills the payload before publishing, the consumer clears the
// word after copying, so neither side ever waits on the other. A full
// ring drops the event at the producer rather than blocking.

const (
	slotOffPublished = 0 // uint32, atomic
	slotOffKind      = 4 // uint8
	slotOffFlags     = 5 // uint8
	slotOffLen       = 6 // uint16
	slotOffPayload   = 8
	slotPayloadCap   = slotSize - slotOffPayload

	kindKey    = 1
	kindMouse  = 2
	kindResize = 3
	kindFocus  = 4
	kindPaste  = 5

	flagMoreChunks = 1 << 0
)

func slotPublished(slot []byte) *uint32 {
	return (*uint32)(unsafe.Pointer(&slot[slotOffPublished]))
}

// pushSlot claims the next slot, fills it via fn, and publishes it.
// Reports false when the ring is full.
func (s *segment) pushSlot(fn func(slot []byte)) bool {
	head := atomic.LoadUint64(s.ringHead())
	slot := s.slot(head)
	if atomic.LoadUint32(slotPublished(slot)) != 0 {
		return false
	}
	for i := slotOffKind; i < slotSize; i++ {
		slot[i] = 0
	}
	fn(slot)
	// Publish strictly after the payload write so the consumer never
	// observes a half-filled slot.
	atomic.StoreUint32(slotPublished(slot), 1)
	atomic.StoreUint64(s.ringHead(), head+1)
	return true
}

// popSlot copies the next published slot via fn and releases it.
// Reports false when the ring is empty.
func (s *segment) popSlot(fn func(slot []byte)) bool {
	tail := atomic.LoadUint64(s.ringTail())
	slot := s.slot(tail)
	if atomic.LoadUint32(slotPublished(slot)) == 0 {
		return false
	}
	fn(slot)
	atomic.StoreUint32(slotPublished(slot), 0)
	atomic.StoreUint64(s.ringTail(), tail+1)
	return true
}

// pushEvent encodes one event into ring slots. Paste text spans as many
// slots as it needs, chained by a continuation flag. Reports false when
// the ring had no room for the whole event.
func (s *segment) pushEvent(ev render.Event) bool {
	switch e := ev.(type) {
	case render.KeyEvent:
		return s.pushSlot(func(slot []byte) {
			slot[slotOffKind] = kindKey
			binary.LittleEndian.PutUint16(slot[slotOffPayload:], uint16(e.Code))
			slot[slotOffPayload+2] = byte(e.Mods)
			binary.LittleEndian.PutUint32(slot[slotOffPayload+4:], uint32(e.Rune))
		})
	case render.MouseEvent:
		return s.pushSlot(func(slot []byte) {
			slot[slotOffKind] = kindMouse
			slot[slotOffPayload] = byte(e.Kind)
			slot[slotOffPayload+1] = byte(e.Mods)
			binary.LittleEndian.PutUint32(slot[slotOffPayload+4:], uint32(int32(e.X)))
			binary.LittleEndian.PutUint32(slot[slotOffPayload+8:], uint32(int32(e.Y)))
		})
	case render.ResizeEvent:
		return s.pushSlot(func(slot []byte) {
			slot[slotOffKind] = kindResize
			binary.LittleEndian.PutUint32(slot[slotOffPayload:], uint32(e.Width))
			binary.LittleEndian.PutUint32(slot[slotOffPayload+4:], uint32(e.Height))
		})
	case render.FocusEvent:
		return s.pushSlot(func(slot []byte) {
			slot[slotOffKind] = kindFocus
			if e.Gained {
				slot[slotOffPayload] = 1
			}
		})
	case render.PasteEvent:
		text := []byte(e.Text)
		for len(text) > 0 || e.Text == "" {
			chunk := text
			if len(chunk) > slotPayloadCap {
				chunk = chunk[:slotPayloadCap]
			}
			rest := text[len(chunk):]
			ok := s.pushSlot(func(slot []byte) {
				slot[slotOffKind] = kindPaste
				if len(rest) > 0 {
					slot[slotOffFlags] = flagMoreChunks
				}
				binary.LittleEndian.PutUint16(slot[slotOffLen:], uint16(len(chunk)))
				copy(slot[slotOffPayload:], chunk)
			})
			if !ok {
				return false
			}
			if e.Text == "" {
				return true
			}
			text = rest
		}
		return true
	}
	return false
}

// popEvent decodes the next event. Partial paste chains are carried in
// pastePartial across calls until the final chunk arrives.
func (s *segment) popEvent(pastePartial *[]byte) (render.Event, bool) {
	for {
		var (
			kind  byte
			flags byte
			n     uint16
			body  [slotPayloadCap]byte
		)
		ok := s.popSlot(func(slot []byte) {
			kind = slot[slotOffKind]
			flags = slot[slotOffFlags]
			n = binary.LittleEndian.Uint16(slot[slotOffLen:])
			copy(body[:], slot[slotOffPayload:])
		})
		if !ok {
			return nil, false
		}

		switch kind {
		case kindKey:
			return render.KeyEvent{
				Code: render.Key(binary.LittleEndian.Uint16(body[:])),
				Mods: render.Mod(body[2]),
				Rune: rune(binary.LittleEndian.Uint32(body[4:])),
			}, true
		case kindMouse:
			return render.MouseEvent{
				Kind: render.MouseKind(body[0]),
				Mods: render.Mod(body[1]),
				X:    int(int32(binary.LittleEndian.Uint32(body[4:]))),
				Y:    int(int32(binary.LittleEndian.Uint32(body[8:]))),
			}, true
		case kindResize:
			return render.ResizeEvent{
				Width:  int(binary.LittleEndian.Uint32(body[:])),
				Height: int(binary.LittleEndian.Uint32(body[4:])),
			}, true
		case kindFocus:
			return render.FocusEvent{Gained: body[0] == 1}, true
		case kindPaste:
			if int(n) > slotPayloadCap {
				n = slotPayloadCap
			}
			*pastePartial = append(*pastePartial, body[:n]...)
			if flags&flagMoreChunks != 0 {
				continue
			}
			text := string(*pastePartial)
			*pastePartial = (*pastePartial)[:0]
			return render.PasteEvent{Text: text}, true
		default:
			// Unknown slot kind from a newer peer; skip it.
			continue
		}
	}
}
