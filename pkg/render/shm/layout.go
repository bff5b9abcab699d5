// Package shm implements the cross-process renderer: a writer maps a
// shared-memory segment and publishes frames through a seqlock, and a
// host process reads them without ever blocking the writer or being
// blocked by it. Input events travel host-to-runtime through a
// single-producer single-consumer ring in the same segment.
//
// Byte layout is little-endian and version-tagged; a reader built
// against a different layout rejects the segment instead of misreading
// it. The frame region is guarded by a sequence counter: the writer
// makes it odd before touching the grid and even after, both with
// release semantics, so a reader that sees the same even value before
// and after its copy holds a consistent frame.
package shm

import (
	"encoding/binary"

	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// Segment identification.
const (
	magic         = "FRSC"
	layoutVersion = 1
)

// Fixed byte offsets into the segment. The sequence word and ring words
// sit at 8-byte alignment so cross-process atomics are valid.
const (
	offMagic           = 0  // 4 bytes
	offVersion         = 4  // uint32
	offCellStride      = 8  // uint32
	offMaxWidth        = 12 // uint32
	offMaxHeight       = 16 // uint32
	offSequence        = 24 // uint64, seqlock
	offWidth           = 32 // uint32, current frame dims
	offHeight          = 36 // uint32
	offWriterHeartbeat = 40 // int64, unix nanos
	offReaderHeartbeat = 48 // int64, unix nanos
	offReaderAttached  = 56 // uint32
	offRingHead        = 64 // uint64, producer cursor
	offRingTail        = 72 // uint64, consumer cursor
	headerSize         = 128

	ringSlots    = 128
	slotSize     = 64
	ringBytes    = ringSlots * slotSize
	offRingSlots = headerSize
	offGrid      = headerSize + ringBytes
)

// Cell encoding: 48 bytes per cell, fixed stride.
const (
	cellStride   = 48
	cellGlyphCap = 16 // utf-8 bytes; longest grapheme clusters fit

	cellOffGlyph    = 0  // [16]byte
	cellOffGlyphLen = 16 // uint8
	cellOffFGMode   = 17 // uint8
	cellOffBGMode   = 18 // uint8
	cellOffMods     = 20 // uint16
	cellOffFGValue  = 24 // uint32
	cellOffBGValue  = 28 // uint32
)

// segmentSize returns the full byte length of a segment with the given
// grid capacity.
func segmentSize(maxWidth, maxHeight int) int {
	return offGrid + maxWidth*maxHeight*cellStride
}

// encodeCell writes one cell at dst, which must be cellStride bytes.
// Glyphs longer than the fixed capacity degrade to a space rather than
// a torn cluster.
func encodeCell(dst []byte, c cellbuf.Cell) {
	glyph := c.Glyph
	if len(glyph) == 0 || len(glyph) > cellGlyphCap {
		glyph = " "
	}
	copy(dst[cellOffGlyph:cellOffGlyph+cellGlyphCap], glyph)
	for i := len(glyph); i < cellGlyphCap; i++ {
		dst[cellOffGlyph+i] = 0
	}
	dst[cellOffGlyphLen] = byte(len(glyph))
	dst[cellOffFGMode] = byte(c.Style.FG.Mode)
	dst[cellOffBGMode] = byte(c.Style.BG.Mode)
	binary.LittleEndian.PutUint16(dst[cellOffMods:], uint16(c.Style.Mods))
	binary.LittleEndian.PutUint32(dst[cellOffFGValue:], c.Style.FG.Value)
	binary.LittleEndian.PutUint32(dst[cellOffBGValue:], c.Style.BG.Value)
}

// decodeCell reads one cell from src, which must be cellStride bytes.
func decodeCell(src []byte) cellbuf.Cell {
	glyph := " "
	if n := int(src[cellOffGlyphLen]); n >= 1 && n <= cellGlyphCap {
		glyph = string(src[cellOffGlyph : cellOffGlyph+n])
	}
	return cellbuf.Cell{
		Glyph: glyph,
		Style: cellbuf.Style{
			FG: cellbuf.Color{
				Mode:  cellbuf.ColorMode(src[cellOffFGMode]),
				Value: binary.LittleEndian.Uint32(src[cellOffFGValue:]),
			},
			BG: cellbuf.Color{
				Mode:  cellbuf.ColorMode(src[cellOffBGMode]),
				Value: binary.LittleEndian.Uint32(src[cellOffBGValue:]),
			},
			Mods: cellbuf.Modifier(binary.LittleEndian.Uint16(src[cellOffMods:])),
		},
	}
}
