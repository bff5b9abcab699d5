// Package cellbuf provides the styled cell grid that every renderer
// consumes: colors, styles, cells, rectangles, and the frame buffer
// itself. A Buffer is built fresh for each frame, handed to a renderer's
// Draw, and never shared between goroutines.
package cellbuf

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Buffer is a rectangular grid of cells stored row-major. Coordinates are
// absolute: a buffer with area (x:2, y:3, w:10, h:4) answers Get(2, 3) for
// its top-left cell. All cells outside the area are rejected, not clamped.
type Buffer struct {
	area  Rect
	cells []Cell
}

// Patch records one changed cell in a frame diff.
type Patch struct {
	X    int
	Y    int
	Cell Cell
}

// New allocates a buffer of empty cells covering area. A zero-area buffer
// is valid and renders nothing.
func New(area Rect) *Buffer {
	cells := make([]Cell, area.Area())
	for i := range cells {
		cells[i] = EmptyCell()
	}
	return &Buffer{area: area, cells: cells}
}

// Area returns the buffer's rectangle.
func (b *Buffer) Area() Rect {
	return b.area
}

// Len returns the number of cells.
func (b *Buffer) Len() int {
	return len(b.cells)
}

func (b *Buffer) index(x, y int) int {
	return (y-b.area.Y)*b.area.Width + (x - b.area.X)
}

// Get returns the cell at (x, y), reporting false when the point lies
// outside the buffer's area.
func (b *Buffer) Get(x, y int) (Cell, bool) {
	if !b.area.Contains(x, y) {
		return Cell{}, false
	}
	return b.cells[b.index(x, y)], true
}

// Set writes a cell at (x, y), reporting false for out-of-area writes.
// An empty glyph is normalized to a space.
func (b *Buffer) Set(x, y int, c Cell) bool {
	if !b.area.Contains(x, y) {
		return false
	}
	if c.Glyph == "" {
		c.Glyph = " "
	}
	b.cells[b.index(x, y)] = c
	return true
}

// SetString writes text starting at (x, y), one grapheme cluster per cell,
// clipping at the right edge. Wide glyphs occupy their display width; the
// shadowed cells are reset to spaces carrying the same style. The style is
// merged onto whatever each cell already holds. An out-of-area start is a
// no-op. Returns the column after the last written glyph.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	if y < b.area.Y || y >= b.area.Bottom() || x >= b.area.Right() {
		return x
	}
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			continue
		}
		if x < b.area.X {
			x += w
			continue
		}
		if x+w > b.area.Right() {
			break
		}
		i := b.index(x, y)
		b.cells[i].Glyph = cluster
		b.cells[i].Style = b.cells[i].Style.Patch(style)
		for dx := 1; dx < w; dx++ {
			b.cells[i+dx].Glyph = " "
			b.cells[i+dx].Style = b.cells[i+dx].Style.Patch(style)
		}
		x += w
	}
	return x
}

// SetStyle merges style onto every cell inside r ∩ area.
func (b *Buffer) SetStyle(r Rect, style Style) {
	in := r.Intersection(b.area)
	for y := in.Top(); y < in.Bottom(); y++ {
		for x := in.Left(); x < in.Right(); x++ {
			i := b.index(x, y)
			b.cells[i].Style = b.cells[i].Style.Patch(style)
		}
	}
}

// Fill sets every cell inside r ∩ area to the given glyph and style.
func (b *Buffer) Fill(r Rect, glyph string, style Style) {
	if glyph == "" {
		glyph = " "
	}
	in := r.Intersection(b.area)
	for y := in.Top(); y < in.Bottom(); y++ {
		for x := in.Left(); x < in.Right(); x++ {
			b.cells[b.index(x, y)] = Cell{Glyph: glyph, Style: style}
		}
	}
}

// Merge copies other's cells into b shifted by (dx, dy), clipping to b's
// area. Used to composite a sub-render (such as an overlay) onto a parent
// frame.
func (b *Buffer) Merge(other *Buffer, dx, dy int) {
	oa := other.area
	for y := oa.Top(); y < oa.Bottom(); y++ {
		ty := y + dy
		if ty < b.area.Y || ty >= b.area.Bottom() {
			continue
		}
		for x := oa.Left(); x < oa.Right(); x++ {
			tx := x + dx
			if tx < b.area.X || tx >= b.area.Right() {
				continue
			}
			b.cells[b.index(tx, ty)] = other.cells[other.index(x, y)]
		}
	}
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Buffer{area: b.area, cells: cells}
}

// Equal reports whether two buffers have identical areas and cells.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil || b.area != other.area {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Diff returns the cells that changed relative to prev in row-major order.
// When prev is nil or covers a different area, every cell is reported.
// Cells shadowed by a preceding wide glyph are skipped; the glyph cell
// itself represents the run.
func (b *Buffer) Diff(prev *Buffer) []Patch {
	full := prev == nil || prev.area != b.area
	var patches []Patch
	for y := b.area.Top(); y < b.area.Bottom(); y++ {
		skip := 0
		for x := b.area.Left(); x < b.area.Right(); x++ {
			i := b.index(x, y)
			c := b.cells[i]
			if skip > 0 {
				skip--
				continue
			}
			if w := c.Width(); w > 1 {
				skip = w - 1
			}
			if full || c != prev.cells[i] {
				patches = append(patches, Patch{X: x, Y: y, Cell: c})
			}
		}
	}
	return patches
}

// Lines renders the buffer as plain text rows, one string per row, styles
// discarded. Shadow cells after a wide glyph are omitted so each line's
// display width matches the buffer width.
func (b *Buffer) Lines() []string {
	lines := make([]string, 0, b.area.Height)
	for y := b.area.Top(); y < b.area.Bottom(); y++ {
		var sb strings.Builder
		skip := 0
		for x := b.area.Left(); x < b.area.Right(); x++ {
			c := b.cells[b.index(x, y)]
			if skip > 0 {
				skip--
				continue
			}
			if w := c.Width(); w > 1 {
				skip = w - 1
			}
			sb.WriteString(c.Glyph)
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// String renders the buffer as newline-joined plain text.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}
