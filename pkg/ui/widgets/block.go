package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/frescoui/fresco/pkg/ui/cellbuf"
	"github.com/frescoui/fresco/pkg/ui/symbols"
)

// Borders selects which edges of a Block are drawn.
type Borders uint8

const (
	BorderTop Borders = 1 << iota
	BorderRight
	BorderBottom
	BorderLeft

	BorderNone Borders = 0
	BorderAll          = BorderTop | BorderRight | BorderBottom | BorderLeft
)

// Padding is the inset between a Block's border and its inner area.
type Padding struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// PaddingAll pads every side by n cells.
func PaddingAll(n int) Padding {
	return Padding{Top: n, Right: n, Bottom: n, Left: n}
}

// Block is the bordered container every other widget typically renders
// inside. It draws its border and title, and Inner reports the area left
// for content.
type Block struct {
	Borders     Borders
	BorderSet   symbols.LineSet
	BorderStyle cellbuf.Style
	Title       string
	TitleAlign  Alignment
	TitleStyle  cellbuf.Style
	Padding     Padding
	Style       cellbuf.Style
}

// NewBlock returns a block with all rounded borders and no padding.
func NewBlock() Block {
	return Block{Borders: BorderAll, BorderSet: symbols.Rounded}
}

// WithTitle sets the title shown on the top border.
func (b Block) WithTitle(title string) Block {
	b.Title = title
	return b
}

// WithPadding sets the inner padding.
func (b Block) WithPadding(p Padding) Block {
	b.Padding = p
	return b
}

// Inner returns the content area inside the borders and padding. A block
// too small for its chrome yields an empty rect.
func (b Block) Inner(area cellbuf.Rect) cellbuf.Rect {
	x, y := area.X, area.Y
	w, h := area.Width, area.Height
	if b.Borders&BorderLeft != 0 {
		x++
		w--
	}
	if b.Borders&BorderTop != 0 {
		y++
		h--
	}
	if b.Borders&BorderRight != 0 {
		w--
	}
	if b.Borders&BorderBottom != 0 {
		h--
	}
	x += b.Padding.Left
	y += b.Padding.Top
	w -= b.Padding.Left + b.Padding.Right
	h -= b.Padding.Top + b.Padding.Bottom
	return cellbuf.NewRect(x, y, w, h)
}

// Render draws the block's background, borders, and title.
func (b Block) Render(area cellbuf.Rect, buf *cellbuf.Buffer) {
	if area.IsEmpty() {
		return
	}
	if b.Style != (cellbuf.Style{}) {
		buf.SetStyle(area, b.Style)
	}

	set := b.BorderSet
	if set == (symbols.LineSet{}) {
		set = symbols.Rounded
	}

	left, right := area.Left(), area.Right()-1
	top, bottom := area.Top(), area.Bottom()-1

	if b.Borders&BorderTop != 0 {
		for x := left; x <= right; x++ {
			buf.Set(x, top, cellbuf.Cell{Glyph: set.Horizontal, Style: b.BorderStyle})
		}
	}
	if b.Borders&BorderBottom != 0 {
		for x := left; x <= right; x++ {
			buf.Set(x, bottom, cellbuf.Cell{Glyph: set.Horizontal, Style: b.BorderStyle})
		}
	}
	if b.Borders&BorderLeft != 0 {
		for y := top; y <= bottom; y++ {
			buf.Set(left, y, cellbuf.Cell{Glyph: set.Vertical, Style: b.BorderStyle})
		}
	}
	if b.Borders&BorderRight != 0 {
		for y := top; y <= bottom; y++ {
			buf.Set(right, y, cellbuf.Cell{Glyph: set.Vertical, Style: b.BorderStyle})
		}
	}
	if b.Borders.contains(BorderTop | BorderLeft) {
		buf.Set(left, top, cellbuf.Cell{Glyph: set.TopLeft, Style: b.BorderStyle})
	}
	if b.Borders.contains(BorderTop | BorderRight) {
		buf.Set(right, top, cellbuf.Cell{Glyph: set.TopRight, Style: b.BorderStyle})
	}
	if b.Borders.contains(BorderBottom | BorderLeft) {
		buf.Set(left, bottom, cellbuf.Cell{Glyph: set.BottomLeft, Style: b.BorderStyle})
	}
	if b.Borders.contains(BorderBottom | BorderRight) {
		buf.Set(right, bottom, cellbuf.Cell{Glyph: set.BottomRight, Style: b.BorderStyle})
	}

	if b.Title != "" && b.Borders&BorderTop != 0 && area.Width > 2 {
		span := area.Width - 2
		title := truncate(b.Title, span)
		x := left + 1 + alignOffset(b.TitleAlign, span, runewidth.StringWidth(title))
		buf.SetString(x, top, title, b.TitleStyle)
	}
}

func (b Borders) contains(mask Borders) bool {
	return b&mask == mask
}
