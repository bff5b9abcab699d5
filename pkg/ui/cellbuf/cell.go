package cellbuf

import (
	"github.com/mattn/go-runewidth"
)

// Cell is one character position: a single extended grapheme cluster plus
// its style. The glyph is never empty; an "empty" cell holds a space.
type Cell struct {
	Glyph string
	Style Style
}

// EmptyCell returns a space with no styling.
func EmptyCell() Cell {
	return Cell{Glyph: " "}
}

// NewCell builds a cell, substituting a space for an empty glyph so the
// non-empty invariant holds.
func NewCell(glyph string, style Style) Cell {
	if glyph == "" {
		glyph = " "
	}
	return Cell{Glyph: glyph, Style: style}
}

// Width returns the number of terminal columns the glyph occupies.
func (c Cell) Width() int {
	w := runewidth.StringWidth(c.Glyph)
	if w < 1 {
		w = 1
	}
	return w
}

// IsEmpty reports whether the cell is an unstyled space.
func (c Cell) IsEmpty() bool {
	return c.Glyph == " " && c.Style == (Style{})
}
