package widgets

import (
	"strings"
	"testing"

	"github.com/frescoui/fresco/pkg/ui/cellbuf"
	"github.com/frescoui/fresco/pkg/ui/symbols"
)

func TestBlockRoundedBorderAndInner(t *testing.T) {
	area := cellbuf.NewRect(0, 0, 20, 10)
	buf := cellbuf.New(area)
	b := NewBlock().WithTitle("Test").WithPadding(PaddingAll(1))
	b.Render(area, buf)

	corner, _ := buf.Get(0, 0)
	if corner.Glyph != symbols.Rounded.TopLeft {
		t.Errorf("top-left = %q, want %q", corner.Glyph, symbols.Rounded.TopLeft)
	}
	if got, want := b.Inner(area), cellbuf.NewRect(2, 2, 16, 6); got != want {
		t.Errorf("Inner = %v, want %v", got, want)
	}
	if !strings.Contains(buf.Lines()[0], "Test") {
		t.Errorf("top border %q missing title", buf.Lines()[0])
	}
}

func TestBlockCorners(t *testing.T) {
	area := cellbuf.NewRect(0, 0, 6, 4)
	buf := cellbuf.New(area)
	b := NewBlock()
	b.BorderSet = symbols.Plain
	b.Render(area, buf)

	cases := []struct {
		x, y int
		want string
	}{
		{0, 0, "┌"}, {5, 0, "┐"}, {0, 3, "└"}, {5, 3, "┘"},
		{2, 0, "─"}, {0, 2, "│"},
	}
	for _, tc := range cases {
		c, _ := buf.Get(tc.x, tc.y)
		if c.Glyph != tc.want {
			t.Errorf("(%d,%d) = %q, want %q", tc.x, tc.y, c.Glyph, tc.want)
		}
	}
}

func TestBlockPartialBorders(t *testing.T) {
	area := cellbuf.NewRect(0, 0, 8, 4)
	buf := cellbuf.New(area)
	b := Block{Borders: BorderTop | BorderBottom, BorderSet: symbols.Plain}
	b.Render(area, buf)

	top, _ := buf.Get(0, 0)
	if top.Glyph != "─" {
		t.Errorf("top edge without left border = %q, want horizontal", top.Glyph)
	}
	side, _ := buf.Get(0, 1)
	if side.Glyph != " " {
		t.Errorf("left edge = %q, want untouched space", side.Glyph)
	}
	if got, want := b.Inner(area), cellbuf.NewRect(0, 1, 8, 2); got != want {
		t.Errorf("Inner = %v, want %v", got, want)
	}
}

func TestBlockTooSmallForChrome(t *testing.T) {
	b := NewBlock().WithPadding(PaddingAll(2))
	if inner := b.Inner(cellbuf.NewRect(0, 0, 3, 3)); !inner.IsEmpty() {
		t.Errorf("Inner of tiny block = %v, want empty", inner)
	}
	// Rendering into a tiny area must not panic.
	buf := cellbuf.New(cellbuf.NewRect(0, 0, 1, 1))
	b.Render(cellbuf.NewRect(0, 0, 1, 1), buf)
}

func TestBlockTitleTruncated(t *testing.T) {
	area := cellbuf.NewRect(0, 0, 8, 3)
	buf := cellbuf.New(area)
	NewBlock().WithTitle("much too long for this block").Render(area, buf)
	line := buf.Lines()[0]
	if !strings.Contains(line, "…") {
		t.Errorf("top border %q missing truncation marker", line)
	}
}
