package widgets

import (
	"strings"
	"testing"

	"github.com/frescoui/fresco/pkg/ui/cellbuf"
	"github.com/frescoui/fresco/pkg/ui/symbols"
)

func TestParagraphWrap(t *testing.T) {
	area := cellbuf.NewRect(0, 0, 10, 4)
	buf := cellbuf.New(area)
	NewParagraph("alpha beta gamma").Render(area, buf)
	lines := buf.Lines()
	if !strings.HasPrefix(lines[0], "alpha beta") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "gamma") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestParagraphHardSplitsLongWord(t *testing.T) {
	area := cellbuf.NewRect(0, 0, 4, 4)
	buf := cellbuf.New(area)
	NewParagraph("abcdefghij").Render(area, buf)
	lines := buf.Lines()
	if lines[0] != "abcd" || lines[1] != "efgh" || !strings.HasPrefix(lines[2], "ij") {
		t.Errorf("lines = %q", lines[:3])
	}
}

func TestParagraphAlignRight(t *testing.T) {
	area := cellbuf.NewRect(0, 0, 10, 1)
	buf := cellbuf.New(area)
	Paragraph{Text: "hi", Align: AlignRight}.Render(area, buf)
	if line := buf.Lines()[0]; line != "        hi" {
		t.Errorf("line = %q", line)
	}
}

func TestGaugeFillProportion(t *testing.T) {
	cases := []struct {
		name   string
		ratio  float64
		filled int
	}{
		{"empty", 0, 0},
		{"half", 0.5, 10},
		{"full", 1, 20},
		{"clamped high", 1.7, 20},
		{"clamped low", -0.3, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			area := cellbuf.NewRect(0, 0, 20, 1)
			buf := cellbuf.New(area)
			Gauge{Ratio: tc.ratio}.Render(area, buf)
			filled := 0
			for x := 0; x < 20; x++ {
				c, _ := buf.Get(x, 0)
				if c.Glyph == symbols.FullBlock {
					filled++
				}
			}
			if filled != tc.filled {
				t.Errorf("filled = %d, want %d", filled, tc.filled)
			}
		})
	}
}

func TestGaugeThresholdRecolors(t *testing.T) {
	hot := cellbuf.NewStyle().WithFG(cellbuf.Red)
	g := Gauge{
		Ratio:      0.9,
		FillStyle:  cellbuf.NewStyle().WithFG(cellbuf.Green),
		Thresholds: []Threshold{{Above: 0.8, Style: hot}},
	}
	area := cellbuf.NewRect(0, 0, 10, 1)
	buf := cellbuf.New(area)
	g.Render(area, buf)
	c, _ := buf.Get(0, 0)
	if c.Style.FG != cellbuf.Red {
		t.Errorf("fill FG = %v, want red past threshold", c.Style.FG)
	}
}

func TestListSelectionScrollsIntoView(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f"}
	l := NewList(items...)
	state := &ListState{Selected: 5}
	area := cellbuf.NewRect(0, 0, 10, 3)
	buf := cellbuf.New(area)
	l.RenderStateful(area, buf, state)

	if state.Offset != 3 {
		t.Errorf("offset = %d, want 3", state.Offset)
	}
	last := buf.Lines()[2]
	if !strings.Contains(last, "f") || !strings.Contains(last, strings.TrimSpace(symbols.HighlightSymbol)) {
		t.Errorf("last row %q missing selected item and marker", last)
	}
}

func TestListStateClamping(t *testing.T) {
	var s ListState
	s.Next(3)
	s.Next(3)
	s.Next(3)
	s.Next(3)
	if s.Selected != 2 {
		t.Errorf("selected = %d, want clamped 2", s.Selected)
	}
	s.Prev(3)
	s.Prev(3)
	s.Prev(3)
	if s.Selected != 0 {
		t.Errorf("selected = %d, want clamped 0", s.Selected)
	}
}

func TestSparklineScalesToMax(t *testing.T) {
	area := cellbuf.NewRect(0, 0, 4, 1)
	buf := cellbuf.New(area)
	NewSparkline(0, 4, 8, 2).Render(area, buf)

	want := []string{" ", symbols.Bars[4], symbols.Bars[8], symbols.Bars[2]}
	for x, w := range want {
		c, _ := buf.Get(x, 0)
		if c.Glyph != w {
			t.Errorf("column %d = %q, want %q", x, c.Glyph, w)
		}
	}
}

func TestSparklineKeepsNewestSamples(t *testing.T) {
	area := cellbuf.NewRect(0, 0, 2, 1)
	buf := cellbuf.New(area)
	Sparkline{Data: []float64{8, 8, 0, 8}, Max: 8}.Render(area, buf)
	c0, _ := buf.Get(0, 0)
	c1, _ := buf.Get(1, 0)
	if c0.Glyph != " " || c1.Glyph != symbols.Bars[8] {
		t.Errorf("columns = %q %q, want newest two samples", c0.Glyph, c1.Glyph)
	}
}

func TestTabsSelectionStyled(t *testing.T) {
	area := cellbuf.NewRect(0, 0, 30, 1)
	buf := cellbuf.New(area)
	tabs := NewTabs("one", "two", "three")
	tabs.Selected = 1
	tabs.SelectedStyle = cellbuf.NewStyle().WithBold()
	tabs.Render(area, buf)

	line := buf.Lines()[0]
	col := strings.Index(line, "two")
	if col < 0 {
		t.Fatalf("line %q missing tab title", line)
	}
	c, _ := buf.Get(col, 0)
	if !c.Style.Mods.Contains(cellbuf.ModBold) {
		t.Error("selected tab not bold")
	}
	other, _ := buf.Get(strings.Index(line, "one"), 0)
	if other.Style.Mods.Contains(cellbuf.ModBold) {
		t.Error("unselected tab bold")
	}
}

func TestClearResetsArea(t *testing.T) {
	area := cellbuf.NewRect(0, 0, 6, 3)
	buf := cellbuf.New(area)
	buf.SetString(0, 1, "hello", cellbuf.NewStyle().WithBold())
	Clear{}.Render(cellbuf.NewRect(0, 0, 6, 3), buf)
	c, _ := buf.Get(0, 1)
	if c != cellbuf.EmptyCell() {
		t.Errorf("cell = %+v, want empty", c)
	}
}
