package cellbuf

import (
	"testing"
)

func TestNewAllocatesWidthTimesHeight(t *testing.T) {
	cases := []struct {
		name string
		area Rect
	}{
		{"standard", NewRect(0, 0, 80, 24)},
		{"offset", NewRect(5, 3, 10, 4)},
		{"single", NewRect(0, 0, 1, 1)},
		{"zero width", NewRect(0, 0, 0, 10)},
		{"zero height", NewRect(0, 0, 10, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(tc.area)
			if b.Len() != tc.area.Width*tc.area.Height {
				t.Errorf("len = %d, want %d", b.Len(), tc.area.Width*tc.area.Height)
			}
			for y := tc.area.Top(); y < tc.area.Bottom(); y++ {
				for x := tc.area.Left(); x < tc.area.Right(); x++ {
					c, ok := b.Get(x, y)
					if !ok {
						t.Fatalf("Get(%d,%d) not ok inside area", x, y)
					}
					if c.Glyph != " " {
						t.Errorf("fresh cell at (%d,%d) = %q, want space", x, y, c.Glyph)
					}
				}
			}
		})
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	b := New(NewRect(0, 0, 10, 5))
	want := Cell{Glyph: "x", Style: NewStyle().WithFG(Red).WithBold()}
	if !b.Set(3, 2, want) {
		t.Fatal("Set inside area returned false")
	}
	got, ok := b.Get(3, 2)
	if !ok {
		t.Fatal("Get inside area returned false")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestOutOfAreaAccessRejected(t *testing.T) {
	b := New(NewRect(2, 2, 4, 3))
	points := [][2]int{{0, 0}, {1, 2}, {6, 2}, {2, 1}, {2, 5}, {-1, -1}, {100, 100}}
	for _, p := range points {
		if _, ok := b.Get(p[0], p[1]); ok {
			t.Errorf("Get(%d,%d) ok outside area", p[0], p[1])
		}
		if b.Set(p[0], p[1], EmptyCell()) {
			t.Errorf("Set(%d,%d) ok outside area", p[0], p[1])
		}
	}
}

func TestSetNormalizesEmptyGlyph(t *testing.T) {
	b := New(NewRect(0, 0, 2, 1))
	b.Set(0, 0, Cell{})
	c, _ := b.Get(0, 0)
	if c.Glyph != " " {
		t.Errorf("glyph = %q, want space", c.Glyph)
	}
}

func TestSetStringClipsAtRightEdge(t *testing.T) {
	b := New(NewRect(0, 0, 5, 1))
	b.SetString(2, 0, "hello", Style{})
	if got := b.Lines()[0]; got != "  hel" {
		t.Errorf("line = %q, want %q", got, "  hel")
	}
}

func TestSetStringOutOfAreaStartIsNoop(t *testing.T) {
	b := New(NewRect(0, 0, 5, 2))
	b.SetString(0, 5, "below", Style{})
	b.SetString(9, 0, "right", Style{})
	for y := 0; y < 2; y++ {
		for x := 0; x < 5; x++ {
			c, _ := b.Get(x, y)
			if c.Glyph != " " {
				t.Fatalf("cell (%d,%d) mutated to %q", x, y, c.Glyph)
			}
		}
	}
}

func TestSetStringWideGlyphShadow(t *testing.T) {
	b := New(NewRect(0, 0, 6, 1))
	b.SetString(0, 0, "日a", Style{})
	c0, _ := b.Get(0, 0)
	if c0.Glyph != "日" {
		t.Errorf("cell 0 = %q, want 日", c0.Glyph)
	}
	c1, _ := b.Get(1, 0)
	if c1.Glyph != " " {
		t.Errorf("shadow cell = %q, want space", c1.Glyph)
	}
	c2, _ := b.Get(2, 0)
	if c2.Glyph != "a" {
		t.Errorf("cell 2 = %q, want a", c2.Glyph)
	}
}

func TestSetStringWideGlyphClippedAtEdge(t *testing.T) {
	// A wide glyph that would straddle the right edge is dropped whole.
	b := New(NewRect(0, 0, 3, 1))
	b.SetString(0, 0, "ab日", Style{})
	if got := b.Lines()[0]; got != "ab " {
		t.Errorf("line = %q, want %q", got, "ab ")
	}
}

func TestSetStringGraphemeCluster(t *testing.T) {
	// A combining sequence stays in one cell.
	b := New(NewRect(0, 0, 4, 1))
	b.SetString(0, 0, "éx", Style{})
	c0, _ := b.Get(0, 0)
	if c0.Glyph != "é" {
		t.Errorf("cell 0 = %q, want e with combining accent", c0.Glyph)
	}
	c1, _ := b.Get(1, 0)
	if c1.Glyph != "x" {
		t.Errorf("cell 1 = %q, want x", c1.Glyph)
	}
}

func TestSetStyleMergesOntoRegion(t *testing.T) {
	b := New(NewRect(0, 0, 4, 2))
	b.SetString(0, 0, "abcd", NewStyle().WithFG(Green))
	b.SetStyle(NewRect(1, 0, 2, 1), NewStyle().WithBG(Blue).WithBold())

	c0, _ := b.Get(0, 0)
	if c0.Style.BG.IsSet() {
		t.Error("cell outside region gained a background")
	}
	c1, _ := b.Get(1, 0)
	if c1.Style.FG != Green {
		t.Errorf("merge dropped foreground: %+v", c1.Style.FG)
	}
	if c1.Style.BG != Blue {
		t.Errorf("merge missed background: %+v", c1.Style.BG)
	}
	if !c1.Style.Mods.Contains(ModBold) {
		t.Error("merge missed bold modifier")
	}
}

func TestSetStylePartialOverlap(t *testing.T) {
	b := New(NewRect(0, 0, 4, 4))
	b.SetStyle(NewRect(2, 2, 10, 10), NewStyle().WithFG(Red))
	c, _ := b.Get(3, 3)
	if c.Style.FG != Red {
		t.Error("overlapping corner not styled")
	}
	c, _ = b.Get(1, 1)
	if c.Style.FG.IsSet() {
		t.Error("cell outside overlap styled")
	}
}

func TestMergeOffsetAndClip(t *testing.T) {
	dst := New(NewRect(0, 0, 6, 4))
	src := New(NewRect(0, 0, 3, 2))
	src.SetString(0, 0, "ab", Style{})
	src.SetString(0, 1, "cd", Style{})

	dst.Merge(src, 4, 3)

	c, _ := dst.Get(4, 3)
	if c.Glyph != "a" {
		t.Errorf("merged cell = %q, want a", c.Glyph)
	}
	c, _ = dst.Get(5, 3)
	if c.Glyph != "b" {
		t.Errorf("merged cell = %q, want b", c.Glyph)
	}
	// The second source row falls outside dst and is clipped.
	for x := 0; x < 6; x++ {
		for y := 0; y < 3; y++ {
			c, _ := dst.Get(x, y)
			if c.Glyph != " " {
				t.Fatalf("unexpected write at (%d,%d): %q", x, y, c.Glyph)
			}
		}
	}
}

func TestDiffReportsOnlyChanges(t *testing.T) {
	prev := New(NewRect(0, 0, 8, 2))
	prev.SetString(0, 0, "hello", Style{})
	next := prev.Clone()
	next.SetString(0, 0, "hallo", Style{})

	patches := next.Diff(prev)
	if len(patches) != 1 {
		t.Fatalf("patch count = %d, want 1: %+v", len(patches), patches)
	}
	if patches[0].X != 1 || patches[0].Y != 0 || patches[0].Cell.Glyph != "a" {
		t.Errorf("patch = %+v", patches[0])
	}
}

func TestDiffIdenticalBuffersIsEmpty(t *testing.T) {
	a := New(NewRect(0, 0, 10, 3))
	a.SetString(1, 1, "steady", NewStyle().WithFG(Cyan))
	if patches := a.Diff(a.Clone()); len(patches) != 0 {
		t.Errorf("identical buffers produced %d patches", len(patches))
	}
}

func TestDiffAgainstNilOrResizedIsFull(t *testing.T) {
	b := New(NewRect(0, 0, 4, 2))
	if got := len(b.Diff(nil)); got != 8 {
		t.Errorf("nil prev: %d patches, want 8", got)
	}
	other := New(NewRect(0, 0, 5, 2))
	if got := len(b.Diff(other)); got != 8 {
		t.Errorf("resized prev: %d patches, want 8", got)
	}
}

func TestDiffSkipsWideGlyphShadows(t *testing.T) {
	b := New(NewRect(0, 0, 4, 1))
	b.SetString(0, 0, "日本", Style{})
	patches := b.Diff(nil)
	if len(patches) != 2 {
		t.Fatalf("patch count = %d, want 2 (shadows skipped): %+v", len(patches), patches)
	}
	if patches[0].Cell.Glyph != "日" || patches[1].Cell.Glyph != "本" {
		t.Errorf("patches = %+v", patches)
	}
	if patches[1].X != 2 {
		t.Errorf("second glyph at x=%d, want 2", patches[1].X)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := New(NewRect(0, 0, 3, 1))
	b := a.Clone()
	a.SetString(0, 0, "zzz", Style{})
	if c, _ := b.Get(0, 0); c.Glyph != " " {
		t.Error("clone shares cell storage with original")
	}
}

func TestZeroAreaBufferOperations(t *testing.T) {
	b := New(Rect{})
	b.SetString(0, 0, "x", Style{})
	b.SetStyle(NewRect(0, 0, 5, 5), NewStyle().WithBold())
	b.Fill(NewRect(0, 0, 5, 5), "#", Style{})
	if len(b.Diff(nil)) != 0 {
		t.Error("zero-area buffer produced patches")
	}
	if b.String() != "" {
		t.Errorf("zero-area String = %q", b.String())
	}
}

func TestStringJoinsRows(t *testing.T) {
	b := New(NewRect(0, 0, 3, 2))
	b.SetString(0, 0, "abc", Style{})
	b.SetString(0, 1, "def", Style{})
	if got := b.String(); got != "abc\ndef" {
		t.Errorf("String = %q", got)
	}
}
