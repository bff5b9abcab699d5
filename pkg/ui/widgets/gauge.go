package widgets

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/frescoui/fresco/pkg/ui/cellbuf"
	"github.com/frescoui/fresco/pkg/ui/symbols"
)

// Threshold colors a gauge's fill once its ratio reaches Above.
type Threshold struct {
	Above float64
	Style cellbuf.Style
}

// Gauge renders a horizontal progress bar for a ratio in [0, 1]. Ratios
// outside the range are clamped, not rejected. Thresholds, checked in
// order, recolor the fill as the ratio climbs.
type Gauge struct {
	Ratio      float64
	Label      string
	FillStyle  cellbuf.Style
	EmptyStyle cellbuf.Style
	LabelStyle cellbuf.Style
	Thresholds []Threshold
	Block      *Block
}

// NewGauge returns a gauge at the given ratio with a percentage label.
func NewGauge(ratio float64) Gauge {
	return Gauge{Ratio: ratio, Label: fmt.Sprintf("%d%%", int(clampRatio(ratio)*100))}
}

// Render draws the gauge.
func (g Gauge) Render(area cellbuf.Rect, buf *cellbuf.Buffer) {
	if g.Block != nil {
		g.Block.Render(area, buf)
		area = g.Block.Inner(area)
	}
	if area.IsEmpty() {
		return
	}

	ratio := clampRatio(g.Ratio)
	fill := g.FillStyle
	for _, t := range g.Thresholds {
		if ratio >= t.Above {
			fill = t.Style
		}
	}

	filled := int(ratio * float64(area.Width))
	y := area.Y + area.Height/2
	for x := 0; x < area.Width; x++ {
		c := cellbuf.Cell{Glyph: symbols.FullBlock, Style: fill}
		if x >= filled {
			c = cellbuf.Cell{Glyph: symbols.LightShade, Style: g.EmptyStyle}
		}
		buf.Set(area.X+x, y, c)
	}

	if g.Label != "" {
		w := runewidth.StringWidth(g.Label)
		x := area.X + alignOffset(AlignCenter, area.Width, w)
		// The label overprints the bar; reverse video keeps it readable
		// on both filled and empty spans.
		style := g.LabelStyle
		if style == (cellbuf.Style{}) {
			style = cellbuf.NewStyle().WithReverse()
		}
		buf.SetString(x, y, truncate(g.Label, area.Width), style)
	}
}

func clampRatio(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
