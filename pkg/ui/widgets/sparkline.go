package widgets

import (
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
	"github.com/frescoui/fresco/pkg/ui/symbols"
)

// Sparkline renders a compact bar chart, one column per sample, scaled
// against Max (or the observed maximum when Max is zero). When there are
// more samples than columns the newest samples win.
type Sparkline struct {
	Data  []float64
	Max   float64
	Style cellbuf.Style
	Block *Block
}

// NewSparkline returns a sparkline that auto-scales to its data.
func NewSparkline(data ...float64) Sparkline {
	return Sparkline{Data: data}
}

// Render draws the sparkline.
func (s Sparkline) Render(area cellbuf.Rect, buf *cellbuf.Buffer) {
	if s.Block != nil {
		s.Block.Render(area, buf)
		area = s.Block.Inner(area)
	}
	if area.IsEmpty() || len(s.Data) == 0 {
		return
	}

	data := s.Data
	if len(data) > area.Width {
		data = data[len(data)-area.Width:]
	}

	max := s.Max
	if max <= 0 {
		for _, v := range data {
			if v > max {
				max = v
			}
		}
	}
	if max <= 0 {
		max = 1
	}

	levels := len(symbols.Bars) - 1
	bottom := area.Bottom() - 1
	for i, v := range data {
		if v < 0 {
			v = 0
		}
		if v > max {
			v = max
		}
		// Total eighths of cell height this column fills.
		eighths := int(v / max * float64(area.Height*levels))
		x := area.X + i
		for y := 0; y < area.Height; y++ {
			level := eighths - y*levels
			if level <= 0 {
				break
			}
			if level > levels {
				level = levels
			}
			buf.Set(x, bottom-y, cellbuf.Cell{Glyph: symbols.Bars[level], Style: s.Style})
		}
	}
}
