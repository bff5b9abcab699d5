package widgets

import (
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
	"github.com/frescoui/fresco/pkg/ui/symbols"
)

// Tabs renders a single row of tab titles with the active one styled
// apart. Selection is an index into Titles; out-of-range values style
// nothing as active.
type Tabs struct {
	Titles        []string
	Selected      int
	Style         cellbuf.Style
	SelectedStyle cellbuf.Style
	Divider       string
	Block         *Block
}

// NewTabs returns tabs over the given titles.
func NewTabs(titles ...string) Tabs {
	return Tabs{Titles: titles, Divider: symbols.TabDivider}
}

// Render draws the tab row.
func (t Tabs) Render(area cellbuf.Rect, buf *cellbuf.Buffer) {
	if t.Block != nil {
		t.Block.Render(area, buf)
		area = t.Block.Inner(area)
	}
	if area.IsEmpty() {
		return
	}

	x := area.X
	y := area.Y
	for i, title := range t.Titles {
		if x >= area.Right() {
			break
		}
		style := t.Style
		if i == t.Selected {
			style = style.Patch(t.SelectedStyle)
		}
		x = buf.SetString(x, y, " "+truncate(title, area.Right()-x-2)+" ", style)
		if i < len(t.Titles)-1 && t.Divider != "" {
			x = buf.SetString(x, y, t.Divider, t.Style)
		}
	}
}
