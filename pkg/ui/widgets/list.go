package widgets

import (
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
	"github.com/frescoui/fresco/pkg/ui/symbols"
)

// ListState carries a list's scroll offset and selection between frames.
// It belongs to the caller, not the widget.
type ListState struct {
	Offset   int
	Selected int
}

// Select moves the selection, clamping to [0, n).
func (s *ListState) Select(i, n int) {
	if n == 0 {
		s.Selected = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	s.Selected = i
}

// Next advances the selection by one.
func (s *ListState) Next(n int) { s.Select(s.Selected+1, n) }

// Prev moves the selection back by one.
func (s *ListState) Prev(n int) { s.Select(s.Selected-1, n) }

// List renders scrollable rows of text with an optional highlighted
// selection. Stateless on its own; selection and scrolling live in a
// caller-owned ListState.
type List struct {
	Items           []string
	Style           cellbuf.Style
	SelectedStyle   cellbuf.Style
	HighlightSymbol string
	Block           *Block
}

// NewList returns a list over items with the default highlight marker.
func NewList(items ...string) List {
	return List{Items: items, HighlightSymbol: symbols.HighlightSymbol}
}

// Render draws the list without a selection.
func (l List) Render(area cellbuf.Rect, buf *cellbuf.Buffer) {
	l.RenderStateful(area, buf, &ListState{Selected: -1})
}

// RenderStateful draws the list, scrolling so the selection stays
// visible and updating state's offset accordingly.
func (l List) RenderStateful(area cellbuf.Rect, buf *cellbuf.Buffer, state *ListState) {
	if l.Block != nil {
		l.Block.Render(area, buf)
		area = l.Block.Inner(area)
	}
	if area.IsEmpty() || len(l.Items) == 0 {
		return
	}

	if state.Selected >= 0 {
		if state.Selected < state.Offset {
			state.Offset = state.Selected
		}
		if state.Selected >= state.Offset+area.Height {
			state.Offset = state.Selected - area.Height + 1
		}
	}
	if state.Offset > len(l.Items)-1 {
		state.Offset = len(l.Items) - 1
	}
	if state.Offset < 0 {
		state.Offset = 0
	}

	marker := l.HighlightSymbol
	pad := len([]rune(marker))
	for row := 0; row < area.Height; row++ {
		i := state.Offset + row
		if i >= len(l.Items) {
			break
		}
		y := area.Y + row
		style := l.Style
		x := area.X
		if i == state.Selected {
			style = style.Patch(l.SelectedStyle)
			buf.SetStyle(cellbuf.NewRect(area.X, y, area.Width, 1), l.SelectedStyle)
			x = buf.SetString(x, y, marker, style)
		} else if marker != "" {
			x += pad
		}
		buf.SetString(x, y, truncate(l.Items[i], area.Right()-x), style)
	}
}
