package widgets

import "github.com/frescoui/fresco/pkg/ui/cellbuf"

// Clear resets an area to empty cells. Rendered under an overlay so no
// underlying content bleeds through.
type Clear struct {
	Style cellbuf.Style
}

// Render fills the area with spaces in the clear style.
func (c Clear) Render(area cellbuf.Rect, buf *cellbuf.Buffer) {
	buf.Fill(area, " ", c.Style)
}
