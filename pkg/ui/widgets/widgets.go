// Package widgets provides the built-in stateless widget set: pure
// transforms from data to cell mutations. A widget never retains the
// buffer it draws into and never owns scheduling; the runtime calls
// Render once per frame with the widget's assigned area.
package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// Widget renders itself into an area of a frame buffer.
type Widget interface {
	Render(area cellbuf.Rect, buf *cellbuf.Buffer)
}

// Stateful is the capability for widgets that thread external mutable
// state (selection, scroll offset) through rendering.
type Stateful[S any] interface {
	RenderStateful(area cellbuf.Rect, buf *cellbuf.Buffer, state *S)
}

// WidgetFunc adapts a plain function to the Widget interface.
type WidgetFunc func(area cellbuf.Rect, buf *cellbuf.Buffer)

// Render calls f.
func (f WidgetFunc) Render(area cellbuf.Rect, buf *cellbuf.Buffer) {
	f(area, buf)
}

// Alignment positions text within a horizontal span.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// truncate cuts s to fit maxWidth display columns, appending an ellipsis
// when anything was dropped.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}
	return runewidth.Truncate(s, maxWidth-1, "") + "…"
}

// alignOffset returns the x offset that places a string of width w inside
// a span of the given width.
func alignOffset(align Alignment, width, w int) int {
	switch align {
	case AlignCenter:
		if width > w {
			return (width - w) / 2
		}
	case AlignRight:
		if width > w {
			return width - w
		}
	}
	return 0
}
