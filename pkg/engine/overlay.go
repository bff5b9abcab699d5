package engine

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/frescoui/fresco/pkg/ui/cellbuf"
	"github.com/frescoui/fresco/pkg/ui/theme"
	"github.com/frescoui/fresco/pkg/ui/widgets"
)

// ErrorOverlay draws a recorded reload failure as a centered box over
// the last good frame: 80% x 60% of the area, rounded border in the
// severity color, message, source location, hints, and a key-help
// footer.
type ErrorOverlay struct {
	Record *ErrorRecord
	Theme  *theme.Theme
}

// OverlayRect returns the centered box the overlay occupies within
// area.
func OverlayRect(area cellbuf.Rect) cellbuf.Rect {
	w := area.Width * 80 / 100
	h := area.Height * 60 / 100
	if w < 20 {
		w = min(20, area.Width)
	}
	if h < 7 {
		h = min(7, area.Height)
	}
	return cellbuf.NewRect(area.X+(area.Width-w)/2, area.Y+(area.Height-h)/2, w, h)
}

// Render composites the overlay into buf. A nil record draws nothing.
func (o ErrorOverlay) Render(area cellbuf.Rect, buf *cellbuf.Buffer) {
	rec := o.Record
	th := o.Theme
	if rec == nil || area.IsEmpty() {
		return
	}
	if th == nil {
		th = theme.Default()
	}
	box := OverlayRect(area)
	if box.IsEmpty() {
		return
	}
	accent := severityStyle(th, rec.Severity)

	widgets.Clear{Style: th.OverlayBG}.Render(box, buf)

	title := fmt.Sprintf(" %s: %s ", strings.ToUpper(rec.Severity.String()), rec.Title)
	block := widgets.NewBlock().
		WithTitle(title).
		WithPadding(widgets.PaddingAll(1))
	block.BorderStyle = accent
	block.TitleStyle = accent.WithBold()
	block.TitleAlign = widgets.AlignCenter
	block.Style = th.OverlayBG
	block.Render(box, buf)

	inner := block.Inner(box)
	if inner.IsEmpty() {
		return
	}

	// Bottom row is the footer; everything above it flows top-down.
	reserved := 2 // blank + footer
	if rec.Path != "" {
		reserved += 2
	}
	if len(rec.Hints) > 0 {
		reserved += len(rec.Hints) + 1
	}
	msgHeight := inner.Height - reserved
	if msgHeight < 1 {
		msgHeight = 1
	}

	y := inner.Top()
	msg := widgets.Paragraph{Text: rec.Message, Style: th.OverlayText, Wrap: true}
	msg.Render(cellbuf.NewRect(inner.X, y, inner.Width, msgHeight), buf)
	y += msgHeight

	footerRow := inner.Bottom() - 1
	if rec.Path != "" && y+1 < footerRow {
		y++
		buf.SetString(inner.X, y, "Location: "+rec.Location(), th.OverlayHint)
		y++
	}
	if len(rec.Hints) > 0 && y+1 < footerRow {
		y++
		for _, hint := range rec.Hints {
			if y >= footerRow {
				break
			}
			buf.SetString(inner.X, y, "• "+hint, th.OverlayHint)
			y++
		}
	}

	footer := "Press Ctrl+D to dismiss, Ctrl+R to reload"
	fx := inner.X + (inner.Width-runewidth.StringWidth(footer))/2
	if fx < inner.X {
		fx = inner.X
	}
	buf.SetString(fx, footerRow, footer, th.OverlayFooter)
}

// Location formats path:line:col, omitting unknown parts.
func (r *ErrorRecord) Location() string {
	switch {
	case r.Path == "":
		return ""
	case r.Line > 0 && r.Col > 0:
		return fmt.Sprintf("%s:%d:%d", r.Path, r.Line, r.Col)
	case r.Line > 0:
		return fmt.Sprintf("%s:%d", r.Path, r.Line)
	default:
		return r.Path
	}
}

func severityStyle(th *theme.Theme, s Severity) cellbuf.Style {
	switch s {
	case SeverityWarning:
		return th.Warning
	case SeverityInfo:
		return th.Info
	default:
		return th.Error
	}
}
