package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// Paragraph renders multi-line text inside an optional block, with word
// wrapping and horizontal alignment.
type Paragraph struct {
	Text  string
	Style cellbuf.Style
	Align Alignment
	Wrap  bool
	Block *Block
}

// NewParagraph returns a left-aligned wrapping paragraph.
func NewParagraph(text string) Paragraph {
	return Paragraph{Text: text, Wrap: true}
}

// Render draws the paragraph.
func (p Paragraph) Render(area cellbuf.Rect, buf *cellbuf.Buffer) {
	if p.Block != nil {
		p.Block.Render(area, buf)
		area = p.Block.Inner(area)
	}
	if area.IsEmpty() {
		return
	}

	var lines []string
	for _, raw := range strings.Split(p.Text, "\n") {
		if p.Wrap {
			lines = append(lines, wrapLine(raw, area.Width)...)
		} else {
			lines = append(lines, truncate(raw, area.Width))
		}
	}

	for i, line := range lines {
		if i >= area.Height {
			break
		}
		x := area.X + alignOffset(p.Align, area.Width, runewidth.StringWidth(line))
		buf.SetString(x, area.Y+i, line, p.Style)
	}
}

// wrapLine breaks a single line into rows of at most width display
// columns, preferring word boundaries and hard-splitting words longer
// than the width.
func wrapLine(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	if runewidth.StringWidth(s) <= width {
		return []string{s}
	}

	var rows []string
	var row strings.Builder
	rowW := 0
	for _, word := range strings.Fields(s) {
		wordW := runewidth.StringWidth(word)
		for wordW > width {
			// A word wider than the row gets hard-split.
			if rowW > 0 {
				rows = append(rows, row.String())
				row.Reset()
				rowW = 0
			}
			head := runewidth.Truncate(word, width, "")
			rows = append(rows, head)
			word = strings.TrimPrefix(word, head)
			wordW = runewidth.StringWidth(word)
		}
		if wordW == 0 {
			continue
		}
		sep := 0
		if rowW > 0 {
			sep = 1
		}
		if rowW+sep+wordW > width {
			rows = append(rows, row.String())
			row.Reset()
			rowW = 0
			sep = 0
		}
		if sep == 1 {
			row.WriteByte(' ')
			rowW++
		}
		row.WriteString(word)
		rowW += wordW
	}
	if rowW > 0 {
		rows = append(rows, row.String())
	}
	if len(rows) == 0 {
		rows = []string{""}
	}
	return rows
}
