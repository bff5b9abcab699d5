package term

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// ANSI escape sequences.
const (
	ansiEscape     = "\x1b["
	ansiClear      = "\x1b[2J"
	ansiReset      = "\x1b[0m"
	ansiCursorHide = "\x1b[?25l"
	ansiCursorShow = "\x1b[?25h"
	ansiAltScreen  = "\x1b[?1049h"
	ansiMainScreen = "\x1b[?1049l"
	ansiCursorHome = "\x1b[H"
)

// cursorTo moves the cursor to 0-indexed (x, y); ANSI is 1-indexed.
func cursorTo(x, y int) string {
	return fmt.Sprintf("\x1b[%d;%dH", y+1, x+1)
}

// cursorForward moves the cursor right n columns.
func cursorForward(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%dC", n)
}

// styleSGR builds the SGR sequence for a style, degrading colors through
// the terminal's detected profile. Always starts from a reset so the
// writer never tracks partial attribute state.
func styleSGR(s cellbuf.Style, profile termenv.Profile) string {
	parts := []string{"0"}

	if s.Mods.Contains(cellbuf.ModBold) {
		parts = append(parts, "1")
	}
	if s.Mods.Contains(cellbuf.ModDim) {
		parts = append(parts, "2")
	}
	if s.Mods.Contains(cellbuf.ModItalic) {
		parts = append(parts, "3")
	}
	if s.Mods.Contains(cellbuf.ModUnderline) {
		parts = append(parts, "4")
	}
	if s.Mods.Contains(cellbuf.ModBlink) {
		parts = append(parts, "5")
	}
	if s.Mods.Contains(cellbuf.ModRapidBlink) {
		parts = append(parts, "6")
	}
	if s.Mods.Contains(cellbuf.ModReverse) {
		parts = append(parts, "7")
	}
	if s.Mods.Contains(cellbuf.ModHidden) {
		parts = append(parts, "8")
	}
	if s.Mods.Contains(cellbuf.ModCrossedOut) {
		parts = append(parts, "9")
	}

	parts = append(parts, colorSGR(s.FG, false, profile))
	parts = append(parts, colorSGR(s.BG, true, profile))

	return ansiEscape + strings.Join(parts, ";") + "m"
}

// colorSGR returns the SGR parameters for one color after profile
// degradation. Unset and default colors map to the terminal defaults.
func colorSGR(c cellbuf.Color, bg bool, profile termenv.Profile) string {
	tc := termenvColor(c, profile)
	if tc == nil {
		if bg {
			return "49"
		}
		return "39"
	}
	return tc.Sequence(bg)
}

// termenvColor converts a cellbuf color into a termenv color in the
// given profile, or nil for the terminal default.
func termenvColor(c cellbuf.Color, profile termenv.Profile) termenv.Color {
	var tc termenv.Color
	switch c.Mode {
	case cellbuf.ColorNone, cellbuf.ColorDefault:
		return nil
	case cellbuf.Color16:
		tc = termenv.ANSIColor(c.Value)
	case cellbuf.Color256:
		tc = termenv.ANSI256Color(c.Value)
	case cellbuf.ColorRGB:
		r, g, b := c.RGBComponents()
		tc = termenv.RGBColor(fmt.Sprintf("#%02x%02x%02x", r, g, b))
	default:
		return nil
	}
	converted := profile.Convert(tc)
	if _, isNoTTY := converted.(termenv.NoColor); isNoTTY {
		return nil
	}
	return converted
}

// ansiWriter accumulates escape output for one frame, skipping redundant
// cursor moves and style changes. Short same-line forward skips use a
// relative move instead of an absolute reposition.
type ansiWriter struct {
	buf       strings.Builder
	profile   termenv.Profile
	lastStyle cellbuf.Style
	styleSet  bool
	lastX     int
	lastY     int
	posSet    bool
}

func newANSIWriter(profile termenv.Profile) *ansiWriter {
	return &ansiWriter{profile: profile, lastX: -1, lastY: -1}
}

func (w *ansiWriter) moveTo(x, y int) {
	if w.posSet && w.lastY == y {
		if w.lastX == x {
			return
		}
		if delta := x - w.lastX; delta > 0 && delta < 5 {
			w.buf.WriteString(cursorForward(delta))
			w.lastX = x
			return
		}
	}
	w.buf.WriteString(cursorTo(x, y))
	w.lastX = x
	w.lastY = y
	w.posSet = true
}

func (w *ansiWriter) setStyle(s cellbuf.Style) {
	if w.styleSet && w.lastStyle == s {
		return
	}
	w.buf.WriteString(styleSGR(s, w.profile))
	w.lastStyle = s
	w.styleSet = true
}

func (w *ansiWriter) writeCell(c cellbuf.Cell) {
	w.buf.WriteString(c.Glyph)
	w.lastX += runewidth.StringWidth(c.Glyph)
}

func (w *ansiWriter) writeRaw(s string) {
	w.buf.WriteString(s)
}

func (w *ansiWriter) reset() {
	w.buf.WriteString(ansiReset)
	w.styleSet = false
}

func (w *ansiWriter) String() string {
	return w.buf.String()
}

func (w *ansiWriter) Len() int {
	return w.buf.Len()
}
