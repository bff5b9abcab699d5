// Package theme provides the visual language shared by widgets, the error
// overlay, and the built-in definition format.
package theme

import (
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// Theme names every style role the runtime draws with.
type Theme struct {
	// Canvas
	Background cellbuf.Style
	Surface    cellbuf.Style

	// Text hierarchy
	Text      cellbuf.Style
	TextDim   cellbuf.Style
	TextMuted cellbuf.Style
	Title     cellbuf.Style

	// Chrome
	Border      cellbuf.Style
	BorderFocus cellbuf.Style

	// Widgets
	GaugeLow      cellbuf.Style
	GaugeMid      cellbuf.Style
	GaugeHigh     cellbuf.Style
	GaugeEmpty    cellbuf.Style
	Sparkline     cellbuf.Style
	ListSelected  cellbuf.Style
	ListHighlight cellbuf.Style
	TabActive     cellbuf.Style
	TabInactive   cellbuf.Style

	// Semantic
	Success cellbuf.Style
	Warning cellbuf.Style
	Error   cellbuf.Style
	Info    cellbuf.Style

	// Error overlay
	OverlayBG     cellbuf.Style
	OverlayText   cellbuf.Style
	OverlayHint   cellbuf.Style
	OverlayFooter cellbuf.Style
}

// Default returns the dark theme: deep background, warm amber accents.
func Default() *Theme {
	return &Theme{
		Background: cellbuf.NewStyle().WithBG(cellbuf.RGB(12, 12, 16)),
		Surface:    cellbuf.NewStyle().WithBG(cellbuf.RGB(22, 22, 28)),

		Text:      cellbuf.NewStyle().WithFG(cellbuf.RGB(240, 238, 232)),
		TextDim:   cellbuf.NewStyle().WithFG(cellbuf.RGB(160, 158, 150)),
		TextMuted: cellbuf.NewStyle().WithFG(cellbuf.RGB(100, 98, 92)),
		Title:     cellbuf.NewStyle().WithFG(cellbuf.RGB(255, 183, 77)).WithBold(),

		Border:      cellbuf.NewStyle().WithFG(cellbuf.RGB(50, 50, 60)),
		BorderFocus: cellbuf.NewStyle().WithFG(cellbuf.RGB(255, 183, 77)),

		GaugeLow:      cellbuf.NewStyle().WithFG(cellbuf.RGB(134, 239, 172)),
		GaugeMid:      cellbuf.NewStyle().WithFG(cellbuf.RGB(255, 183, 77)),
		GaugeHigh:     cellbuf.NewStyle().WithFG(cellbuf.RGB(255, 110, 90)),
		GaugeEmpty:    cellbuf.NewStyle().WithFG(cellbuf.RGB(50, 50, 60)),
		Sparkline:     cellbuf.NewStyle().WithFG(cellbuf.RGB(79, 195, 247)),
		ListSelected:  cellbuf.NewStyle().WithBG(cellbuf.RGB(60, 60, 80)),
		ListHighlight: cellbuf.NewStyle().WithFG(cellbuf.RGB(255, 183, 77)).WithBold(),
		TabActive:     cellbuf.NewStyle().WithFG(cellbuf.RGB(255, 183, 77)).WithBold(),
		TabInactive:   cellbuf.NewStyle().WithFG(cellbuf.RGB(100, 98, 92)),

		Success: cellbuf.NewStyle().WithFG(cellbuf.RGB(134, 239, 172)),
		Warning: cellbuf.NewStyle().WithFG(cellbuf.RGB(255, 138, 101)),
		Error:   cellbuf.NewStyle().WithFG(cellbuf.RGB(255, 110, 90)),
		Info:    cellbuf.NewStyle().WithFG(cellbuf.RGB(77, 182, 172)),

		OverlayBG:     cellbuf.NewStyle().WithBG(cellbuf.Black),
		OverlayText:   cellbuf.NewStyle().WithFG(cellbuf.RGB(240, 238, 232)).WithBG(cellbuf.Black),
		OverlayHint:   cellbuf.NewStyle().WithFG(cellbuf.RGB(160, 158, 150)).WithBG(cellbuf.Black),
		OverlayFooter: cellbuf.NewStyle().WithFG(cellbuf.RGB(100, 98, 92)).WithBG(cellbuf.Black).WithItalic(),
	}
}

// Plain returns a theme that relies entirely on the terminal's own
// palette, for 16-color and monochrome environments.
func Plain() *Theme {
	return &Theme{
		Text:      cellbuf.NewStyle().WithFG(cellbuf.Default()),
		TextDim:   cellbuf.NewStyle().WithMods(cellbuf.ModDim),
		TextMuted: cellbuf.NewStyle().WithMods(cellbuf.ModDim),
		Title:     cellbuf.NewStyle().WithBold(),

		Border:      cellbuf.NewStyle().WithFG(cellbuf.Default()),
		BorderFocus: cellbuf.NewStyle().WithBold(),

		GaugeLow:      cellbuf.NewStyle().WithFG(cellbuf.Green),
		GaugeMid:      cellbuf.NewStyle().WithFG(cellbuf.Yellow),
		GaugeHigh:     cellbuf.NewStyle().WithFG(cellbuf.Red),
		GaugeEmpty:    cellbuf.NewStyle().WithMods(cellbuf.ModDim),
		Sparkline:     cellbuf.NewStyle().WithFG(cellbuf.Cyan),
		ListSelected:  cellbuf.NewStyle().WithMods(cellbuf.ModReverse),
		ListHighlight: cellbuf.NewStyle().WithBold(),
		TabActive:     cellbuf.NewStyle().WithBold().WithUnderline(),
		TabInactive:   cellbuf.NewStyle().WithMods(cellbuf.ModDim),

		Success: cellbuf.NewStyle().WithFG(cellbuf.Green),
		Warning: cellbuf.NewStyle().WithFG(cellbuf.Yellow),
		Error:   cellbuf.NewStyle().WithFG(cellbuf.Red),
		Info:    cellbuf.NewStyle().WithFG(cellbuf.Blue),

		OverlayBG:     cellbuf.NewStyle().WithBG(cellbuf.Black),
		OverlayText:   cellbuf.NewStyle().WithFG(cellbuf.White).WithBG(cellbuf.Black),
		OverlayHint:   cellbuf.NewStyle().WithFG(cellbuf.White).WithBG(cellbuf.Black).WithMods(cellbuf.ModDim),
		OverlayFooter: cellbuf.NewStyle().WithFG(cellbuf.White).WithBG(cellbuf.Black).WithItalic(),
	}
}

// ByName resolves a configured theme name, falling back to the default.
func ByName(name string) *Theme {
	switch name {
	case "plain", "mono":
		return Plain()
	default:
		return Default()
	}
}
