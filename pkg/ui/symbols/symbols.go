// Package symbols holds the box-drawing and block glyph sets used by
// widgets and overlays.
package symbols

// LineSet is one family of box-drawing characters.
type LineSet struct {
	Horizontal  string
	Vertical    string
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	LeftT       string
	RightT      string
	TopT        string
	BottomT     string
	Cross       string
}

var (
	// Plain single-line borders.
	Plain = LineSet{
		Horizontal:  "─",
		Vertical:    "│",
		TopLeft:     "┌",
		TopRight:    "┐",
		BottomLeft:  "└",
		BottomRight: "┘",
		LeftT:       "├",
		RightT:      "┤",
		TopT:        "┬",
		BottomT:     "┴",
		Cross:       "┼",
	}

	// Rounded corners, otherwise plain.
	Rounded = LineSet{
		Horizontal:  "─",
		Vertical:    "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "╰",
		BottomRight: "╯",
		LeftT:       "├",
		RightT:      "┤",
		TopT:        "┬",
		BottomT:     "┴",
		Cross:       "┼",
	}

	// Thick heavy-line borders.
	Thick = LineSet{
		Horizontal:  "━",
		Vertical:    "┃",
		TopLeft:     "┏",
		TopRight:    "┓",
		BottomLeft:  "┗",
		BottomRight: "┛",
		LeftT:       "┣",
		RightT:      "┫",
		TopT:        "┳",
		BottomT:     "┻",
		Cross:       "╋",
	}

	// Double-line borders.
	Double = LineSet{
		Horizontal:  "═",
		Vertical:    "║",
		TopLeft:     "╔",
		TopRight:    "╗",
		BottomLeft:  "╚",
		BottomRight: "╝",
		LeftT:       "╠",
		RightT:      "╣",
		TopT:        "╦",
		BottomT:     "╩",
		Cross:       "╬",
	}
)

// Block elements.
const (
	FullBlock          = "█"
	SevenEighthsBlock  = "▉"
	ThreeQuartersBlock = "▊"
	FiveEighthsBlock   = "▋"
	HalfBlock          = "▌"
	ThreeEighthsBlock  = "▍"
	QuarterBlock       = "▎"
	OneEighthBlock     = "▏"
	UpperHalfBlock     = "▀"
	LowerHalfBlock     = "▄"
	LightShade         = "░"
	MediumShade        = "▒"
	DarkShade          = "▓"
)

// Bars are the eighth-height bar glyphs used by sparklines, from empty to
// full.
var Bars = [...]string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// ScrollSymbols used by scrollable widgets.
const (
	ScrollTrack = "░"
	ScrollThumb = "█"
	ArrowUp     = "↑"
	ArrowDown   = "↓"
)

// TabDivider separates tab titles.
const TabDivider = "│"

// HighlightSymbol marks the selected list row.
const HighlightSymbol = "▶ "
