package cellbuf

// Modifier is a bitset of text attributes applied to a cell.
type Modifier uint16

const (
	ModBold Modifier = 1 << iota
	ModDim
	ModItalic
	ModUnderline
	ModBlink
	ModRapidBlink
	ModReverse
	ModHidden
	ModCrossedOut
)

// Contains reports whether all bits of m are set.
func (mod Modifier) Contains(m Modifier) bool {
	return mod&m == m
}

// With returns the modifier set with m added.
func (mod Modifier) With(m Modifier) Modifier {
	return mod | m
}

// Without returns the modifier set with m removed.
func (mod Modifier) Without(m Modifier) Modifier {
	return mod &^ m
}

// Style describes how a cell is drawn. The zero value leaves every field
// unset: merging it onto another style changes nothing, and renderers
// resolve unset colors to the terminal defaults.
type Style struct {
	FG   Color
	BG   Color
	Mods Modifier
}

// NewStyle returns an empty style for builder-style chaining.
func NewStyle() Style {
	return Style{}
}

// WithFG sets the foreground color.
func (s Style) WithFG(c Color) Style {
	s.FG = c
	return s
}

// WithBG sets the background color.
func (s Style) WithBG(c Color) Style {
	s.BG = c
	return s
}

// WithMods adds the given modifiers.
func (s Style) WithMods(m Modifier) Style {
	s.Mods |= m
	return s
}

// WithoutMods removes the given modifiers.
func (s Style) WithoutMods(m Modifier) Style {
	s.Mods &^= m
	return s
}

// WithBold sets the bold modifier.
func (s Style) WithBold() Style { return s.WithMods(ModBold) }

// WithDim sets the dim modifier.
func (s Style) WithDim() Style { return s.WithMods(ModDim) }

// WithItalic sets the italic modifier.
func (s Style) WithItalic() Style { return s.WithMods(ModItalic) }

// WithUnderline sets the underline modifier.
func (s Style) WithUnderline() Style { return s.WithMods(ModUnderline) }

// WithReverse sets the reverse-video modifier.
func (s Style) WithReverse() Style { return s.WithMods(ModReverse) }

// Patch merges other onto s: colors set in other override, unset colors
// pass through, and modifiers accumulate.
func (s Style) Patch(other Style) Style {
	if other.FG.IsSet() {
		s.FG = other.FG
	}
	if other.BG.IsSet() {
		s.BG = other.BG
	}
	s.Mods |= other.Mods
	return s
}
