package cellbuf

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorMode identifies how a Color's value is interpreted.
type ColorMode uint8

const (
	// ColorNone means the color is unset; style merging leaves the
	// underlying color in place and renderers fall back to the default.
	ColorNone ColorMode = iota
	// ColorDefault is the terminal's default foreground or background.
	ColorDefault
	// Color16 is a basic ANSI color, value 0-15.
	Color16
	// Color256 is an xterm 256-palette index.
	Color256
	// ColorRGB is 24-bit truecolor packed as 0xRRGGBB.
	ColorRGB
)

// Color is a terminal color in one of several modes.
// The zero value is the unset color.
type Color struct {
	Mode  ColorMode
	Value uint32
}

// Default returns the terminal's default color.
func Default() Color {
	return Color{Mode: ColorDefault}
}

// ANSI returns one of the 16 basic colors (0-15).
func ANSI(n uint8) Color {
	return Color{Mode: Color16, Value: uint32(n & 0x0F)}
}

// Indexed returns a color from the xterm 256-color palette.
func Indexed(n uint8) Color {
	return Color{Mode: Color256, Value: uint32(n)}
}

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, Value: uint32(r)<<16 | uint32(g)<<8 | uint32(b)}
}

// Hex parses "#RRGGBB" or "RRGGBB" into an RGB color.
// Invalid input yields the unset color.
func Hex(s string) Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}
	}
	return Color{Mode: ColorRGB, Value: uint32(v)}
}

// RGBComponents splits an RGB color into components.
// Only meaningful for ColorRGB.
func (c Color) RGBComponents() (r, g, b uint8) {
	return uint8(c.Value >> 16), uint8(c.Value >> 8), uint8(c.Value)
}

// IsSet reports whether the color carries any value, including the
// explicit terminal default.
func (c Color) IsSet() bool {
	return c.Mode != ColorNone
}

// Basic ANSI palette.
var (
	Black        = ANSI(0)
	Red          = ANSI(1)
	Green        = ANSI(2)
	Yellow       = ANSI(3)
	Blue         = ANSI(4)
	Magenta      = ANSI(5)
	Cyan         = ANSI(6)
	White        = ANSI(7)
	DarkGray     = ANSI(8)
	LightRed     = ANSI(9)
	LightGreen   = ANSI(10)
	LightYellow  = ANSI(11)
	LightBlue    = ANSI(12)
	LightMagenta = ANSI(13)
	LightCyan    = ANSI(14)
	LightWhite   = ANSI(15)
)

var namedColors = map[string]Color{
	"default":      Default(),
	"black":        Black,
	"red":          Red,
	"green":        Green,
	"yellow":       Yellow,
	"blue":         Blue,
	"magenta":      Magenta,
	"cyan":         Cyan,
	"white":        White,
	"gray":         DarkGray,
	"darkgray":     DarkGray,
	"lightred":     LightRed,
	"lightgreen":   LightGreen,
	"lightyellow":  LightYellow,
	"lightblue":    LightBlue,
	"lightmagenta": LightMagenta,
	"lightcyan":    LightCyan,
	"lightwhite":   LightWhite,
}

// ParseColor resolves a color name, "#RRGGBB" hex value, or 256-palette
// index written in decimal.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") {
		c := Hex(name)
		if !c.IsSet() {
			return Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		return c, nil
	}
	if n, err := strconv.ParseUint(name, 10, 8); err == nil {
		return Indexed(uint8(n)), nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}
