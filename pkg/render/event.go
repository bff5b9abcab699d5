package render

// Event is an input event produced by a renderer backend. The concrete
// types are KeyEvent, MouseEvent, ResizeEvent, FocusEvent, and
// PasteEvent; the union is sealed by the unexported marker method.
type Event interface {
	isEvent()
}

// Key identifies a non-rune key.
type Key int

const (
	KeyRune Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyTab
	KeyEnter
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Mod is a bitset of key modifiers.
type Mod uint8

const (
	ModCtrl Mod = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent is one keypress. Rune is meaningful only when Code is
// KeyRune.
type KeyEvent struct {
	Code Key
	Rune rune
	Mods Mod
}

// IsCtrl reports whether the event is Ctrl plus the given letter.
func (e KeyEvent) IsCtrl(r rune) bool {
	return e.Mods&ModCtrl != 0 && e.Code == KeyRune && e.Rune == r
}

// MouseKind distinguishes press, release, motion, and wheel events.
type MouseKind int

const (
	MousePress MouseKind = iota
	MouseRelease
	MouseMotion
	MouseWheelUp
	MouseWheelDown
)

// MouseEvent is one mouse action at a cell position.
type MouseEvent struct {
	Kind MouseKind
	X    int
	Y    int
	Mods Mod
}

// ResizeEvent reports a new drawable size.
type ResizeEvent struct {
	Width  int
	Height int
}

// FocusEvent reports the terminal gaining or losing focus.
type FocusEvent struct {
	Gained bool
}

// PasteEvent carries bracketed-paste text as a single event.
type PasteEvent struct {
	Text string
}

func (KeyEvent) isEvent()    {}
func (MouseEvent) isEvent()  {}
func (ResizeEvent) isEvent() {}
func (FocusEvent) isEvent()  {}
func (PasteEvent) isEvent()  {}
