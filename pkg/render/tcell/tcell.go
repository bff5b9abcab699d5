// Package tcell adapts a tcell screen to the render.Renderer contract.
// It is the fully interactive local backend: tcell owns terminal setup,
// input decoding, and damage tracking; this package converts between the
// cellbuf/render types and tcell's.
package tcell

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/frescoui/fresco/pkg/render"
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

// Renderer implements render.Renderer over a tcell.Screen.
type Renderer struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}

	// Bracketed-paste assembly.
	inPaste     bool
	pasteBuffer strings.Builder

	mu        sync.Mutex
	cleanedUp bool
}

// New creates and initializes a renderer on the process terminal.
func New() (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, &render.BackendError{Op: "init", Err: err}
	}
	return NewWithScreen(screen)
}

// NewWithScreen initializes a renderer over an existing screen. The sim
// package uses this with a tcell simulation screen.
func NewWithScreen(screen tcell.Screen) (*Renderer, error) {
	if err := screen.Init(); err != nil {
		return nil, &render.BackendError{Op: "init", Err: err}
	}
	screen.EnableMouse()
	screen.EnablePaste()
	screen.EnableFocus()
	screen.HideCursor()

	r := &Renderer{
		screen: screen,
		events: make(chan tcell.Event, 16),
		quit:   make(chan struct{}),
	}
	go screen.ChannelEvents(r.events, r.quit)
	return r, nil
}

// Size implements render.Renderer.
func (r *Renderer) Size() cellbuf.Rect {
	w, h := r.screen.Size()
	return cellbuf.NewRect(0, 0, w, h)
}

// Draw hands the frame's cells to tcell, which tracks damage itself.
func (r *Renderer) Draw(buf *cellbuf.Buffer) error {
	if size := r.Size(); buf.Area() != size {
		return &render.SizeMismatchError{Got: buf.Area(), Want: size}
	}
	area := buf.Area()
	for y := area.Top(); y < area.Bottom(); y++ {
		for x := area.Left(); x < area.Right(); x++ {
			c, _ := buf.Get(x, y)
			mainc, comb := splitGlyph(c.Glyph)
			r.screen.SetContent(x, y, mainc, comb, convertStyle(c.Style))
		}
	}
	return nil
}

// Flush implements render.Renderer.
func (r *Renderer) Flush() error {
	r.screen.Show()
	return nil
}

// PollEvent converts the next tcell event, assembling bracketed paste
// runs into a single PasteEvent.
func (r *Renderer) PollEvent(timeout time.Duration) render.Event {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		select {
		case ev, ok := <-r.events:
			if !ok {
				return nil
			}
			if converted, done := r.convert(ev); done {
				return converted
			}
		case <-deadline.C:
			return nil
		}
	}
}

// convert maps one tcell event, reporting done=false for events absorbed
// by the paste state machine.
func (r *Renderer) convert(ev tcell.Event) (render.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventPaste:
		if e.Start() {
			r.inPaste = true
			r.pasteBuffer.Reset()
			return nil, false
		}
		r.inPaste = false
		text := r.pasteBuffer.String()
		r.pasteBuffer.Reset()
		if text == "" {
			return nil, false
		}
		return render.PasteEvent{Text: text}, true

	case *tcell.EventKey:
		if r.inPaste {
			switch e.Key() {
			case tcell.KeyRune:
				r.pasteBuffer.WriteRune(e.Rune())
			case tcell.KeyEnter:
				r.pasteBuffer.WriteRune('\n')
			case tcell.KeyTab:
				r.pasteBuffer.WriteRune('\t')
			}
			return nil, false
		}
		return convertKey(e), true

	case *tcell.EventResize:
		w, h := e.Size()
		return render.ResizeEvent{Width: w, Height: h}, true

	case *tcell.EventMouse:
		x, y := e.Position()
		return render.MouseEvent{
			Kind: convertMouseKind(e.Buttons()),
			X:    x,
			Y:    y,
			Mods: convertMods(e.Modifiers()),
		}, true

	case *tcell.EventFocus:
		return render.FocusEvent{Gained: e.Focused}, true
	}
	return nil, false
}

// Cleanup finalizes the screen and stops the event pump.
func (r *Renderer) Cleanup() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cleanedUp {
		return nil
	}
	r.cleanedUp = true
	close(r.quit)
	r.screen.Fini()
	return nil
}

// splitGlyph decomposes a grapheme cluster into tcell's primary rune
// plus combining runes.
func splitGlyph(glyph string) (rune, []rune) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return ' ', nil
	}
	if len(runes) == 1 {
		return runes[0], nil
	}
	return runes[0], runes[1:]
}

func convertStyle(s cellbuf.Style) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(convertColor(s.FG)).
		Background(convertColor(s.BG))

	if s.Mods.Contains(cellbuf.ModBold) {
		style = style.Bold(true)
	}
	if s.Mods.Contains(cellbuf.ModDim) {
		style = style.Dim(true)
	}
	if s.Mods.Contains(cellbuf.ModItalic) {
		style = style.Italic(true)
	}
	if s.Mods.Contains(cellbuf.ModUnderline) {
		style = style.Underline(true)
	}
	if s.Mods.Contains(cellbuf.ModBlink) || s.Mods.Contains(cellbuf.ModRapidBlink) {
		style = style.Blink(true)
	}
	if s.Mods.Contains(cellbuf.ModReverse) {
		style = style.Reverse(true)
	}
	if s.Mods.Contains(cellbuf.ModCrossedOut) {
		style = style.StrikeThrough(true)
	}
	return style
}

func convertColor(c cellbuf.Color) tcell.Color {
	switch c.Mode {
	case cellbuf.Color16, cellbuf.Color256:
		return tcell.PaletteColor(int(c.Value))
	case cellbuf.ColorRGB:
		r, g, b := c.RGBComponents()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	default:
		return tcell.ColorDefault
	}
}

func convertMods(m tcell.ModMask) render.Mod {
	var mods render.Mod
	if m&tcell.ModCtrl != 0 {
		mods |= render.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= render.ModAlt
	}
	if m&tcell.ModShift != 0 {
		mods |= render.ModShift
	}
	return mods
}

func convertKey(e *tcell.EventKey) render.KeyEvent {
	mods := convertMods(e.Modifiers())

	if e.Key() >= tcell.KeyCtrlA && e.Key() <= tcell.KeyCtrlZ {
		switch e.Key() {
		case tcell.KeyTab, tcell.KeyEnter, tcell.KeyBackspace:
			// Named keys that share control codes.
		default:
			return render.KeyEvent{
				Code: render.KeyRune,
				Rune: rune('a' + e.Key() - tcell.KeyCtrlA),
				Mods: mods | render.ModCtrl,
			}
		}
	}

	code, known := keyTable[e.Key()]
	if !known {
		code = render.KeyRune
	}
	return render.KeyEvent{Code: code, Rune: e.Rune(), Mods: mods}
}

var keyTable = map[tcell.Key]render.Key{
	tcell.KeyRune:       render.KeyRune,
	tcell.KeyUp:         render.KeyUp,
	tcell.KeyDown:       render.KeyDown,
	tcell.KeyLeft:       render.KeyLeft,
	tcell.KeyRight:      render.KeyRight,
	tcell.KeyHome:       render.KeyHome,
	tcell.KeyEnd:        render.KeyEnd,
	tcell.KeyPgUp:       render.KeyPageUp,
	tcell.KeyPgDn:       render.KeyPageDown,
	tcell.KeyInsert:     render.KeyInsert,
	tcell.KeyDelete:     render.KeyDelete,
	tcell.KeyBackspace:  render.KeyBackspace,
	tcell.KeyBackspace2: render.KeyBackspace,
	tcell.KeyTab:        render.KeyTab,
	tcell.KeyEnter:      render.KeyEnter,
	tcell.KeyEscape:     render.KeyEscape,
	tcell.KeyF1:         render.KeyF1,
	tcell.KeyF2:         render.KeyF2,
	tcell.KeyF3:         render.KeyF3,
	tcell.KeyF4:         render.KeyF4,
	tcell.KeyF5:         render.KeyF5,
	tcell.KeyF6:         render.KeyF6,
	tcell.KeyF7:         render.KeyF7,
	tcell.KeyF8:         render.KeyF8,
	tcell.KeyF9:         render.KeyF9,
	tcell.KeyF10:        render.KeyF10,
	tcell.KeyF11:        render.KeyF11,
	tcell.KeyF12:        render.KeyF12,
}

var _ render.Renderer = (*Renderer)(nil)
