// Package sim provides a renderer over a tcell simulation screen for
// full-stack tests: frames pass through the real tcell conversion path
// and tests inject input and capture the simulated screen.
package sim

import (
	"strings"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/frescoui/fresco/pkg/render"
	rtcell "github.com/frescoui/fresco/pkg/render/tcell"
)

// Renderer is a tcell renderer whose screen is simulated in memory.
type Renderer struct {
	*rtcell.Renderer
	screen tcellv2.SimulationScreen
}

// New creates a simulation renderer with the given dimensions.
func New(width, height int) (*Renderer, error) {
	screen := tcellv2.NewSimulationScreen("")
	inner, err := rtcell.NewWithScreen(screen)
	if err != nil {
		return nil, err
	}
	screen.SetSize(width, height)
	return &Renderer{Renderer: inner, screen: screen}, nil
}

// Resize changes the simulated screen size and posts the resize event a
// real terminal would deliver.
func (r *Renderer) Resize(width, height int) {
	r.screen.SetSize(width, height)
	r.screen.PostEvent(tcellv2.NewEventResize(width, height))
}

// InjectKey injects one keypress.
func (r *Renderer) InjectKey(key tcellv2.Key, ru rune, mods tcellv2.ModMask) {
	r.screen.InjectKey(key, ru, mods)
}

// InjectKeys injects a string one rune keypress at a time.
func (r *Renderer) InjectKeys(s string) {
	for _, ru := range s {
		r.screen.InjectKey(tcellv2.KeyRune, ru, tcellv2.ModNone)
	}
}

// Capture returns the simulated screen content as newline-joined rows.
func (r *Renderer) Capture() string {
	cells, w, h := r.screen.GetContents()
	var lines []string
	for y := 0; y < h; y++ {
		var line strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				line.WriteRune(' ')
				continue
			}
			for _, ru := range c.Runes {
				line.WriteRune(ru)
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// ContainsText reports whether text appears on any captured row.
func (r *Renderer) ContainsText(text string) bool {
	return strings.Contains(r.Capture(), text)
}

// FindText returns the (x, y) cell position of text, or (-1, -1).
func (r *Renderer) FindText(text string) (int, int) {
	for y, line := range strings.Split(r.Capture(), "\n") {
		if x := strings.Index(line, text); x >= 0 {
			return len([]rune(line[:x])), y
		}
	}
	return -1, -1
}

var _ render.Renderer = (*Renderer)(nil)
