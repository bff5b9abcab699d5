package theme

import (
	"testing"

	"github.com/frescoui/fresco/pkg/ui/cellbuf"
)

func TestByName(t *testing.T) {
	if th := ByName("plain"); th.GaugeLow.FG != cellbuf.Green {
		t.Errorf("plain gauge low = %+v", th.GaugeLow.FG)
	}
	if th := ByName("mono"); th.Title.FG.IsSet() {
		t.Error("mono title should not carry a color")
	}
	if th := ByName("anything-else"); th.Title.FG.Mode != cellbuf.ColorRGB {
		t.Errorf("default theme title = %+v", th.Title.FG)
	}
}

func TestDefaultOverlayHasBlackBackground(t *testing.T) {
	th := Default()
	for name, st := range map[string]cellbuf.Style{
		"text":   th.OverlayText,
		"hint":   th.OverlayHint,
		"footer": th.OverlayFooter,
	} {
		if st.BG != cellbuf.Black {
			t.Errorf("overlay %s background = %+v, want black", name, st.BG)
		}
	}
}
