package definition

import (
	"fmt"

	"github.com/frescoui/fresco/pkg/engine"
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
	"github.com/frescoui/fresco/pkg/ui/layout"
	"github.com/frescoui/fresco/pkg/ui/symbols"
	"github.com/frescoui/fresco/pkg/ui/theme"
	"github.com/frescoui/fresco/pkg/ui/widgets"
)

// Dashboard is a compiled definition.
type Dashboard struct {
	title string
	theme *theme.Theme
	root  node
}

// Title returns the definition's declared title.
func (d *Dashboard) Title() string { return d.title }

// Theme returns the theme the definition selected.
func (d *Dashboard) Theme() *theme.Theme { return d.theme }

// Render draws the layout tree over a themed background.
func (d *Dashboard) Render(area cellbuf.Rect, buf *cellbuf.Buffer, state *engine.DashboardState) {
	buf.Fill(area, " ", d.theme.Background)
	d.root.render(area, buf, state)
}

type node interface {
	render(area cellbuf.Rect, buf *cellbuf.Buffer, state *engine.DashboardState)
}

type splitNode struct {
	direction   layout.Direction
	margin      int
	constraints []layout.Constraint
	children    []node
}

func (n *splitNode) render(area cellbuf.Rect, buf *cellbuf.Buffer, state *engine.DashboardState) {
	sections := layout.Solve(n.constraints, n.direction, n.margin, area)
	for i, child := range n.children {
		if i >= len(sections) || sections[i].IsEmpty() {
			continue
		}
		child.render(sections[i], buf, state)
	}
}

type panelNode struct {
	name  string
	spec  panelSpec
	theme *theme.Theme
}

func (n *panelNode) render(area cellbuf.Rect, buf *cellbuf.Buffer, state *engine.DashboardState) {
	th := n.theme
	block := widgets.NewBlock()
	block.BorderStyle = th.Border
	block.TitleStyle = th.Title
	if n.spec.Title != "" {
		block = block.WithTitle(" " + n.spec.Title + " ")
	}

	value := state.User[n.spec.Bind]

	switch n.spec.Widget {
	case "paragraph":
		text := n.spec.Text
		if n.spec.Bind != "" {
			text = asString(value)
		}
		wrap := n.spec.Wrap == nil || *n.spec.Wrap
		p := widgets.Paragraph{Text: text, Style: th.Text, Wrap: wrap, Block: &block}
		p.Align = alignmentOf(n.spec.Align)
		p.Render(area, buf)

	case "gauge":
		g := widgets.Gauge{
			Ratio:      asFloat(value),
			Label:      n.spec.Label,
			FillStyle:  th.GaugeLow,
			EmptyStyle: th.GaugeEmpty,
			LabelStyle: th.Text,
			Thresholds: []widgets.Threshold{
				{Above: 0.7, Style: th.GaugeMid},
				{Above: 0.9, Style: th.GaugeHigh},
			},
			Block: &block,
		}
		if g.Label == "" {
			g.Label = fmt.Sprintf("%d%%", int(asFloat(value)*100))
		}
		g.Render(area, buf)

	case "list":
		l := widgets.List{
			Items:           asStrings(value),
			Style:           th.Text,
			SelectedStyle:   th.ListSelected,
			HighlightSymbol: symbols.HighlightSymbol,
			Block:           &block,
		}
		l.RenderStateful(area, buf, n.listState(state))

	case "sparkline":
		s := widgets.Sparkline{
			Data:  asFloats(value),
			Max:   n.spec.Max,
			Style: th.Sparkline,
			Block: &block,
		}
		s.Render(area, buf)

	case "tabs":
		t := widgets.NewTabs(asStrings(value)...)
		t.Style = th.TabInactive
		t.SelectedStyle = th.TabActive
		t.Selected = asInt(state.UI[n.name+".tab"])
		t.Block = &block
		t.Render(area, buf)
	}
}

// listState finds or creates the panel's ListState in the UI state, so
// the selection survives reloads.
func (n *panelNode) listState(state *engine.DashboardState) *widgets.ListState {
	if ls, ok := state.UI[n.name].(*widgets.ListState); ok {
		return ls
	}
	ls := &widgets.ListState{Selected: -1}
	state.UI[n.name] = ls
	return ls
}

func alignmentOf(s string) widgets.Alignment {
	switch s {
	case "center":
		return widgets.AlignCenter
	case "right":
		return widgets.AlignRight
	default:
		return widgets.AlignLeft
	}
}

// State values arrive through map[string]any, so numbers may be any of
// the types an update function or JSON restore produces.
func asFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	default:
		return 0
	}
}

func asInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	default:
		return 0
	}
}

func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}

func asStrings(v any) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, len(x))
		for i, e := range x {
			out[i] = asString(e)
		}
		return out
	default:
		return nil
	}
}

func asFloats(v any) []float64 {
	switch x := v.(type) {
	case []float64:
		return x
	case []any:
		out := make([]float64, len(x))
		for i, e := range x {
			out[i] = asFloat(e)
		}
		return out
	default:
		return nil
	}
}
