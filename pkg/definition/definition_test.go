package definition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frescoui/fresco/pkg/engine"
	"github.com/frescoui/fresco/pkg/loader"
	"github.com/frescoui/fresco/pkg/ui/cellbuf"
	"github.com/frescoui/fresco/pkg/ui/widgets"
)

func compileString(t *testing.T, content string) (*Dashboard, error) {
	t.Helper()
	return compileFiles(t, map[string]string{"dash.yaml": content}, "dash.yaml")
}

// compileFiles writes the given files to a temp dir, loads the entry
// through a real loader so #load edges resolve, and compiles.
func compileFiles(t *testing.T, files map[string]string, entry string) (*Dashboard, error) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	l := loader.New()
	tree, err := l.LoadTree(filepath.Join(dir, entry))
	require.NoError(t, err)
	abs, err := filepath.Abs(filepath.Join(dir, entry))
	require.NoError(t, err)
	def, err := Compile(abs, tree)
	if err != nil {
		return nil, err
	}
	return def.(*Dashboard), nil
}

func render(t *testing.T, d *Dashboard, state *engine.DashboardState, w, h int) string {
	t.Helper()
	if state == nil {
		state = engine.NewDashboardState()
	}
	buf := cellbuf.New(cellbuf.NewRect(0, 0, w, h))
	d.Render(buf.Area(), buf, state)
	return buf.String()
}

const simpleDash = `
title: Demo
layout:
  direction: vertical
  children:
    - size: 3
      panel: header
    - panel: body
panels:
  header:
    widget: paragraph
    title: Header
    text: static header
  body:
    widget: paragraph
    bind: body_text
`

func TestCompileAndRenderSimpleDashboard(t *testing.T) {
	d, err := compileString(t, simpleDash)
	require.NoError(t, err)
	assert.Equal(t, "Demo", d.Title())

	state := engine.NewDashboardState()
	state.User["body_text"] = "live value"
	buf := cellbuf.New(cellbuf.NewRect(0, 0, 40, 10))
	d.Render(buf.Area(), buf, state)
	out := buf.String()

	assert.Contains(t, out, "Header")
	assert.Contains(t, out, "static header")
	assert.Contains(t, out, "live value")
	assert.Contains(t, out, "╭")
}

func TestPanelLibraryMergesWithEntryOverride(t *testing.T) {
	lib := `
panels:
  shared:
    widget: paragraph
    text: from library
  header:
    widget: paragraph
    text: library header
`
	entry := `
#load "lib.yaml"
layout:
  children:
    - panel: shared
    - panel: header
panels:
  header:
    widget: paragraph
    text: entry header
`
	d, err := compileFiles(t, map[string]string{"lib.yaml": lib, "dash.yaml": entry}, "dash.yaml")
	require.NoError(t, err)

	out := render(t, d, nil, 40, 12)
	assert.Contains(t, out, "from library")
	assert.Contains(t, out, "entry header")
	assert.NotContains(t, out, "library header")
}

func TestUnknownPanelReference(t *testing.T) {
	_, err := compileString(t, "layout:\n  children:\n    - panel: ghost\npanels: {}\n")
	var parseErr *loader.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, `unknown panel "ghost"`)
}

func TestUnknownWidgetRejected(t *testing.T) {
	_, err := compileString(t, `
layout:
  children:
    - panel: p
panels:
  p:
    widget: hologram
`)
	var parseErr *loader.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, `unknown widget "hologram"`)
}

func TestMissingLayoutRejected(t *testing.T) {
	_, err := compileString(t, "panels: {}\n")
	var parseErr *loader.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "no layout")
}

func TestYAMLErrorCarriesLine(t *testing.T) {
	_, err := compileString(t, "title: ok\nlayout: [\n")
	var parseErr *loader.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Greater(t, parseErr.Line, 0)
}

func TestBadRatioRejected(t *testing.T) {
	_, err := compileString(t, `
layout:
  children:
    - panel: p
      ratio: banana
panels:
  p:
    widget: paragraph
    text: x
`)
	var parseErr *loader.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "bad ratio")
}

func TestGaugeBindsFloatState(t *testing.T) {
	d, err := compileString(t, `
layout:
  children:
    - panel: cpu
panels:
  cpu:
    widget: gauge
    title: CPU
    label: "42%"
    bind: cpu
`)
	require.NoError(t, err)

	state := engine.NewDashboardState()
	state.User["cpu"] = 0.42
	out := render(t, d, state, 30, 5)
	assert.Contains(t, out, "CPU")
	assert.Contains(t, out, "42%")
}

func TestListSelectionPersistsInUIState(t *testing.T) {
	d, err := compileString(t, `
layout:
  children:
    - panel: log
panels:
  log:
    widget: list
    bind: lines
`)
	require.NoError(t, err)

	state := engine.NewDashboardState()
	state.User["lines"] = []string{"alpha", "beta", "gamma"}
	render(t, d, state, 30, 8)

	ls, ok := state.UI["log"].(*widgets.ListState)
	require.True(t, ok, "UI state should hold the list state")
	ls.Select(2, 3)

	out := render(t, d, state, 30, 8)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "gamma")
}

func TestHorizontalSplitHonorsPercent(t *testing.T) {
	d, err := compileString(t, `
layout:
  direction: horizontal
  children:
    - percent: 50
      panel: left
    - panel: right
panels:
  left:
    widget: paragraph
    text: LSIDE
  right:
    widget: paragraph
    text: RSIDE
`)
	require.NoError(t, err)
	out := render(t, d, nil, 40, 5)
	assert.Contains(t, out, "LSIDE")
	assert.Contains(t, out, "RSIDE")
}
