// Package definition compiles YAML dashboard definitions into
// renderable dashboards. A definition declares a layout tree of splits
// and panels, with each panel bound to a state key; #load lines (plain
// comments to YAML) pull panel libraries from other files, merged in
// dependency order with later files overriding earlier ones.
package definition

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/frescoui/fresco/pkg/engine"
	"github.com/frescoui/fresco/pkg/loader"
	"github.com/frescoui/fresco/pkg/ui/layout"
	"github.com/frescoui/fresco/pkg/ui/theme"
)

// fileSpec is the YAML shape of one definition file. Library files
// usually carry only panels; the entry file must carry a layout.
type fileSpec struct {
	Title  string               `yaml:"title"`
	Theme  string               `yaml:"theme"`
	Layout *nodeSpec            `yaml:"layout"`
	Panels map[string]panelSpec `yaml:"panels"`
}

// nodeSpec is one layout tree node: either a panel leaf or a split
// with children. The sizing fields are the constraint, at most one of
// them set; a node without any gets Fill(1).
type nodeSpec struct {
	Panel string `yaml:"panel"`

	Direction string      `yaml:"direction"`
	Margin    int         `yaml:"margin"`
	Children  []*nodeSpec `yaml:"children"`

	Size    *int   `yaml:"size"`
	Percent *int   `yaml:"percent"`
	Ratio   string `yaml:"ratio"`
	Min     *int   `yaml:"min"`
	Max     *int   `yaml:"max"`
	Fill    *int   `yaml:"fill"`
}

type panelSpec struct {
	Widget string  `yaml:"widget"`
	Title  string  `yaml:"title"`
	Bind   string  `yaml:"bind"`
	Text   string  `yaml:"text"`
	Label  string  `yaml:"label"`
	Align  string  `yaml:"align"`
	Wrap   *bool   `yaml:"wrap"`
	Max    float64 `yaml:"max"`
}

var validWidgets = map[string]bool{
	"paragraph": true,
	"gauge":     true,
	"list":      true,
	"sparkline": true,
	"tabs":      true,
}

// Compile is the engine.CompileFunc for the YAML format.
func Compile(entry string, files map[string]*loader.LoadedFile) (engine.Definition, error) {
	order := mergeOrder(entry, files)

	merged := fileSpec{Panels: make(map[string]panelSpec)}
	for _, path := range order {
		f := files[path]
		var spec fileSpec
		if err := yaml.Unmarshal([]byte(f.Content), &spec); err != nil {
			return nil, yamlParseError(path, err)
		}
		for name, p := range spec.Panels {
			merged.Panels[name] = p
		}
		if path == entry {
			merged.Title = spec.Title
			merged.Theme = spec.Theme
			merged.Layout = spec.Layout
		}
	}

	if merged.Layout == nil {
		return nil, &loader.ParseError{Path: entry, Message: "definition has no layout"}
	}
	th := theme.ByName(merged.Theme)

	root, err := buildNode(entry, merged.Layout, merged.Panels, th)
	if err != nil {
		return nil, err
	}
	return &Dashboard{title: merged.Title, theme: th, root: root}, nil
}

// mergeOrder lists files dependencies-first with entry last, so the
// entry's panels override its libraries'.
func mergeOrder(entry string, files map[string]*loader.LoadedFile) []string {
	var order []string
	seen := make(map[string]bool)
	var walk func(path string)
	walk = func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		if f, ok := files[path]; ok {
			for _, dep := range f.Dependencies {
				walk(dep)
			}
		}
		order = append(order, path)
	}
	walk(entry)
	return order
}

func buildNode(path string, spec *nodeSpec, panels map[string]panelSpec, th *theme.Theme) (node, error) {
	if spec.Panel != "" {
		p, ok := panels[spec.Panel]
		if !ok {
			return nil, &loader.ParseError{
				Path:    path,
				Message: fmt.Sprintf("layout references unknown panel %q", spec.Panel),
			}
		}
		if !validWidgets[p.Widget] {
			return nil, &loader.ParseError{
				Path:    path,
				Message: fmt.Sprintf("panel %q has unknown widget %q", spec.Panel, p.Widget),
			}
		}
		return &panelNode{name: spec.Panel, spec: p, theme: th}, nil
	}

	if len(spec.Children) == 0 {
		return nil, &loader.ParseError{Path: path, Message: "layout node needs a panel or children"}
	}
	dir := layout.Vertical
	switch spec.Direction {
	case "", "vertical":
	case "horizontal":
		dir = layout.Horizontal
	default:
		return nil, &loader.ParseError{
			Path:    path,
			Message: fmt.Sprintf("unknown direction %q", spec.Direction),
		}
	}

	split := &splitNode{direction: dir, margin: spec.Margin}
	for _, child := range spec.Children {
		c, err := constraintOf(path, child)
		if err != nil {
			return nil, err
		}
		built, err := buildNode(path, child, panels, th)
		if err != nil {
			return nil, err
		}
		split.constraints = append(split.constraints, c)
		split.children = append(split.children, built)
	}
	return split, nil
}

func constraintOf(path string, spec *nodeSpec) (layout.Constraint, error) {
	switch {
	case spec.Size != nil:
		return layout.Length(*spec.Size), nil
	case spec.Percent != nil:
		return layout.Percentage(*spec.Percent), nil
	case spec.Ratio != "":
		num, den, ok := strings.Cut(spec.Ratio, "/")
		n, err1 := strconv.Atoi(strings.TrimSpace(num))
		d, err2 := strconv.Atoi(strings.TrimSpace(den))
		if !ok || err1 != nil || err2 != nil || d == 0 {
			return layout.Constraint{}, &loader.ParseError{
				Path:    path,
				Message: fmt.Sprintf("bad ratio %q, want \"num/den\"", spec.Ratio),
			}
		}
		return layout.Ratio(n, d), nil
	case spec.Min != nil:
		return layout.Min(*spec.Min), nil
	case spec.Max != nil:
		return layout.Max(*spec.Max), nil
	case spec.Fill != nil:
		return layout.Fill(*spec.Fill), nil
	default:
		return layout.Fill(1), nil
	}
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// yamlParseError converts a yaml.v3 error into the loader taxonomy,
// recovering the line number from the error text when present.
func yamlParseError(path string, err error) error {
	msg := err.Error()
	line := 0
	if m := yamlLineRe.FindStringSubmatch(msg); m != nil {
		line, _ = strconv.Atoi(m[1])
	}
	msg = strings.TrimPrefix(msg, "yaml: ")
	return &loader.ParseError{Path: path, Line: line, Message: msg}
}
