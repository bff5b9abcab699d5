package main

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/frescoui/fresco/pkg/dashboard"
	"github.com/frescoui/fresco/pkg/engine"
)

//go:embed demo.yaml
var demoYAML string

//go:embed panels.yaml
var panelsYAML string

//go:embed docs.md
var docsMarkdown string

// writeDemo writes the demo definition into dir and returns the entry
// file path.
func writeDemo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	entry := filepath.Join(dir, "demo.yaml")
	if err := os.WriteFile(entry, []byte(demoYAML), 0o644); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "panels.yaml"), []byte(panelsYAML), 0o644); err != nil {
		return "", err
	}
	return entry, nil
}

// demoFeed simulates CPU, memory and network activity so the demo
// dashboard moves without any real data source.
func demoFeed() dashboard.TickFunc {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var last time.Time
	cpu, mem := 0.3, 0.55
	var network []float64
	tick := 0

	return func(st *engine.DashboardState) bool {
		now := time.Now()
		if now.Sub(last) < 400*time.Millisecond {
			return false
		}
		last = now
		tick++

		cpu = clamp01(cpu + (rng.Float64()-0.5)*0.12)
		mem = clamp01(mem + (rng.Float64()-0.5)*0.04)
		network = append(network, rng.Float64()*100)
		if len(network) > 120 {
			network = network[len(network)-120:]
		}

		lines, _ := st.User["log_lines"].([]string)
		lines = append(lines, fmt.Sprintf("%s sample %d collected", now.Format("15:04:05"), tick))
		if len(lines) > 200 {
			lines = lines[len(lines)-200:]
		}

		st.User["cpu"] = cpu
		st.User["memory"] = mem
		st.User["network"] = network
		st.User["log_lines"] = lines
		st.User["status_line"] = fmt.Sprintf(
			"cpu %3.0f%%  ·  mem %3.0f%%  ·  q quit, Ctrl+R reload, Ctrl+D dismiss",
			cpu*100, mem*100,
		)
		return true
	}
}

func clamp01(v float64) float64 {
	if v < 0.02 {
		return 0.02
	}
	if v > 0.98 {
		return 0.98
	}
	return v
}
