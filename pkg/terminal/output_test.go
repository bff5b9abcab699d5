package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintln(t *testing.T) {
	var buf bytes.Buffer
	w := NewWithOutput(&buf)
	w.Println("loaded %d panels", 3)
	if got := buf.String(); got != "loaded 3 panels\n" && !strings.Contains(got, "loaded 3 panels") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestErrorPrefixed(t *testing.T) {
	var buf bytes.Buffer
	w := NewWithOutput(&buf)
	w.Error("no such file: %s", "dash.yaml")
	if !strings.Contains(buf.String(), "error: no such file: dash.yaml") {
		t.Errorf("missing error prefix in %q", buf.String())
	}
}

func TestSuccessAndWarnMarkers(t *testing.T) {
	var buf bytes.Buffer
	w := NewWithOutput(&buf)
	w.Success("wrote demo.yaml")
	w.Warn("state persistence disabled")
	out := buf.String()
	if !strings.Contains(out, "✓ wrote demo.yaml") {
		t.Errorf("missing success marker in %q", out)
	}
	if !strings.Contains(out, "warning: state persistence disabled") {
		t.Errorf("missing warning prefix in %q", out)
	}
}

func TestMarkdownFallsBackToPlainText(t *testing.T) {
	var buf bytes.Buffer
	w := NewWithOutput(&buf)
	w.renderer = nil
	if err := w.Markdown("# Title"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "# Title") {
		t.Errorf("plain fallback missing, got %q", buf.String())
	}
}

func TestListBullets(t *testing.T) {
	var buf bytes.Buffer
	w := NewWithOutput(&buf)
	w.List([]string{"one", "two"})
	out := buf.String()
	if !strings.Contains(out, "one") || !strings.Contains(out, "two") {
		t.Errorf("missing items in %q", out)
	}
}
