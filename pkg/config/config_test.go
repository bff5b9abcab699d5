package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "tcell", cfg.Backend)
	assert.Equal(t, 150*time.Millisecond, cfg.Watch.Debounce.Std())
	assert.Equal(t, 60, cfg.Render.MaxFPS)
	assert.Equal(t, 512, cfg.Shm.MaxWidth)
}

func TestLoadFromPathMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend: term
watch:
  debounce: 300ms
render:
  max_fps: 30
`), 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "term", cfg.Backend)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce.Std())
	assert.Equal(t, 30, cfg.Render.MaxFPS)
	// Untouched keys keep their defaults.
	assert.Equal(t, "default", cfg.Theme)
	assert.Equal(t, 250*time.Millisecond, cfg.Render.TickRate.Std())
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: term\n"), 0o644))

	t.Setenv("FRESCO_BACKEND", "shm")
	t.Setenv("FRESCO_MAX_FPS", "24")
	t.Setenv("FRESCO_DEBOUNCE", "75ms")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "shm", cfg.Backend)
	assert.Equal(t, 24, cfg.Render.MaxFPS)
	assert.Equal(t, 75*time.Millisecond, cfg.Watch.Debounce.Std())
}

func TestBadDurationRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("watch:\n  debounce: soon\n"), 0o644))

	_, err := LoadFromPath(path)
	assert.ErrorContains(t, err, "invalid duration")
}

func TestUnknownBackendRejected(t *testing.T) {
	cfg := Default()
	cfg.Backend = "vga"
	assert.ErrorContains(t, cfg.Validate(), "unknown backend")
}

func TestZeroFPSRejected(t *testing.T) {
	cfg := Default()
	cfg.Render.MaxFPS = 0
	assert.ErrorContains(t, cfg.Validate(), "max_fps")
}

func TestMissingUserConfigIsFine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tcell", cfg.Backend)
}
