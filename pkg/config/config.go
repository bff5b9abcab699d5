// Package config loads fresco's configuration with the usual
// precedence: built-in defaults, then ~/.config/fresco/config.yaml,
// then FRESCO_* environment variables, then command-line flags (applied
// by the caller).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "150ms" or "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full runtime configuration.
type Config struct {
	// Backend selects the renderer: "tcell", "term" or "shm".
	Backend string `yaml:"backend"`
	// Theme names the color theme.
	Theme string `yaml:"theme"`

	Watch  WatchConfig  `yaml:"watch"`
	Render RenderConfig `yaml:"render"`
	Shm    ShmConfig    `yaml:"shm"`
	Debug  DebugConfig  `yaml:"debug"`
	State  StateConfig  `yaml:"state"`
	Log    LogConfig    `yaml:"log"`
}

// WatchConfig tunes the file watcher.
type WatchConfig struct {
	Debounce  Duration `yaml:"debounce"`
	ForcePoll bool     `yaml:"force_poll"`
}

// RenderConfig tunes the event/render loop.
type RenderConfig struct {
	TickRate Duration `yaml:"tick_rate"`
	MaxFPS   int      `yaml:"max_fps"`
}

// ShmConfig configures the shared-memory backend.
type ShmConfig struct {
	// Path is the segment file; empty picks a per-run default.
	Path      string `yaml:"path"`
	MaxWidth  int    `yaml:"max_width"`
	MaxHeight int    `yaml:"max_height"`
}

// DebugConfig configures the optional debug HTTP server.
type DebugConfig struct {
	// Addr like "127.0.0.1:6060"; empty disables the server.
	Addr string `yaml:"addr"`
}

// StateConfig configures state persistence.
type StateConfig struct {
	// Path to the SQLite database; empty disables persistence.
	Path string `yaml:"path"`
}

// LogConfig configures the session logger.
type LogConfig struct {
	Level string `yaml:"level"`
	// Dir is the log root; empty disables logging.
	Dir string `yaml:"dir"`
}

// Default returns the documented defaults.
func Default() *Config {
	return &Config{
		Backend: "tcell",
		Theme:   "default",
		Watch: WatchConfig{
			Debounce: Duration(150 * time.Millisecond),
		},
		Render: RenderConfig{
			TickRate: Duration(250 * time.Millisecond),
			MaxFPS:   60,
		},
		Shm: ShmConfig{
			MaxWidth:  512,
			MaxHeight: 256,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   defaultLogDir(),
		},
	}
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fresco", "logs")
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fresco", "config.yaml")
}

// Load loads configuration from the default location. A missing config
// file is not an error.
func Load() (*Config, error) {
	cfg := Default()
	if path := DefaultPath(); path != "" {
		if err := loadAndMerge(cfg, path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadAndMerge(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// Unmarshal over the defaults: absent keys keep their values.
	return yaml.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FRESCO_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("FRESCO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("FRESCO_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Watch.Debounce = Duration(d)
		}
	}
	if v := os.Getenv("FRESCO_TICK_RATE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Render.TickRate = Duration(d)
		}
	}
	if v := os.Getenv("FRESCO_MAX_FPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Render.MaxFPS = n
		}
	}
	if v := os.Getenv("FRESCO_SHM_PATH"); v != "" {
		cfg.Shm.Path = v
	}
	if v := os.Getenv("FRESCO_DEBUG_ADDR"); v != "" {
		cfg.Debug.Addr = v
	}
	if v := os.Getenv("FRESCO_STATE_PATH"); v != "" {
		cfg.State.Path = v
	}
	if v := os.Getenv("FRESCO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FRESCO_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
}

// Validate rejects configurations the runtime cannot run with.
func (c *Config) Validate() error {
	switch c.Backend {
	case "tcell", "term", "shm":
	default:
		return fmt.Errorf("unknown backend %q (want tcell, term or shm)", c.Backend)
	}
	if c.Render.MaxFPS <= 0 {
		return fmt.Errorf("max_fps must be positive, got %d", c.Render.MaxFPS)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative")
	}
	if c.Shm.MaxWidth <= 0 || c.Shm.MaxHeight <= 0 {
		return fmt.Errorf("shm capacity must be positive, got %dx%d", c.Shm.MaxWidth, c.Shm.MaxHeight)
	}
	return nil
}
