// Package config loads the application configuration from
// ~/.config/ai-map/config.toml with cached reloads.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dklevakin/ai-map/internal/appdirs"
	"github.com/dklevakin/ai-map/internal/theme"
)

const (
	defaultAddr     = "127.0.0.1:8787"
	defaultDataDir  = "data"
	defaultLanguage = "ua"
	defaultTheme    = "auto"
	defaultDebounce = 250 * time.Millisecond
)

// Config represents config.toml.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr       string `toml:"addr"`
	DataDir    string `toml:"data_dir"`
	Watch      *bool  `toml:"watch"`
	DebounceMS int    `toml:"debounce_ms"`
	Profiling  bool   `toml:"profiling"`
}

// UIConfig configures language and theme defaults shared by the web and
// terminal frontends.
type UIConfig struct {
	Language    string `toml:"language"`
	Theme       string `toml:"theme"`
	PaletteFile string `toml:"palette_file"`
}

// LoggingConfig configures the slog sink.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:       defaultAddr,
			DataDir:    defaultDataDir,
			DebounceMS: int(defaultDebounce / time.Millisecond),
		},
		UI: UIConfig{
			Language: defaultLanguage,
			Theme:    defaultTheme,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Debounce returns the watcher debounce window.
func (s ServerConfig) Debounce() time.Duration {
	if s.DebounceMS <= 0 {
		return defaultDebounce
	}
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// WatchEnabled reports whether dataset watching is on; it defaults to true.
func (s ServerConfig) WatchEnabled() bool {
	return s.Watch == nil || *s.Watch
}

// DefaultPath returns the default global config path.
func DefaultPath() (string, error) {
	dir, err := appdirs.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Loader caches config values and reloads when the file changes.
type Loader struct {
	path     string
	lastRead fileState
	cached   Config
}

type fileState struct {
	modTime time.Time
	size    int64
}

// NewLoader creates a config loader for the provided path.
func NewLoader(path string) *Loader {
	return &Loader{
		path:   strings.TrimSpace(path),
		cached: Defaults(),
	}
}

// Load returns the cached config, reloading if the file changed. A missing
// file yields the defaults.
func (l *Loader) Load() (Config, error) {
	if l == nil {
		return Defaults(), errors.New("nil loader")
	}
	path := strings.TrimSpace(l.path)
	if path == "" {
		return Defaults(), errors.New("empty config path")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.cached = Defaults()
			l.lastRead = fileState{}
			return l.cached, nil
		}
		return Defaults(), err
	}
	state := fileState{modTime: info.ModTime(), size: info.Size()}
	if state == l.lastRead {
		return l.cached, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), err
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	applyDefaults(&cfg)
	l.cached = cfg
	l.lastRead = state
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		cfg.Server.Addr = defaultAddr
	}
	if strings.TrimSpace(cfg.Server.DataDir) == "" {
		cfg.Server.DataDir = defaultDataDir
	}
	if cfg.Server.DebounceMS <= 0 {
		cfg.Server.DebounceMS = int(defaultDebounce / time.Millisecond)
	}
	if strings.TrimSpace(cfg.UI.Language) == "" {
		cfg.UI.Language = defaultLanguage
	}
	if strings.TrimSpace(cfg.UI.Theme) == "" {
		cfg.UI.Theme = defaultTheme
	}
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = "info"
	}
	if strings.TrimSpace(cfg.Logging.Format) == "" {
		cfg.Logging.Format = "text"
	}
}

// Palette resolves the effective color palette: the configured theme mode,
// overridden field-by-field by the optional YAML palette file.
func (c Config) Palette() (theme.Palette, error) {
	base := theme.Resolve(theme.Mode(c.UI.Theme))
	path := strings.TrimSpace(c.UI.PaletteFile)
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("config: read palette %s: %w", path, err)
	}
	var override theme.Palette
	if err := yaml.Unmarshal(data, &override); err != nil {
		return base, fmt.Errorf("config: parse palette %s: %w", path, err)
	}
	return override.Normalize(base), nil
}
