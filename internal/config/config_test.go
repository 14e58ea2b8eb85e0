package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dklevakin/ai-map/internal/theme"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(filepath.Join(dir, "missing.toml"))
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != defaultAddr {
		t.Fatalf("Server.Addr=%q want %q", cfg.Server.Addr, defaultAddr)
	}
	if cfg.UI.Language != defaultLanguage {
		t.Fatalf("UI.Language=%q want %q", cfg.UI.Language, defaultLanguage)
	}
	if !cfg.Server.WatchEnabled() {
		t.Fatalf("WatchEnabled()=false want true by default")
	}
	if cfg.Server.Debounce() != defaultDebounce {
		t.Fatalf("Debounce()=%v want %v", cfg.Server.Debounce(), defaultDebounce)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := []byte(`
[server]
addr = "0.0.0.0:9090"
data_dir = "/srv/ai-map"
watch = false
debounce_ms = 100

[ui]
language = "en"
theme = "light"

[logging]
level = "debug"
format = "json"
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:9090" {
		t.Fatalf("Server.Addr=%q", cfg.Server.Addr)
	}
	if cfg.Server.DataDir != "/srv/ai-map" {
		t.Fatalf("Server.DataDir=%q", cfg.Server.DataDir)
	}
	if cfg.Server.WatchEnabled() {
		t.Fatalf("WatchEnabled()=true want false")
	}
	if cfg.UI.Language != "en" || cfg.UI.Theme != "light" {
		t.Fatalf("UI=%+v", cfg.UI)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("Logging=%+v", cfg.Logging)
	}
}

func TestLoadCachesUntilFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[ui]\nlanguage = \"en\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	loader := NewLoader(path)
	first, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	second, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if first != second {
		t.Fatalf("cached reload differs: %+v vs %+v", first, second)
	}
}

func TestPaletteOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.yaml")
	if err := os.WriteFile(path, []byte("surface: \"#000000\"\n"), 0o600); err != nil {
		t.Fatalf("write palette: %v", err)
	}
	cfg := Defaults()
	cfg.UI.Theme = "dark"
	cfg.UI.PaletteFile = path
	palette, err := cfg.Palette()
	if err != nil {
		t.Fatalf("Palette() error: %v", err)
	}
	if palette.Surface != "#000000" {
		t.Fatalf("Surface=%q want override", palette.Surface)
	}
	if palette.NodeText != theme.Dark().NodeText {
		t.Fatalf("NodeText=%q want dark fallback", palette.NodeText)
	}
}
