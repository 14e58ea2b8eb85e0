// Package appdirs resolves the per-user directories of the application.
package appdirs

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "ai-map"

// ConfigDir returns the user configuration directory, creating it on first
// use.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return ensure(filepath.Join(base, appName))
}

// CacheDir returns the user cache directory, creating it on first use.
func CacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return ensure(filepath.Join(base, appName))
}

func ensure(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create dir %s: %w", dir, err)
	}
	return dir, nil
}
