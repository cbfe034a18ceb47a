package global

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigDir returns ~/.config/taskmind.
func DefaultConfigDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv("TASKMIND_CONFIG_DIR")); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "taskmind"), nil
}
