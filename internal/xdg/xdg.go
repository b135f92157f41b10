// Package xdg resolves the per-user distfix configuration location following
// the XDG Base Directory layout.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "distfix"

// ConfigHome returns $XDG_CONFIG_HOME, falling back to ~/.config.
func ConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// ConfigDir returns ConfigHome()/distfix.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), appName)
}

// UserConfigFile returns the path of the user-wide defaults file.
func UserConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}
