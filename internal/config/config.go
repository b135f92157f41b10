// Package config loads distfix settings from distfix.toml in the project
// root, layered over user-wide defaults in the XDG config directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gastownhall/distfix/internal/xdg"
)

// FileName is the project configuration file name.
const FileName = "distfix.toml"

// ErrInvalid wraps errors from decoding a configuration file.
var ErrInvalid = errors.New("invalid configuration")

// ErrExists is returned by WriteDefault when the file is already present.
var ErrExists = errors.New("config file already exists")

// Duration is a time.Duration written as a string like "90s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Build configures the frontend build command.
type Build struct {
	Command []string `toml:"command"`
	Timeout Duration `toml:"timeout"`
}

// Config is the merged distfix configuration.
type Config struct {
	OutDir string `toml:"out_dir"`
	Index  string `toml:"index"`
	Anchor string `toml:"anchor"`
	Build  Build  `toml:"build"`
}

// Default returns the built-in configuration, matching a stock Vite project.
func Default() *Config {
	return &Config{
		OutDir: "dist",
		Index:  "index.html",
		Anchor: "app",
		Build: Build{
			Command: []string{"npm", "run", "build"},
			Timeout: Duration{5 * time.Minute},
		},
	}
}

// Load returns defaults overlaid with the user file and then the project
// file in projectDir. Missing files are skipped.
func Load(projectDir string) (*Config, error) {
	cfg := Default()
	for _, path := range []string{xdg.UserConfigFile(), filepath.Join(projectDir, FileName)} {
		if err := overlay(cfg, path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func overlay(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	return nil
}

// IndexPath returns the generated HTML document path for projectDir.
func (c *Config) IndexPath(projectDir string) string {
	out := c.OutDir
	if !filepath.IsAbs(out) {
		out = filepath.Join(projectDir, out)
	}
	return filepath.Join(out, c.Index)
}

const defaultFile = `# distfix configuration
# Values shown are the defaults.

# Build output directory, relative to this file.
# out_dir = "dist"

# Generated document rewritten for file:// loading.
# index = "index.html"

# Id of the element the app mounts into.
# anchor = "app"

# [build]
# command = ["npm", "run", "build"]
# timeout = "5m"
`

// WriteDefault creates a commented distfix.toml in projectDir and returns its
// path. It refuses to overwrite an existing file.
func WriteDefault(projectDir string) (string, error) {
	path := filepath.Join(projectDir, FileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return path, fmt.Errorf("creating project directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultFile), 0o644); err != nil {
		return path, fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
