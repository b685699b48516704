// Package config loads the batch renderer's settings from a JSON file and
// layers command-line overrides on top.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"graphite-raster/internal/output"
)

// MaxScale bounds the presentation upscale factor.
const MaxScale = 16

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir"`
	SceneDir   string `json:"scene_dir"`
	TextureDir string `json:"texture_dir"`
	OutputDir  string `json:"output_dir"`

	// Render settings
	Format    string `json:"format"`
	Scale     int    `json:"scale"`
	Thumbnail int    `json:"thumbnail"`
	Workers   int    `json:"workers"`
	LogLevel  string `json:"log_level"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir    string
	SceneDir   string
	TextureDir string
	OutputDir  string
	Format     string
	Scale      int
	Workers    int
	LogLevel   string
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies flag overrides, resolves relative paths against BaseDir
// and fills defaults. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.SceneDir != "" {
		c.SceneDir = flags.SceneDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	c.SceneDir = resolvePath(c.BaseDir, c.SceneDir, "")
	c.TextureDir = resolvePath(c.BaseDir, c.TextureDir, "")
	c.OutputDir = resolvePath(c.BaseDir, c.OutputDir, "renders")

	if c.Format == "" {
		c.Format = string(output.WebP)
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks the settings Resolve cannot default.
func (c *Config) Validate() error {
	if _, err := output.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Scale > MaxScale {
		return fmt.Errorf("config: scale %d above %d", c.Scale, MaxScale)
	}
	if c.Thumbnail < 0 {
		return fmt.Errorf("config: negative thumbnail size %d", c.Thumbnail)
	}
	return nil
}

// OutputFormat returns the parsed Format. Call Validate first.
func (c *Config) OutputFormat() output.Format {
	f, _ := output.ParseFormat(c.Format)
	return f
}

// resolvePath joins a relative p onto base. An empty p becomes base/def, or
// stays empty when def is empty.
func resolvePath(base, p, def string) string {
	switch {
	case p == "" && def == "":
		return ""
	case p == "":
		return filepath.Join(base, def)
	case filepath.IsAbs(p) || base == "":
		return p
	}
	return filepath.Join(base, p)
}
