// Package config loads layered settings: compiled defaults, an optional
// YAML file and GOWAYPOINT__ environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/philipparndt/gowaypoint/pkg/interpolate"
)

// EnvPrefix prefixes environment overrides; "__" separates key levels, so
// GOWAYPOINT__EDIT__FILL_SPACING sets edit.fill_spacing
const EnvPrefix = "GOWAYPOINT__"

// ErrInvalid is returned by Validate
var ErrInvalid = errors.New("invalid configuration")

// Config holds all settings
type Config struct {
	Edit  EditConfig  `koanf:"edit"`
	Log   LogConfig   `koanf:"log"`
	Watch WatchConfig `koanf:"watch"`
}

// EditConfig controls the editing session
type EditConfig struct {
	LineSpacing   float64 `koanf:"line_spacing"`   // metres between points in line mode
	FillSpacing   float64 `koanf:"fill_spacing"`   // default metres between points in fill mode
	MaxPoints     int     `koanf:"max_points"`     // cap on points generated by one interpolation
	HitThreshold  float64 `koanf:"hit_threshold"`  // projected metres for a click to select a waypoint; negative accepts any distance
	GroundOffsets bool    `koanf:"ground_offsets"` // translate offsets are ground metres, not projected
}

// LogConfig controls logging
type LogConfig struct {
	Level      string `koanf:"level"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

// WatchConfig controls file watching
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Defaults returns the compiled default settings
func Defaults() map[string]any {
	return map[string]any{
		"edit.line_spacing":   0.0876,
		"edit.fill_spacing":   0.2,
		"edit.max_points":     1000,
		"edit.hit_threshold":  5.0,
		"edit.ground_offsets": false,
		"log.level":           "info",
		"log.file":            "",
		"log.max_size_mb":     32,
		"log.max_backups":     1,
		"watch.debounce":      "500ms",
	}
}

// Load builds the configuration. path names an optional YAML file; an empty
// path skips it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}

// Validate rejects settings no session could work with
func (c *Config) Validate() error {
	var problems []string
	if !(c.Edit.LineSpacing > 0) {
		problems = append(problems, fmt.Sprintf("edit.line_spacing must be positive, got %v", c.Edit.LineSpacing))
	}
	if !(c.Edit.FillSpacing > 0) {
		problems = append(problems, fmt.Sprintf("edit.fill_spacing must be positive, got %v", c.Edit.FillSpacing))
	}
	if c.Edit.MaxPoints < 1 || c.Edit.MaxPoints > interpolate.HardLimit {
		problems = append(problems, fmt.Sprintf("edit.max_points must be in [1, %d], got %d", interpolate.HardLimit, c.Edit.MaxPoints))
	}
	if math.IsNaN(c.Edit.HitThreshold) {
		problems = append(problems, "edit.hit_threshold must be a number")
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		problems = append(problems, "log rotation limits must not be negative")
	}
	if c.Watch.Debounce < 0 {
		problems = append(problems, fmt.Sprintf("watch.debounce must not be negative, got %v", c.Watch.Debounce))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
