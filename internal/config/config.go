package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Layout tunes the tile sizing search used by the treemap engine.
type Layout struct {
	Variant    string  `yaml:"variant"`
	TileTarget float64 `yaml:"tile_target"`
	TileMin    float64 `yaml:"tile_min"`
	TileMax    float64 `yaml:"tile_max"`
}

type Config struct {
	Addr     string `yaml:"addr"`
	Mode     string `yaml:"mode"`
	DataPath string `yaml:"data_path"`
	Theme    string `yaml:"theme"`
	Layout   Layout `yaml:"layout"`

	// ResizeThreshold is the pixel delta below which a resize is ignored.
	ResizeThreshold float64       `yaml:"resize_threshold"`
	DebounceWindow  time.Duration `yaml:"debounce_window"`
}

func Default() Config {
	return Config{
		Addr:     ":8080",
		Mode:     "dev",
		DataPath: "static/courses.json",
		Theme:    "dark",
		Layout: Layout{
			Variant:    "treemap",
			TileTarget: 96,
			TileMin:    44,
			TileMax:    200,
		},
		ResizeThreshold: 8,
		DebounceWindow:  150 * time.Millisecond,
	}
}

// Load reads an optional YAML file and applies COURSEMAP_* environment
// overrides on top of the defaults. A missing file is not an error; a
// malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("COURSEMAP_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("COURSEMAP_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("COURSEMAP_DATA"); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv("COURSEMAP_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("COURSEMAP_VARIANT"); v != "" {
		c.Layout.Variant = v
	}
	if v := os.Getenv("COURSEMAP_RESIZE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.ResizeThreshold = f
		}
	}
}

func (c *Config) validate() error {
	if c.Layout.TileMin <= 0 || c.Layout.TileMax <= 0 || c.Layout.TileTarget <= 0 {
		return fmt.Errorf("layout tile sizes must be positive")
	}
	if c.Layout.TileMin > c.Layout.TileMax {
		return fmt.Errorf("layout tile_min %.0f exceeds tile_max %.0f", c.Layout.TileMin, c.Layout.TileMax)
	}
	return nil
}
