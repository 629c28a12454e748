package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Addr != ":8080" || cfg.Theme != "dark" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Layout.Variant != "treemap" || cfg.Layout.TileTarget != 96 {
		t.Fatalf("unexpected layout defaults: %+v", cfg.Layout)
	}
	if cfg.ResizeThreshold != 8 || cfg.DebounceWindow != 150*time.Millisecond {
		t.Fatalf("unexpected interaction defaults: %+v", cfg)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursemap.yaml")
	doc := "addr: \":9090\"\ntheme: light\nlayout:\n  variant: sunburst\n  tile_min: 30\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.Theme != "light" {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.Layout.Variant != "sunburst" || cfg.Layout.TileMin != 30 {
		t.Fatalf("layout overrides not applied: %+v", cfg.Layout)
	}
	// Untouched fields keep their defaults.
	if cfg.Layout.TileMax != 200 || cfg.DataPath != "static/courses.json" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursemap.yaml")
	if err := os.WriteFile(path, []byte("theme: light\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("COURSEMAP_THEME", "dark")
	t.Setenv("COURSEMAP_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "dark" || cfg.Addr != ":7070" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_RejectsInvertedTileBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursemap.yaml")
	doc := "layout:\n  tile_min: 300\n  tile_max: 100\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "tile_min") {
		t.Fatalf("expected tile bound error, got %v", err)
	}
}

func TestLoad_MalformedYAMLIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursemap.yaml")
	if err := os.WriteFile(path, []byte("addr: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed yaml must be an error")
	}
}
