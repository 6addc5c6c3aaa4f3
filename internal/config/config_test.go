package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/midgard-terrain/internal/engine/lighting"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/noise"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Graphics.FOV)
	}

	// Test terrain defaults
	if cfg.Terrain.GridWidth != 100 || cfg.Terrain.GridHeight != 100 {
		t.Errorf("expected 100x100 grid, got %dx%d", cfg.Terrain.GridWidth, cfg.Terrain.GridHeight)
	}

	// Test noise defaults
	if got := cfg.Noise.Params(); got != terrain.DefaultNoiseParams() {
		t.Errorf("expected default noise params, got %+v", got)
	}
	if cfg.Noise.Kind != string(noise.KindClassic) {
		t.Errorf("expected classic noise, got %s", cfg.Noise.Kind)
	}

	// Test camera defaults
	if cfg.Camera.Distance != 2 {
		t.Errorf("expected camera distance 2, got %f", cfg.Camera.Distance)
	}
	if cfg.Camera.Target != [3]float32{0, 0.5, 0} {
		t.Errorf("expected camera target (0,0.5,0), got %v", cfg.Camera.Target)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "terrain.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true

terrain:
  grid_width: 64
  grid_height: 32
  workers: 4

noise:
  kind: opensimplex
  seed: 42
  octaves: 6

camera:
  target: [1, 2, 3]
  distance: 5

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify loaded values
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if got := cfg.Terrain.Grid(); got != (terrain.GridParams{Width: 64, Height: 32}) {
		t.Errorf("expected 64x32 grid, got %+v", got)
	}
	if cfg.Terrain.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Terrain.Workers)
	}
	if cfg.Noise.Kind != "opensimplex" || cfg.Noise.Seed != 42 || cfg.Noise.Octaves != 6 {
		t.Errorf("unexpected noise section %+v", cfg.Noise)
	}
	if cfg.Camera.Target != [3]float32{1, 2, 3} {
		t.Errorf("expected target [1 2 3], got %v", cfg.Camera.Target)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}

	// Values not in the file keep their defaults
	if cfg.Graphics.Near != 0.1 {
		t.Errorf("expected near 0.1 to survive, got %f", cfg.Graphics.Near)
	}
	if cfg.Noise.Persistence != 0.5 {
		t.Errorf("expected persistence 0.5 to survive, got %f", cfg.Noise.Persistence)
	}
	if cfg.Camera.MaxDistance != 10 {
		t.Errorf("expected max distance 10 to survive, got %f", cfg.Camera.MaxDistance)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	if err := os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/terrain.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "terrain.yaml")

	cfg := Default()
	cfg.Terrain.GridWidth = 256
	cfg.Noise.Kind = string(noise.KindAquilax)
	cfg.Camera.Pitch = 45

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded config differs:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"narrow grid", func(c *Config) { c.Terrain.GridWidth = 1 }, "terrain grid"},
		{"zero octaves", func(c *Config) { c.Noise.Octaves = 0 }, "octaves"},
		{"unknown noise", func(c *Config) { c.Noise.Kind = "worley" }, "noise kind"},
		{"zero min distance", func(c *Config) { c.Camera.MinDistance = 0 }, "min_distance"},
		{"inverted distances", func(c *Config) { c.Camera.MaxDistance = 0.1 }, "max_distance"},
		{"zero tiling", func(c *Config) { c.Textures.Tiling = 0 }, "tiling"},
		{"far before near", func(c *Config) { c.Graphics.Far = 0.01 }, "near/far"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention %q", err, tt.field)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Terrain.GridHeight = 0
	cfg.Noise.Octaves = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "terrain grid") || !strings.Contains(msg, "octaves") {
		t.Errorf("expected both problems reported, got %q", msg)
	}
}

func TestNoiseField(t *testing.T) {
	cfg := Default()
	cfg.Noise.Kind = "SHUFFLED"
	cfg.Noise.Seed = 7

	field, err := cfg.Noise.Field()
	if err != nil {
		t.Fatalf("Field: %v", err)
	}
	if _, ok := field.(*noise.Perlin); !ok {
		t.Errorf("expected *noise.Perlin, got %T", field)
	}

	cfg.Noise.Kind = "worley"
	if _, err := cfg.Noise.Field(); !errors.Is(err, noise.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestCameraOptions(t *testing.T) {
	cfg := Default()
	cfg.Camera.Target = [3]float32{1, 2, 3}
	cfg.Camera.Yaw = 15

	opts := cfg.Camera.Options()
	if opts.Target.Array() != cfg.Camera.Target {
		t.Errorf("target: got %v, want %v", opts.Target.Array(), cfg.Camera.Target)
	}
	if opts.Yaw != 15 || opts.Distance != cfg.Camera.Distance {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !strings.Contains(strings.ToLower(dir), "midgard") {
		t.Errorf("expected config dir to name the app, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	os.Chdir(tmpDir)

	// No config file
	if path := findConfigFile(); path != "" && filepath.Dir(path) == "." {
		t.Errorf("expected no local config, got %s", path)
	}

	// Create config in current directory
	if err := os.WriteFile("terrain.yaml", []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path != "./terrain.yaml" {
		t.Errorf("expected ./terrain.yaml, got %s", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected debug level, got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "grid flag sets both sides",
			setup: func() { *flagGrid = 32 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.GridWidth != 32 || cfg.Terrain.GridHeight != 32 {
					t.Errorf("expected 32x32, got %dx%d", cfg.Terrain.GridWidth, cfg.Terrain.GridHeight)
				}
			},
			teardown: func() { *flagGrid = 0 },
		},
		{
			name: "noise flags",
			setup: func() {
				*flagNoise = "aquilax"
				*flagSeed = 99
				*flagOctaves = 2
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Noise.Kind != "aquilax" || cfg.Noise.Seed != 99 || cfg.Noise.Octaves != 2 {
					t.Errorf("unexpected noise section %+v", cfg.Noise)
				}
			},
			teardown: func() {
				*flagNoise = ""
				*flagSeed = 0
				*flagOctaves = 0
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "export flags",
			setup: func() {
				*flagOBJ = "out.obj"
				*flagHeightmap = "out.png"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.OBJ != "out.obj" || cfg.Export.Heightmap != "out.png" {
					t.Errorf("unexpected export section %+v", cfg.Export)
				}
			},
			teardown: func() {
				*flagOBJ = ""
				*flagHeightmap = ""
			},
		},
		{
			name: "size flags",
			setup: func() {
				*flagWidth = 1024
				*flagHeight = 768
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 1024 || cfg.Graphics.Height != 768 {
					t.Errorf("expected 1024x768, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "terrain.yaml")

	yamlContent := `
terrain:
  grid_width: 50
  grid_height: 50
logging:
  level: warn
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagGrid = 20
	defer func() {
		*flagConfig = ""
		*flagGrid = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Flag should override file
	if cfg.Terrain.GridWidth != 20 {
		t.Errorf("expected grid 20 (from flag), got %d", cfg.Terrain.GridWidth)
	}

	// File value should be used when no flag
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn' (from file), got %s", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "terrain.yaml")

	if err := os.WriteFile(configPath, []byte("noise:\n  octaves: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestBuilder(t *testing.T) {
	cfg := Default()
	cfg.Terrain.GridWidth = 8
	cfg.Terrain.GridHeight = 6
	cfg.Terrain.Workers = 2

	b, err := cfg.Builder()
	if err != nil {
		t.Fatalf("Builder: %v", err)
	}
	if b.Workers != 2 || b.Grid.Width != 8 || b.Grid.Height != 6 {
		t.Errorf("unexpected builder %+v", b)
	}

	mesh, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if mesh.VertexCount() != 48 {
		t.Errorf("expected 48 vertices, got %d", mesh.VertexCount())
	}
}

func TestPointLight(t *testing.T) {
	cfg := Default()
	if got := cfg.Light.PointLight(); got != lighting.Default() {
		t.Errorf("default light %+v, want %+v", got, lighting.Default())
	}

	cfg.Light.Position = [3]float32{0, 3, 0}
	if got := cfg.Light.PointLight().Position.Array(); got != cfg.Light.Position {
		t.Errorf("position %v, want %v", got, cfg.Light.Position)
	}
}
