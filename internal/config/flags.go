package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagGrid       = flag.Int("grid", 0, "Terrain grid resolution (both sides)")
	flagOctaves    = flag.Int("octaves", 0, "Number of noise octaves")
	flagNoise      = flag.String("noise", "", "Noise backend: classic, shuffled, aquilax, opensimplex")
	flagSeed       = flag.Int64("seed", 0, "Seed for seeded noise backends")
	flagWorkers    = flag.Int("workers", 0, "Heightfield sampling workers")
	flagOBJ        = flag.String("obj", "", "Write the mesh as Wavefront OBJ to this path")
	flagHeightmap  = flag.String("heightmap", "", "Write the heightfield as 16-bit PNG to this path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagGrid > 0 {
		cfg.Terrain.GridWidth = *flagGrid
		cfg.Terrain.GridHeight = *flagGrid
	}
	if *flagOctaves > 0 {
		cfg.Noise.Octaves = *flagOctaves
	}
	if *flagNoise != "" {
		cfg.Noise.Kind = *flagNoise
	}
	if *flagSeed != 0 {
		cfg.Noise.Seed = *flagSeed
	}
	if *flagWorkers > 0 {
		cfg.Terrain.Workers = *flagWorkers
	}
	if *flagOBJ != "" {
		cfg.Export.OBJ = *flagOBJ
	}
	if *flagHeightmap != "" {
		cfg.Export.Heightmap = *flagHeightmap
	}
}
