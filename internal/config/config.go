// Package config handles terrain viewer configuration loading and management.
package config

import (
	"github.com/Faultbox/midgard-terrain/internal/engine/camera"
	"github.com/Faultbox/midgard-terrain/internal/engine/lighting"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/noise"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Noise    NoiseConfig    `yaml:"noise"`
	Camera   CameraConfig   `yaml:"camera"`
	Textures TexturesConfig `yaml:"textures"`
	Light    LightConfig    `yaml:"light"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// TerrainConfig holds grid resolution settings.
type TerrainConfig struct {
	GridWidth  int `yaml:"grid_width"`
	GridHeight int `yaml:"grid_height"`
	Workers    int `yaml:"workers"` // heightfield sampling workers, <= 1 is sequential
}

// NoiseConfig selects the noise backend and its octave layering.
type NoiseConfig struct {
	Kind        string  `yaml:"kind"`
	Seed        int64   `yaml:"seed"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Amplitude   float64 `yaml:"amplitude"`
	Frequency   float64 `yaml:"frequency"`
}

// CameraConfig holds the initial orbit camera state. Angles are in degrees.
type CameraConfig struct {
	Target          [3]float32 `yaml:"target"`
	Distance        float32    `yaml:"distance"`
	Yaw             float32    `yaml:"yaw"`
	Pitch           float32    `yaml:"pitch"`
	Sensitivity     float32    `yaml:"sensitivity"`
	PanSensitivity  float32    `yaml:"pan_sensitivity"`
	ZoomSensitivity float32    `yaml:"zoom_sensitivity"`
	MinDistance     float32    `yaml:"min_distance"`
	MaxDistance     float32    `yaml:"max_distance"`
}

// TexturesConfig holds the three height-banded material textures.
type TexturesConfig struct {
	Grass string `yaml:"grass"`
	Rock  string `yaml:"rock"`
	Snow  string `yaml:"snow"`

	Tiling float32 `yaml:"tiling"` // texture repeats across the grid
}

// LightConfig holds the point light shading the terrain.
type LightConfig struct {
	Position  [3]float32 `yaml:"position"`
	Ambient   float32    `yaml:"ambient"`
	Specular  float32    `yaml:"specular"`
	Shininess float32    `yaml:"shininess"`
}

// ExportConfig holds headless export targets. Empty paths are skipped.
type ExportConfig struct {
	OBJ           string `yaml:"obj"`
	Heightmap     string `yaml:"heightmap"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	np := terrain.DefaultNoiseParams()
	cam := camera.DefaultOptions()
	light := lighting.Default()

	return &Config{
		Graphics: GraphicsConfig{
			Width:  800,
			Height: 600,
			VSync:  true,
			FOV:    45,
			Near:   0.1,
			Far:    100,
		},
		Terrain: TerrainConfig{
			GridWidth:  100,
			GridHeight: 100,
			Workers:    1,
		},
		Noise: NoiseConfig{
			Kind:        string(noise.KindClassic),
			Octaves:     np.Octaves,
			Persistence: np.Persistence,
			Lacunarity:  np.Lacunarity,
			Amplitude:   np.Amplitude,
			Frequency:   np.Frequency,
		},
		Camera: CameraConfig{
			Target:          cam.Target.Array(),
			Distance:        cam.Distance,
			Yaw:             cam.Yaw,
			Pitch:           cam.Pitch,
			Sensitivity:     cam.Sensitivity,
			PanSensitivity:  cam.PanSensitivity,
			ZoomSensitivity: cam.ZoomSensitivity,
			MinDistance:     cam.MinDistance,
			MaxDistance:     cam.MaxDistance,
		},
		Textures: TexturesConfig{
			Grass:  "textures/grass.png",
			Rock:   "textures/rock.png",
			Snow:   "textures/snow.jpg",
			Tiling: 1,
		},
		Light: LightConfig{
			Position:  light.Position.Array(),
			Ambient:   light.Ambient,
			Specular:  light.Specular,
			Shininess: light.Shininess,
		},
		Export: ExportConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Grid returns the terrain grid dimensions.
func (c TerrainConfig) Grid() terrain.GridParams {
	return terrain.GridParams{Width: c.GridWidth, Height: c.GridHeight}
}

// Params returns the octave layering.
func (c NoiseConfig) Params() terrain.NoiseParams {
	return terrain.NoiseParams{
		Octaves:     c.Octaves,
		Persistence: c.Persistence,
		Lacunarity:  c.Lacunarity,
		Amplitude:   c.Amplitude,
		Frequency:   c.Frequency,
	}
}

// Field builds the configured noise backend.
func (c NoiseConfig) Field() (noise.Field, error) {
	return noise.New(noise.Kind(c.Kind), c.Seed)
}

// PointLight converts the light settings.
func (c LightConfig) PointLight() lighting.PointLight {
	return lighting.PointLight{
		Position:  math.V3(c.Position[0], c.Position[1], c.Position[2]),
		Ambient:   c.Ambient,
		Specular:  c.Specular,
		Shininess: c.Shininess,
	}
}

// Builder assembles a terrain builder from the terrain and noise sections.
func (c *Config) Builder() (*terrain.Builder, error) {
	field, err := c.Noise.Field()
	if err != nil {
		return nil, err
	}
	return &terrain.Builder{
		Grid:    c.Terrain.Grid(),
		Noise:   c.Noise.Params(),
		Field:   field,
		Workers: c.Terrain.Workers,
	}, nil
}

// Options converts the camera settings for camera.New.
func (c CameraConfig) Options() camera.Options {
	return camera.Options{
		Target:          math.V3(c.Target[0], c.Target[1], c.Target[2]),
		Distance:        c.Distance,
		Yaw:             c.Yaw,
		Pitch:           c.Pitch,
		MinDistance:     c.MinDistance,
		MaxDistance:     c.MaxDistance,
		Sensitivity:     c.Sensitivity,
		PanSensitivity:  c.PanSensitivity,
		ZoomSensitivity: c.ZoomSensitivity,
	}
}
