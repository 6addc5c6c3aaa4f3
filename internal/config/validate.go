package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Faultbox/midgard-terrain/internal/noise"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

// Validate checks settings that would make terrain generation or the camera
// misbehave. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Terrain.GridWidth < 2 || c.Terrain.GridHeight < 2 {
		add("terrain grid %dx%d, both sides must be at least 2", c.Terrain.GridWidth, c.Terrain.GridHeight)
	}
	if c.Noise.Octaves < 1 {
		add("noise octaves %d, must be at least 1", c.Noise.Octaves)
	}
	if c.Noise.Kind != "" && !slices.Contains(noise.Kinds(), noise.Kind(c.Noise.Kind)) {
		add("noise kind %q, want one of %v", c.Noise.Kind, noise.Kinds())
	}
	if c.Camera.MinDistance <= 0 {
		add("camera min_distance %v, must be positive", c.Camera.MinDistance)
	}
	if c.Camera.MaxDistance < c.Camera.MinDistance {
		add("camera max_distance %v below min_distance %v", c.Camera.MaxDistance, c.Camera.MinDistance)
	}
	if c.Textures.Tiling <= 0 {
		add("textures tiling %v, must be positive", c.Textures.Tiling)
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		add("graphics near/far %v/%v", c.Graphics.Near, c.Graphics.Far)
	}

	return errors.Join(errs...)
}
