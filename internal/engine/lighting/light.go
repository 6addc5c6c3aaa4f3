// Package lighting describes the point light that shades the terrain.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// PointLight is a white point light with Phong coefficients.
type PointLight struct {
	Position  math.Vec3
	Ambient   float32 // constant term
	Specular  float32 // highlight strength
	Shininess float32 // highlight exponent
}

// Default returns the light the viewer starts with.
func Default() PointLight {
	return PointLight{
		Position:  math.V3(1.2, 1.0, 2.0),
		Ambient:   0.1,
		Specular:  0.5,
		Shininess: 32,
	}
}

// Intensity evaluates the Phong model for a surface point. It mirrors the
// terrain fragment shader and returns ambient + diffuse + specular.
func (l PointLight) Intensity(pos, normal, eye math.Vec3) float32 {
	n := normal.Normalize()
	toLight := l.Position.Sub(pos).Normalize()
	diffuse := max(n.Dot(toLight), 0)

	toEye := eye.Sub(pos).Normalize()
	reflected := reflect(toLight.Scale(-1), n)
	spec := l.Specular * math32.Pow(max(toEye.Dot(reflected), 0), l.Shininess)

	return l.Ambient + diffuse + spec
}

// reflect mirrors incident direction d about normal n.
func reflect(d, n math.Vec3) math.Vec3 {
	return d.Sub(n.Scale(2 * n.Dot(d)))
}
