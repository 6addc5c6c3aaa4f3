// Package camera provides the orbit camera used to inspect generated terrain.
//
// Angles are in degrees. The eye sits on a sphere around Target:
//
//	eye = Target + Distance * (cos(pitch)*cos(yaw), sin(pitch), cos(pitch)*sin(yaw))
//
// Yaw is measured in the XZ plane from +X toward +Z; pitch is the elevation
// above that plane. World up is +Y.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// PitchLimit bounds |Pitch|. The clamp keeps pitch strictly inside the limit
// so the view direction never lines up with world up.
const PitchLimit float32 = 89.0

const pitchEpsilon float32 = 1e-3

var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// OrbitCamera orbits around a target point. It is owned and mutated by the
// frame loop; it is not safe for concurrent use.
type OrbitCamera struct {
	Target math.Vec3

	Distance float32
	Yaw      float32 // degrees
	Pitch    float32 // degrees, within (-PitchLimit, PitchLimit)

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	Sensitivity     float32 // degrees per unit of drag
	PanSensitivity  float32 // world units per unit of pan
	ZoomSensitivity float32 // world units per unit of scroll
}

// Options configures a new camera.
type Options struct {
	Target          math.Vec3
	Distance        float32
	Yaw             float32
	Pitch           float32
	MinDistance     float32
	MaxDistance     float32
	Sensitivity     float32
	PanSensitivity  float32
	ZoomSensitivity float32
}

// DefaultOptions frames the unit terrain from slightly above.
func DefaultOptions() Options {
	return Options{
		Target:          math.Vec3{X: 0, Y: 0.5, Z: 0},
		Distance:        2.0,
		Yaw:             -90.0,
		Pitch:           30.0,
		MinDistance:     0.5,
		MaxDistance:     10.0,
		Sensitivity:     0.1,
		PanSensitivity:  0.005,
		ZoomSensitivity: 0.1,
	}
}

// New creates a camera. Distance and pitch are clamped into their valid
// ranges; swapped distance bounds are reordered.
func New(opts Options) *OrbitCamera {
	c := &OrbitCamera{
		Target:          opts.Target,
		Distance:        opts.Distance,
		Yaw:             opts.Yaw,
		Pitch:           opts.Pitch,
		MinDistance:     opts.MinDistance,
		MaxDistance:     opts.MaxDistance,
		Sensitivity:     opts.Sensitivity,
		PanSensitivity:  opts.PanSensitivity,
		ZoomSensitivity: opts.ZoomSensitivity,
	}
	if c.MinDistance > c.MaxDistance {
		c.MinDistance, c.MaxDistance = c.MaxDistance, c.MinDistance
	}
	c.clampDistance()
	c.clampPitch()
	return c
}

// HandleDrag rotates the camera around the target.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.Sensitivity
	c.Pitch += deltaY * c.Sensitivity
	c.clampPitch()
}

// HandlePan slides the target along the camera's right and up axes. Distance
// and orientation are unchanged.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	right, up := c.Axes()
	offset := right.Scale(-deltaX * c.PanSensitivity).Add(up.Scale(-deltaY * c.PanSensitivity))
	c.Target = c.Target.Add(offset)
}

// HandleScroll moves the eye toward (positive delta) or away from the target.
func (c *OrbitCamera) HandleScroll(delta float32) {
	c.Distance -= delta * c.ZoomSensitivity
	c.clampDistance()
}

// Position returns the eye position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	return c.Target.Add(c.offsetDir().Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, worldUp)
}

// Axes returns the camera's right and up unit vectors, matching the basis of
// ViewMatrix.
func (c *OrbitCamera) Axes() (right, up math.Vec3) {
	forward := c.offsetDir().Scale(-1)
	right = forward.Cross(worldUp).Normalize()
	up = right.Cross(forward)
	return right, up
}

// FitToBounds centers the target on a bounding box and backs the eye off far
// enough to see it.
func (c *OrbitCamera) FitToBounds(minX, minY, minZ, maxX, maxY, maxZ float32) {
	c.Target = math.Vec3{
		X: (minX + maxX) / 2,
		Y: (minY + maxY) / 2,
		Z: (minZ + maxZ) / 2,
	}

	size := math.Vec3{X: maxX - minX, Y: maxY - minY, Z: maxZ - minZ}.Length()
	c.Distance = size * 1.5
	c.clampDistance()
}

// offsetDir is the unit vector from target to eye.
func (c *OrbitCamera) offsetDir() math.Vec3 {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	cosPitch := math32.Cos(pitch)

	return math.Vec3{
		X: cosPitch * math32.Cos(yaw),
		Y: math32.Sin(pitch),
		Z: cosPitch * math32.Sin(yaw),
	}
}

func (c *OrbitCamera) clampPitch() {
	limit := PitchLimit - pitchEpsilon
	c.Pitch = mgl32.Clamp(c.Pitch, -limit, limit)
}

func (c *OrbitCamera) clampDistance() {
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}
