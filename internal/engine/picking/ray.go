// Package picking casts rays from screen coordinates into the terrain.
package picking

import (
	gomath "math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // normalized
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts window coordinates (origin top-left) to a world-space
// ray through the near and far planes.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, view, proj math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	inv := math.Mat4(mgl32.Mat4(proj.Mul(view)).Inv())
	near := inv.TransformVec3(math.V3(ndcX, ndcY, -1))
	far := inv.TransformVec3(math.V3(ndcX, ndcY, 1))

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectBounds tests the ray against an axis-aligned box with the slab
// method. It returns the entry distance, or the exit distance when the origin
// is inside.
func (r Ray) IntersectBounds(b terrain.Bounds) (float32, bool) {
	origin := r.Origin.Array()
	dir := r.Direction.Array()
	tmin, tmax := float32(-gomath.MaxFloat32), float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < b.Min[axis] || origin[axis] > b.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (b.Min[axis] - origin[axis]) / dir[axis]
		t2 := (b.Max[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle returns the distance to triangle (a, b, c) using the
// Moller-Trumbore test. Hits behind the origin are rejected.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (float32, bool) {
	const eps = 1e-7

	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < eps {
		return 0, false
	}
	invDet := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * invDet
	if t < eps {
		return 0, false
	}
	return t, true
}

// Hit is a ray/mesh intersection.
type Hit struct {
	Point    math.Vec3
	Normal   math.Vec3 // face normal of the triangle hit
	Distance float32
}

// PickMesh returns the nearest intersection of the ray with the mesh surface.
func PickMesh(r Ray, mesh *terrain.Mesh) (Hit, bool) {
	if _, ok := r.IntersectBounds(mesh.Bounds); !ok {
		return Hit{}, false
	}

	pos := func(i uint32) math.Vec3 {
		p := mesh.Vertices[i].Position
		return math.V3(p[0], p[1], p[2])
	}

	best := Hit{Distance: float32(gomath.MaxFloat32)}
	found := false
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := pos(mesh.Indices[i]), pos(mesh.Indices[i+1]), pos(mesh.Indices[i+2])
		t, ok := r.IntersectTriangle(a, b, c)
		if !ok || t >= best.Distance {
			continue
		}
		best = Hit{
			Point:    r.At(t),
			Normal:   b.Sub(a).Cross(c.Sub(a)).Normalize(),
			Distance: t,
		}
		found = true
	}
	return best, found
}
