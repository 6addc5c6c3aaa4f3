package terrain

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/internal/noise"
)

var (
	// ErrInvalidDimension is returned when the grid is narrower than 2 cells
	// on either axis. No partial mesh is produced.
	ErrInvalidDimension = errors.New("terrain: grid width and height must be at least 2")

	// ErrInvalidNoise is returned for unusable noise settings.
	ErrInvalidNoise = errors.New("terrain: invalid noise parameters")
)

// Builder generates a terrain mesh. Workers > 1 samples heightfield rows on a
// worker pool; the result is identical to a sequential build.
type Builder struct {
	Grid    GridParams
	Noise   NoiseParams
	Field   noise.Field
	Workers int
}

// Generate builds a mesh sequentially.
func Generate(grid GridParams, params NoiseParams, field noise.Field) (*Mesh, error) {
	b := Builder{Grid: grid, Noise: params, Field: field}
	return b.Build()
}

// Heightfield samples the height grid without triangulating it.
func (b *Builder) Heightfield() (*Heightfield, error) {
	return buildHeightfield(b.Grid, b.Noise, b.Field, b.Workers)
}

// Build samples the heightfield, triangulates it and computes smooth normals.
func (b *Builder) Build() (*Mesh, error) {
	hf, err := b.Heightfield()
	if err != nil {
		return nil, err
	}

	mesh := BuildMesh(hf)

	logger.Named("terrain").Debug("mesh generated",
		zap.Int("width", mesh.Width),
		zap.Int("height", mesh.Height),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float32("min_y", mesh.Bounds.Min[1]),
		zap.Float32("max_y", mesh.Bounds.Max[1]),
	)
	return mesh, nil
}

// BuildMesh triangulates a heightfield and computes per-vertex normals.
func BuildMesh(hf *Heightfield) *Mesh {
	width, height := hf.Width, hf.Height

	mesh := &Mesh{
		Width:    width,
		Height:   height,
		Vertices: make([]Vertex, 0, width*height),
		Indices:  make([]uint32, 0, 6*(width-1)*(height-1)),
		Bounds: Bounds{
			Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
			Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
		},
	}

	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			xPos, zPos := hf.Position(x, z)
			pos := [3]float32{float32(xPos), float32(hf.At(x, z)), float32(zPos)}

			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos,
				TexCoord: [2]float32{
					float32(x) / float32(width-1),
					float32(z) / float32(height-1),
				},
			})
			updateBounds(&mesh.Bounds, pos)

			if x < width-1 && z < height-1 {
				start := uint32(z*width + x)
				w := uint32(width)
				mesh.Indices = append(mesh.Indices,
					start, start+w, start+1,
					start+1, start+w, start+w+1,
				)
			}
		}
	}

	ComputeNormals(mesh.Vertices, mesh.Indices)
	return mesh
}

// ComputeNormals sets every vertex normal to the normalized sum of the unit
// face normals of its incident triangles. Each face counts once regardless of
// area or corner angle. Triangles are reduced in index order.
func ComputeNormals(vertices []Vertex, indices []uint32) {
	acc := make([][3]float64, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		v0 := vec64(vertices[i0].Position)
		edge1 := sub(vec64(vertices[i1].Position), v0)
		edge2 := sub(vec64(vertices[i2].Position), v0)
		n := normalize(cross(edge1, edge2))

		for _, idx := range [3]uint32{i0, i1, i2} {
			acc[idx][0] += n[0]
			acc[idx][1] += n[1]
			acc[idx][2] += n[2]
		}
	}

	for i := range vertices {
		n := normalize(acc[i])
		vertices[i].Normal = [3]float32{float32(n[0]), float32(n[1]), float32(n[2])}
	}
}

// Helper functions

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func vec64(p [3]float32) [3]float64 {
	return [3]float64{float64(p[0]), float64(p[1]), float64(p[2])}
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// normalize falls back to +Y for degenerate input.
func normalize(v [3]float64) [3]float64 {
	l := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l < 1e-12 {
		return [3]float64{0, 1, 0}
	}
	return [3]float64{v[0] / l, v[1] / l, v[2] / l}
}
