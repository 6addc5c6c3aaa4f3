// Package terrain builds triangulated heightfield meshes from layered noise.
package terrain

import "math"

// GridParams is the vertex resolution of the terrain grid. Both dimensions
// must be at least 2.
type GridParams struct {
	Width  int
	Height int
}

// NoiseParams controls octave layering of a noise field.
type NoiseParams struct {
	Octaves     int     // number of layers, >= 1
	Persistence float64 // amplitude factor between octaves
	Lacunarity  float64 // frequency factor between octaves
	Amplitude   float64 // amplitude of the first octave
	Frequency   float64 // frequency of the first octave
}

// DefaultNoiseParams returns the rolling-hills layering used by the viewer.
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Amplitude:   0.5,
		Frequency:   0.4,
	}
}

// MaxAmplitude is the sum of the absolute per-octave amplitudes. No height
// built from a field bounded by [-1, 1] exceeds it in magnitude.
func (p NoiseParams) MaxAmplitude() float64 {
	a := math.Abs(p.Amplitude)
	q := math.Abs(p.Persistence)
	if q == 1 {
		return a * float64(p.Octaves)
	}
	return a * (1 - math.Pow(q, float64(p.Octaves))) / (1 - q)
}

// Vertex represents a terrain mesh vertex.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// FloatsPerVertex is the stride of Mesh.Interleaved: position, uv, normal.
const FloatsPerVertex = 8

// Mesh holds the complete terrain mesh data ready for GPU upload.
// Vertex i sits at grid cell (i % Width, i / Width).
type Mesh struct {
	Width    int
	Height   int
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Interleaved flattens the vertices into position.xyz, texcoord.uv, normal.xyz
// runs of FloatsPerVertex floats.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.TexCoord[0], v.TexCoord[1],
			v.Normal[0], v.Normal[1], v.Normal[2],
		)
	}
	return out
}
