package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/engine/lighting"
	"github.com/Faultbox/midgard-terrain/internal/engine/renderer/shaders"
	"github.com/Faultbox/midgard-terrain/internal/engine/shader"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Material texture units, in the order the fragment shader samples them.
const (
	UnitGrass = iota
	UnitRock
	UnitSnow
	unitCount
)

var samplerNames = [unitCount]string{"uGrass", "uRock", "uSnow"}

// Materials are the decoded height-band textures.
type Materials struct {
	Grass *image.RGBA
	Rock  *image.RGBA
	Snow  *image.RGBA
}

// FrameParams are the per-frame inputs the camera and scene provide.
type FrameParams struct {
	ViewProj math.Mat4
	ViewPos  math.Vec3
	Light    lighting.PointLight
}

// TerrainRenderer draws a generated terrain mesh with height-banded
// materials and point lighting.
type TerrainRenderer struct {
	program *shader.Program

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	textures    [unitCount]uint32
	heightRange [2]float32

	// Tiling repeats material textures across the grid.
	Tiling float32

	log *zap.Logger
}

// NewTerrainRenderer compiles the terrain program and uploads the materials.
func NewTerrainRenderer(mats Materials) (*TerrainRenderer, error) {
	tr := &TerrainRenderer{
		Tiling: 1,
		log:    logger.Named("renderer"),
	}

	program, err := shader.NewProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	tr.program = program

	for i, img := range [unitCount]*image.RGBA{mats.Grass, mats.Rock, mats.Snow} {
		if img == nil {
			tr.Destroy()
			return nil, fmt.Errorf("material %s: missing image", samplerNames[i])
		}
		tr.textures[i] = uploadTexture(img)
	}

	program.Use()
	for i, name := range samplerNames {
		program.SetInt(name, int32(i))
	}

	return tr, nil
}

// Upload replaces the GPU copy of the mesh.
func (tr *TerrainRenderer) Upload(mesh *terrain.Mesh) {
	tr.clearMesh()

	data := mesh.Interleaved()
	if len(data) == 0 || len(mesh.Indices) == 0 {
		return
	}

	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	stride := int32(terrain.FloatsPerVertex * 4)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// TexCoord (location 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	// Normal (location 2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	tr.indexCount = int32(len(mesh.Indices))
	tr.heightRange = HeightRange(mesh.Bounds)

	tr.log.Debug("terrain uploaded",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Uint32("vao", tr.vao),
	)
}

// Render draws the mesh. It is a no-op before Upload.
func (tr *TerrainRenderer) Render(p FrameParams) {
	if tr.vao == 0 {
		return
	}

	tr.program.Use()
	tr.program.SetMat4("uViewProj", p.ViewProj)
	tr.program.SetMat4("uModel", math.Identity())
	tr.program.SetVec3("uLightPos", p.Light.Position)
	tr.program.SetFloat("uAmbient", p.Light.Ambient)
	tr.program.SetFloat("uSpecular", p.Light.Specular)
	tr.program.SetFloat("uShininess", p.Light.Shininess)
	tr.program.SetVec3("uViewPos", p.ViewPos)
	tr.program.SetFloat("uTiling", tr.Tiling)
	gl.Uniform2f(tr.program.Uniform("uHeightRange"), tr.heightRange[0], tr.heightRange[1])

	for i, tex := range tr.textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}

	gl.BindVertexArray(tr.vao)
	gl.DrawElements(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// HeightRange returns the vertical extent used to normalize material bands.
// A flat mesh gets a unit span so the shader never divides by zero.
func HeightRange(b terrain.Bounds) [2]float32 {
	lo, hi := b.Min[1], b.Max[1]
	if hi-lo < 1e-5 {
		return [2]float32{lo, lo + 1}
	}
	return [2]float32{lo, hi}
}

func uploadTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	return texID
}

func (tr *TerrainRenderer) clearMesh() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	tr.indexCount = 0
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clearMesh()
	for i := range tr.textures {
		if tr.textures[i] != 0 {
			gl.DeleteTextures(1, &tr.textures[i])
			tr.textures[i] = 0
		}
	}
	if tr.program != nil {
		tr.program.Delete()
		tr.program = nil
	}
}
