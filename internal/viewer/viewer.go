// Package viewer implements the interactive terrain viewer frame loop.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/camera"
	"github.com/Faultbox/midgard-terrain/internal/engine/debug"
	"github.com/Faultbox/midgard-terrain/internal/engine/input"
	"github.com/Faultbox/midgard-terrain/internal/engine/picking"
	"github.com/Faultbox/midgard-terrain/internal/engine/renderer"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/engine/texture"
	"github.com/Faultbox/midgard-terrain/internal/engine/window"
	"github.com/Faultbox/midgard-terrain/internal/logger"
)

const title = "Midgard Terrain"

// Solid colors used when a material texture cannot be loaded.
var (
	fallbackGrass = color.RGBA{R: 86, G: 125, B: 70, A: 255}
	fallbackRock  = color.RGBA{R: 120, G: 110, B: 100, A: 255}
	fallbackSnow  = color.RGBA{R: 240, G: 240, B: 245, A: 255}
)

// Viewer owns the window, GL resources, camera and mesh.
type Viewer struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	terrain  *renderer.TerrainRenderer
	input    *input.Input
	camera   *camera.OrbitCamera
	mesh     *terrain.Mesh
	shots    *debug.ScreenshotCapture
	log      *zap.Logger
}

// New builds the terrain mesh, opens the window and uploads everything to
// the GPU. Mesh generation runs first so an invalid grid never opens a window.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	builder, err := cfg.Builder()
	if err != nil {
		return nil, fmt.Errorf("terrain builder: %w", err)
	}
	start := time.Now()
	v.mesh, err = builder.Build()
	if err != nil {
		return nil, fmt.Errorf("generate terrain: %w", err)
	}
	v.log.Info("terrain generated",
		zap.Int("vertices", v.mesh.VertexCount()),
		zap.Int("triangles", v.mesh.TriangleCount()),
		zap.Duration("took", time.Since(start)),
	)

	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just made current
	fbWidth, fbHeight := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:  fbWidth,
		Height: fbHeight,
		FOV:    cfg.Graphics.FOV,
		Near:   cfg.Graphics.Near,
		Far:    cfg.Graphics.Far,
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.terrain, err = renderer.NewTerrainRenderer(renderer.Materials{
		Grass: v.loadMaterial("grass", cfg.Textures.Grass, fallbackGrass),
		Rock:  v.loadMaterial("rock", cfg.Textures.Rock, fallbackRock),
		Snow:  v.loadMaterial("snow", cfg.Textures.Snow, fallbackSnow),
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create terrain renderer: %w", err)
	}
	v.terrain.Tiling = cfg.Textures.Tiling
	v.terrain.Upload(v.mesh)

	v.input = input.New()
	v.camera = camera.New(cfg.Camera.Options())
	v.shots = debug.NewScreenshotCapture(cfg.Export.ScreenshotDir, "terrain")

	v.log.Info("viewer initialized")
	return v, nil
}

func (v *Viewer) loadMaterial(name, path string, fallback color.RGBA) *image.RGBA {
	img, err := texture.LoadOr(path, fallback)
	if err != nil {
		v.log.Warn("material texture unavailable, using solid color",
			zap.String("material", name),
			zap.String("path", path),
			zap.Error(err),
		)
	}
	return img
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting frame loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				v.renderer.Resize(v.window.DrawableSize())
			case input.EventKeyDown:
				v.handleKey(event)
			}
		}

		v.camera.Dispatch(v.input.CameraEvents()...)

		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			v.window.SetTitle(fmt.Sprintf("%s - %d fps", title, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleKey(event input.Event) {
	switch event.Key {
	case keyFrame:
		b := v.mesh.Bounds
		v.camera.FitToBounds(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	case keyReset:
		v.camera = camera.New(v.cfg.Camera.Options())
	case keyScreenshot:
		v.screenshot()
	case keyRetarget:
		v.retarget()
	}
}

func (v *Viewer) render() {
	v.renderer.Begin()

	view := v.camera.ViewMatrix()
	v.terrain.Render(renderer.FrameParams{
		ViewProj: v.renderer.Projection().Mul(view),
		ViewPos:  v.camera.Position(),
		Light:    v.cfg.Light.PointLight(),
	})
}

// retarget moves the orbit target to the terrain point under the cursor.
func (v *Viewer) retarget() {
	x, y, ok := v.input.Pointer()
	if !ok {
		return
	}
	w, h := v.window.Size()
	ray := picking.ScreenToRay(x, y, float32(w), float32(h), v.camera.ViewMatrix(), v.renderer.Projection())
	hit, ok := picking.PickMesh(ray, v.mesh)
	if !ok {
		v.log.Debug("no terrain under cursor")
		return
	}
	v.camera.Target = hit.Point
	light := v.cfg.Light.PointLight()
	v.log.Debug("orbit target moved",
		zap.Any("target", hit.Point.Array()),
		zap.Float32("intensity", light.Intensity(hit.Point, hit.Normal, v.camera.Position())),
	)
}

// screenshot captures the frame rendered last, before the next swap.
func (v *Viewer) screenshot() {
	v.render()
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.terrain != nil {
		v.terrain.Destroy()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
