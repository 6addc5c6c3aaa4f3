package terrain

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/internal/noise"
)

// Heightfield is a row-major grid of layered noise heights.
type Heightfield struct {
	Width   int
	Height  int
	Scale   float64   // grid spacing in normalized space
	Heights []float64 // index z*Width + x
}

// BuildHeightfield samples field over the grid on the calling goroutine.
func BuildHeightfield(grid GridParams, params NoiseParams, field noise.Field) (*Heightfield, error) {
	return buildHeightfield(grid, params, field, 1)
}

func buildHeightfield(grid GridParams, params NoiseParams, field noise.Field, workers int) (*Heightfield, error) {
	if err := validate(grid, params, field); err != nil {
		return nil, err
	}

	hf := &Heightfield{
		Width:   grid.Width,
		Height:  grid.Height,
		Scale:   1 / float64(max(grid.Width, grid.Height)-1),
		Heights: make([]float64, grid.Width*grid.Height),
	}

	if workers <= 1 || grid.Height < 2*workers {
		for z := 0; z < hf.Height; z++ {
			hf.fillRow(z, params, field)
		}
		return hf, nil
	}

	// Rows are disjoint slices of Heights, so workers never share a cell.
	pool := rowPool(workers)
	var wg sync.WaitGroup
	for z := 0; z < hf.Height; z++ {
		wg.Add(1)
		row := z
		pool.SubmitTask(worker.Task{
			ID: row,
			Do: func() (any, error) {
				defer wg.Done()
				hf.fillRow(row, params, field)
				return nil, nil
			},
		})
	}
	wg.Wait()

	logger.Named("terrain").Debug("heightfield sampled in parallel",
		zap.Int("rows", hf.Height),
		zap.Int("workers", workers),
	)
	return hf, nil
}

// Pool workers never exit. One pool per worker count is cached here and
// shared by every build.
var (
	poolsMu sync.Mutex
	pools   = make(map[int]worker.DynamicWorkerPool)
)

// poolQueueSize bounds queued rows; SubmitTask blocks once it is full.
const poolQueueSize = 256

func rowPool(workers int) worker.DynamicWorkerPool {
	poolsMu.Lock()
	defer poolsMu.Unlock()

	pool, ok := pools[workers]
	if !ok {
		pool = worker.NewDynamicWorkerPool(workers, poolQueueSize, time.Second)
		pools[workers] = pool
	}
	return pool
}

func (hf *Heightfield) fillRow(z int, params NoiseParams, field noise.Field) {
	for x := 0; x < hf.Width; x++ {
		xPos, zPos := hf.Position(x, z)

		height := 0.0
		amplitude := params.Amplitude
		frequency := params.Frequency
		for octave := 0; octave < params.Octaves; octave++ {
			height += amplitude * field.Sample(xPos*frequency, zPos*frequency)
			amplitude *= params.Persistence
			frequency *= params.Lacunarity
		}

		hf.Heights[z*hf.Width+x] = height
	}
}

// Position returns the normalized, origin-centered XZ position of a cell.
// The longer grid side spans [-0.5, 0.5].
func (hf *Heightfield) Position(x, z int) (float64, float64) {
	xPos := (float64(x) - float64(hf.Width-1)/2) * hf.Scale
	zPos := (float64(z) - float64(hf.Height-1)/2) * hf.Scale
	return xPos, zPos
}

// At returns the height of cell (x, z).
func (hf *Heightfield) At(x, z int) float64 {
	return hf.Heights[z*hf.Width+x]
}

// Range returns the lowest and highest height.
func (hf *Heightfield) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, h := range hf.Heights {
		lo = math.Min(lo, h)
		hi = math.Max(hi, h)
	}
	return lo, hi
}

// Image renders the heightfield as 16-bit grayscale, lowest cell black and
// highest white. Row z of the grid is image row z.
func (hf *Heightfield) Image() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, hf.Width, hf.Height))
	lo, hi := hf.Range()
	span := hi - lo

	for z := 0; z < hf.Height; z++ {
		for x := 0; x < hf.Width; x++ {
			var v uint16
			if span > 0 {
				v = uint16(math.Round((hf.At(x, z) - lo) / span * math.MaxUint16))
			}
			img.SetGray16(x, z, color.Gray16{Y: v})
		}
	}
	return img
}

func validate(grid GridParams, params NoiseParams, field noise.Field) error {
	if grid.Width < 2 || grid.Height < 2 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, grid.Width, grid.Height)
	}
	if params.Octaves < 1 {
		return fmt.Errorf("%w: octaves %d", ErrInvalidNoise, params.Octaves)
	}
	if field == nil {
		return fmt.Errorf("%w: nil field", ErrInvalidNoise)
	}
	return nil
}
