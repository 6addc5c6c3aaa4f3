package terrain

import (
	"math"
	"testing"

	"github.com/Faultbox/midgard-terrain/internal/noise"
)

func TestHeightfieldMatchesMesh(t *testing.T) {
	grid := GridParams{Width: 12, Height: 9}
	hf, err := BuildHeightfield(grid, DefaultNoiseParams(), noise.NewPerlin())
	if err != nil {
		t.Fatalf("BuildHeightfield failed: %v", err)
	}

	mesh := BuildMesh(hf)
	for z := 0; z < grid.Height; z++ {
		for x := 0; x < grid.Width; x++ {
			want := float32(hf.At(x, z))
			if got := mesh.Vertices[z*grid.Width+x].Position[1]; got != want {
				t.Errorf("vertex (%d, %d) height %v, want %v", x, z, got, want)
			}
		}
	}
}

func TestHeightfieldOctaveLayering(t *testing.T) {
	params := NoiseParams{Octaves: 3, Persistence: 0.5, Lacunarity: 2, Amplitude: 0.8, Frequency: 1.3}
	field := noise.NewPerlin()
	hf, err := BuildHeightfield(GridParams{Width: 7, Height: 7}, params, field)
	if err != nil {
		t.Fatalf("BuildHeightfield failed: %v", err)
	}

	xPos, zPos := hf.Position(2, 5)
	want := 0.8*field.Sample(xPos*1.3, zPos*1.3) +
		0.4*field.Sample(xPos*2.6, zPos*2.6) +
		0.2*field.Sample(xPos*5.2, zPos*5.2)

	if got := hf.At(2, 5); math.Abs(got-want) > 1e-12 {
		t.Errorf("At(2, 5) = %v, want %v", got, want)
	}
}

func TestHeightfieldImage(t *testing.T) {
	hf, err := BuildHeightfield(GridParams{Width: 5, Height: 3}, singleOctave(), rampField{})
	if err != nil {
		t.Fatalf("BuildHeightfield failed: %v", err)
	}

	img := hf.Image()
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Fatalf("image size %v, want 5x3", b)
	}
	if got := img.Gray16At(0, 1).Y; got != 0 {
		t.Errorf("lowest column = %d, want 0", got)
	}
	if got := img.Gray16At(4, 1).Y; got != math.MaxUint16 {
		t.Errorf("highest column = %d, want %d", got, math.MaxUint16)
	}
}

func TestHeightfieldImageFlat(t *testing.T) {
	hf, err := BuildHeightfield(GridParams{Width: 3, Height: 3}, singleOctave(), constField(0.7))
	if err != nil {
		t.Fatalf("BuildHeightfield failed: %v", err)
	}
	if got := hf.Image().Gray16At(1, 1).Y; got != 0 {
		t.Errorf("flat heightfield pixel = %d, want 0", got)
	}
}
