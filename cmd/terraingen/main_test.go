package main

import (
	"bufio"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/midgard-terrain/internal/config"
)

func TestRunExports(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := config.Default()
	cfg.Terrain.GridWidth = 5
	cfg.Terrain.GridHeight = 4
	cfg.Export.OBJ = filepath.Join(tmpDir, "terrain.obj")
	cfg.Export.Heightmap = filepath.Join(tmpDir, "terrain.png")

	if err := run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	obj, err := os.ReadFile(cfg.Export.OBJ)
	if err != nil {
		t.Fatalf("read obj: %v", err)
	}
	var vertices, faces int
	for _, line := range strings.Split(string(obj), "\n") {
		switch {
		case strings.HasPrefix(line, "v "):
			vertices++
		case strings.HasPrefix(line, "f "):
			faces++
		}
	}
	if vertices != 20 {
		t.Errorf("expected 20 vertices, got %d", vertices)
	}
	if faces != 2*4*3 {
		t.Errorf("expected 24 faces, got %d", faces)
	}

	f, err := os.Open(cfg.Export.Heightmap)
	if err != nil {
		t.Fatalf("open heightmap: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode heightmap: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 4 {
		t.Errorf("heightmap size %dx%d, want 5x4", b.Dx(), b.Dy())
	}
}

func TestRunInvalidNoise(t *testing.T) {
	cfg := config.Default()
	cfg.Noise.Kind = "worley"

	if err := run(cfg); err == nil {
		t.Error("expected error for unknown noise kind")
	}
}

func TestWriteFileBadPath(t *testing.T) {
	err := writeFile(filepath.Join(t.TempDir(), "missing", "out.obj"), func(w *bufio.Writer) error {
		_, err := w.WriteString("x")
		return err
	})
	if err == nil {
		t.Error("expected error for missing directory")
	}
}
