// Command terraingen builds a terrain mesh without a window and exports it.
//
// Usage:
//
//	terraingen -grid 256 -octaves 6 -noise opensimplex -seed 7 -obj terrain.obj -heightmap terrain.png
package main

import (
	"bufio"
	"fmt"
	"image/png"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("terraingen failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	builder, err := cfg.Builder()
	if err != nil {
		return err
	}

	start := time.Now()
	hf, err := builder.Heightfield()
	if err != nil {
		return fmt.Errorf("heightfield: %w", err)
	}
	mesh := terrain.BuildMesh(hf)
	lo, hi := hf.Range()

	logger.Info("terrain generated",
		zap.String("noise", cfg.Noise.Kind),
		zap.Int64("seed", cfg.Noise.Seed),
		zap.Int("width", mesh.Width),
		zap.Int("height", mesh.Height),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float64("min_height", lo),
		zap.Float64("max_height", hi),
		zap.Float64("bound", builder.Noise.MaxAmplitude()),
		zap.Int("workers", builder.Workers),
		zap.Duration("took", time.Since(start)),
	)

	if cfg.Export.OBJ != "" {
		if err := writeFile(cfg.Export.OBJ, func(w *bufio.Writer) error {
			return terrain.WriteOBJ(w, mesh)
		}); err != nil {
			return fmt.Errorf("export mesh: %w", err)
		}
		logger.Info("wrote mesh", zap.String("path", cfg.Export.OBJ))
	}

	if cfg.Export.Heightmap != "" {
		if err := writeFile(cfg.Export.Heightmap, func(w *bufio.Writer) error {
			return png.Encode(w, hf.Image())
		}); err != nil {
			return fmt.Errorf("export heightmap: %w", err)
		}
		logger.Info("wrote heightmap", zap.String("path", cfg.Export.Heightmap))
	}

	if cfg.Export.OBJ == "" && cfg.Export.Heightmap == "" {
		logger.Warn("no export target set, pass -obj or -heightmap")
	}
	return nil
}

func writeFile(path string, write func(*bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
