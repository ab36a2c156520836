// Package main is a thin shell around the surface generator: it reads a
// molecule from an XYZ file, reconstructs the configured surface, and
// writes the mesh as a Wavefront OBJ.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/chemviz/molsurf/internal/config"
	"github.com/chemviz/molsurf/internal/gpu"
	"github.com/chemviz/molsurf/internal/logger"
	"github.com/chemviz/molsurf/internal/surface"
)

func main() {
	out := flag.String("out", "surface.obj", "Output OBJ path")
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

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: surfgen [flags] molecule.xyz")
		os.Exit(2)
	}

	atoms, err := readXYZ(flag.Arg(0))
	if err != nil {
		logger.Error("failed to read molecule", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("molecule loaded", zap.String("file", flag.Arg(0)), zap.Int("atoms", len(atoms)))

	opts := []surface.Option{
		surface.WithCacheCapacity(cfg.Cache.Capacity),
		surface.WithSmoothing(cfg.Surface.Smoothing.Iterations, cfg.Surface.Smoothing.Lambda),
	}

	if cfg.GPU.Enabled {
		if ctx, err := gpu.NewContext(); err != nil {
			logger.Warn("GPU unavailable, using CPU field computation", zap.Error(err))
		} else {
			defer ctx.Destroy()
			opts = append(opts, surface.WithGPU(gpu.NewComputer(ctx), ctx.Probe()))
		}
	}

	gen := surface.New(opts...)
	mesh := gen.Generate(atoms, surface.Options{
		Type:        surface.SurfaceType(cfg.Surface.Type),
		ProbeRadius: cfg.Surface.ProbeRadius,
		Resolution:  cfg.Surface.Resolution,
	})

	if mesh.VertexCount() == 0 {
		logger.Warn("empty mesh, nothing to write")
		return
	}

	if err := writeOBJ(*out, mesh); err != nil {
		logger.Error("failed to write mesh", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("mesh written",
		zap.String("file", *out),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()))
}
