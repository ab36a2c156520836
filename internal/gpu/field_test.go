package gpu

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"

	"github.com/chemviz/molsurf/internal/surface"
	"github.com/chemviz/molsurf/pkg/math"
)

// newTestContext creates a GL context or skips the test when no display or
// driver is available, as on CI machines.
func newTestContext(t *testing.T) *Context {
	t.Helper()
	ctx, err := NewContext()
	if err != nil {
		t.Skipf("no GL context available: %v", err)
	}
	t.Cleanup(ctx.Destroy)
	return ctx
}

func TestProbeCapabilities(t *testing.T) {
	ctx := newTestContext(t)
	caps := ctx.Probe()
	if !caps.FloatTextures {
		t.Error("core profile context must report float texture support")
	}
	if caps.MaxTextureSize < 1024 {
		t.Errorf("MaxTextureSize = %d, unexpectedly small", caps.MaxTextureSize)
	}
}

func TestComputeFieldMatchesCPU(t *testing.T) {
	ctx := newTestContext(t)
	gpu := NewComputer(ctx)
	var cpu surface.CPUFieldComputer

	rng := rand.New(rand.NewSource(7))
	positions := make([]math.Vec3, 32)
	radii := make([]float32, 32)
	for i := range positions {
		positions[i] = math.Vec3{
			X: rng.Float32() * 8,
			Y: rng.Float32() * 8,
			Z: rng.Float32() * 8,
		}
		radii[i] = 1.2 + rng.Float32()*0.8
	}
	b := surface.CalcBounds(positions, radii, 0)

	gf, err := gpu.ComputeField(positions, radii, b, 0.5)
	if err != nil {
		t.Fatalf("GPU ComputeField failed: %v", err)
	}
	cf, err := cpu.ComputeField(positions, radii, b, 0.5)
	if err != nil {
		t.Fatalf("CPU ComputeField failed: %v", err)
	}

	if gf.W != cf.W || gf.H != cf.H || gf.D != cf.D {
		t.Fatalf("dims differ: GPU %dx%dx%d, CPU %dx%dx%d", gf.W, gf.H, gf.D, cf.W, cf.H, cf.D)
	}

	// The CPU path writes outsideValue where the acceleration grid finds no
	// atoms; the shader evaluates every atom everywhere. Compare only where
	// the CPU value is meaningful, and compare signs plus a loose tolerance
	// since the shader runs a different summation order.
	for i := range cf.Values {
		cv, gv := cf.Values[i], gf.Values[i]
		if cv >= 1e5 {
			if gv < 0 {
				t.Fatalf("voxel %d: GPU inside (%v) where CPU saw no atoms", i, gv)
			}
			continue
		}
		if (cv < 0) != (gv < 0) && math32.Abs(cv) > 1e-3 {
			t.Fatalf("voxel %d: sign differs, CPU %v GPU %v", i, cv, gv)
		}
		if math32.Abs(cv-gv) > 1e-2 {
			t.Fatalf("voxel %d: CPU %v GPU %v", i, cv, gv)
		}
	}
}

func TestComputeFieldOwnersAgree(t *testing.T) {
	ctx := newTestContext(t)
	gpu := NewComputer(ctx)
	var cpu surface.CPUFieldComputer

	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 4, Y: 0, Z: 0},
		{X: 0, Y: 4, Z: 0},
		{X: 0, Y: 0, Z: 4},
		{X: 4, Y: 4, Z: 0},
		{X: 4, Y: 0, Z: 4},
		{X: 0, Y: 4, Z: 4},
		{X: 4, Y: 4, Z: 4},
		{X: 2, Y: 2, Z: 2},
		{X: 6, Y: 2, Z: 2},
		{X: 2, Y: 6, Z: 2},
		{X: 2, Y: 2, Z: 6},
		{X: 6, Y: 6, Z: 2},
		{X: 6, Y: 2, Z: 6},
		{X: 2, Y: 6, Z: 6},
		{X: 6, Y: 6, Z: 6},
	}
	radii := make([]float32, len(positions))
	for i := range radii {
		radii[i] = 1.5
	}
	b := surface.CalcBounds(positions, radii, 0)

	gf, err := gpu.ComputeField(positions, radii, b, 0.5)
	if err != nil {
		t.Fatalf("GPU ComputeField failed: %v", err)
	}
	cf, err := cpu.ComputeField(positions, radii, b, 0.5)
	if err != nil {
		t.Fatalf("CPU ComputeField failed: %v", err)
	}

	// Ownership can legitimately differ where two atoms contribute near
	// equally; require agreement only at clearly inside voxels.
	for i := range cf.Values {
		if cf.Values[i] > -0.5 || cf.Values[i] >= 1e5 {
			continue
		}
		if cf.Owner[i] != gf.Owner[i] {
			t.Fatalf("voxel %d: CPU owner %d, GPU owner %d", i, cf.Owner[i], gf.Owner[i])
		}
	}
}
