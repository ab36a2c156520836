package surface

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/chemviz/molsurf/pkg/math"
)

func TestFieldDims(t *testing.T) {
	b := Bounds{Max: math.Vec3{X: 10, Y: 5, Z: 2.5}}
	w, h, d := FieldDims(b, 0.5)
	if w != 21 || h != 11 || d != 6 {
		t.Errorf("FieldDims = %d,%d,%d, want 21,11,6", w, h, d)
	}

	w, h, d = FieldDims(Bounds{}, 0.5)
	if w != 1 || h != 1 || d != 1 {
		t.Errorf("degenerate FieldDims = %d,%d,%d, want 1,1,1", w, h, d)
	}
}

func TestVoxelCenter(t *testing.T) {
	f := NewField(4, 4, 4, 0.5, math.Vec3{X: -1, Y: -1, Z: -1})
	got := f.VoxelCenter(0, 0, 0)
	want := math.Vec3{X: -0.75, Y: -0.75, Z: -0.75}
	if got != want {
		t.Errorf("VoxelCenter(0,0,0) = %v, want %v", got, want)
	}
}

func TestCPUFieldSignConvention(t *testing.T) {
	positions := []math.Vec3{{}}
	radii := []float32{1.5}
	b := CalcBounds(positions, radii, 0)

	var cpu CPUFieldComputer
	f, err := cpu.ComputeField(positions, radii, b, 0.3)
	if err != nil {
		t.Fatalf("ComputeField failed: %v", err)
	}

	// Voxel closest to the atom center must be inside (negative).
	cx := int((0 - b.Min.X) / f.Step)
	cy := int((0 - b.Min.Y) / f.Step)
	cz := int((0 - b.Min.Z) / f.Step)
	center := f.Values[f.Index(cx, cy, cz)]
	if center >= 0 {
		t.Errorf("field at atom center = %v, want negative (inside)", center)
	}

	// Boundary voxels sit in the padding rim, outside the surface.
	corner := f.Values[f.Index(0, 0, 0)]
	if corner <= 0 {
		t.Errorf("field at grid corner = %v, want positive (outside)", corner)
	}
}

func TestCPUFieldOutOfRangeVoxels(t *testing.T) {
	positions := []math.Vec3{{}}
	radii := []float32{1.5}
	// Bounds far larger than the atom's influence.
	b := Bounds{Min: math.Vec3{X: -2, Y: -2, Z: -2}, Max: math.Vec3{X: 40, Y: 40, Z: 40}}

	var cpu CPUFieldComputer
	f, err := cpu.ComputeField(positions, radii, b, 1.0)
	if err != nil {
		t.Fatalf("ComputeField failed: %v", err)
	}

	far := f.Index(f.W-1, f.H-1, f.D-1)
	if f.Values[far] != outsideValue {
		t.Errorf("far voxel value = %v, want outsideValue", f.Values[far])
	}
	if f.Owner[far] != -1 {
		t.Errorf("far voxel owner = %d, want -1", f.Owner[far])
	}
}

func TestCPUFieldDeterminism(t *testing.T) {
	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1.5, Y: 0, Z: 0},
		{X: 0.5, Y: 1.2, Z: -0.4},
	}
	radii := []float32{1.52, 1.2, 1.7}
	b := CalcBounds(positions, radii, 0)

	var cpu CPUFieldComputer
	f1, err := cpu.ComputeField(positions, radii, b, 0.4)
	if err != nil {
		t.Fatalf("ComputeField failed: %v", err)
	}
	f2, err := cpu.ComputeField(positions, radii, b, 0.4)
	if err != nil {
		t.Fatalf("ComputeField failed: %v", err)
	}

	if len(f1.Values) != len(f2.Values) {
		t.Fatalf("field sizes differ: %d vs %d", len(f1.Values), len(f2.Values))
	}
	for i := range f1.Values {
		if f1.Values[i] != f2.Values[i] {
			t.Fatalf("value %d differs: %v vs %v", i, f1.Values[i], f2.Values[i])
		}
		if f1.Owner[i] != f2.Owner[i] {
			t.Fatalf("owner %d differs: %d vs %d", i, f1.Owner[i], f2.Owner[i])
		}
	}
}

func TestGaussianSampleOwnership(t *testing.T) {
	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 3, Y: 0, Z: 0},
	}
	radii := []float32{1.5, 1.5}

	// A point next to atom 1 must be owned by atom 1.
	_, owner := gaussianSample(math.Vec3{X: 2.8}, positions, radii, []int32{0, 1})
	if owner != 1 {
		t.Errorf("owner = %d, want 1", owner)
	}

	_, owner = gaussianSample(math.Vec3{X: 0.1}, positions, radii, []int32{0, 1})
	if owner != 0 {
		t.Errorf("owner = %d, want 0", owner)
	}
}

func TestHardSphereSamplePreservesSign(t *testing.T) {
	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 0},  // large atom
		{X: 10, Y: 0, Z: 0}, // small atom
	}
	radii := []float32{3, 1}

	// Point just outside the small atom: minimization by absolute value
	// must pick the nearby crossing, not the far large sphere.
	p := math.Vec3{X: 11.2}
	v, owner := hardSphereSample(p, positions, radii, []int32{0, 1})
	if v <= 0 {
		t.Errorf("value = %v, want positive (outside small atom)", v)
	}
	if owner != 1 {
		t.Errorf("owner = %d, want 1", owner)
	}
	if diff := math32.Abs(v - 0.2); diff > 1e-5 {
		t.Errorf("value = %v, want ~0.2", v)
	}
}

func TestGradientClampedAtBoundary(t *testing.T) {
	f := NewField(2, 2, 2, 1, math.Vec3{})
	for i := range f.Values {
		f.Values[i] = float32(i)
	}

	// Must not panic at the corner; one-sided differences take over.
	g := f.Gradient(0, 0, 0)
	if g == (math.Vec3{}) {
		t.Errorf("gradient at corner = %v, want non-zero", g)
	}
	_ = f.Gradient(1, 1, 1)
}
