package surface

import (
	"github.com/chemviz/molsurf/pkg/math"
)

const (
	// isoLevel is the density threshold defining the surface in Gaussian
	// mode. The signed field stores isoLevel - density, so the surface
	// always sits at zero.
	isoLevel float32 = 0.5

	// gaussianSharpness is the exponent factor of the per-atom Gaussian
	// falloff exp(-sharpness*((d/r)^2 - 1)). The normalized exponent puts
	// an isolated atom's isosurface just outside its radius.
	gaussianSharpness float32 = 2.0

	// gaussianAtomLimit is the CPU-path atom count up to which Gaussian
	// blending is used; larger inputs switch to the faster hard-sphere
	// distance rule.
	gaussianAtomLimit = 256

	// outsideValue marks voxels with no atom in range.
	outsideValue float32 = 1e6
)

// ScalarField is a dense signed scalar sampling over a grid of W*H*D voxels.
// Voxel (x,y,z) is centered at Origin + (index+0.5)*Step. Negative values are
// inside the surface. Owner holds the nearest atom index per voxel, -1 where
// no atom is in range.
type ScalarField struct {
	W, H, D int
	Step    float32
	Origin  math.Vec3
	Values  []float32
	Owner   []int32
}

// NewField allocates a field with Owner initialized to -1.
func NewField(w, h, d int, step float32, origin math.Vec3) *ScalarField {
	f := &ScalarField{
		W:      w,
		H:      h,
		D:      d,
		Step:   step,
		Origin: origin,
		Values: make([]float32, w*h*d),
		Owner:  make([]int32, w*h*d),
	}
	for i := range f.Owner {
		f.Owner[i] = -1
	}
	return f
}

// Index returns the flat index of voxel (x,y,z).
func (f *ScalarField) Index(x, y, z int) int {
	return (z*f.H+y)*f.W + x
}

// VoxelCenter returns the world position of voxel (x,y,z).
func (f *ScalarField) VoxelCenter(x, y, z int) math.Vec3 {
	return math.Vec3{
		X: f.Origin.X + (float32(x)+0.5)*f.Step,
		Y: f.Origin.Y + (float32(y)+0.5)*f.Step,
		Z: f.Origin.Z + (float32(z)+0.5)*f.Step,
	}
}

// Gradient returns the central-difference gradient at voxel (x,y,z),
// falling back to one-sided differences at the grid boundary.
func (f *ScalarField) Gradient(x, y, z int) math.Vec3 {
	return math.Vec3{
		X: f.Values[f.Index(clampVoxel(x+1, f.W), y, z)] - f.Values[f.Index(clampVoxel(x-1, f.W), y, z)],
		Y: f.Values[f.Index(x, clampVoxel(y+1, f.H), z)] - f.Values[f.Index(x, clampVoxel(y-1, f.H), z)],
		Z: f.Values[f.Index(x, y, clampVoxel(z+1, f.D))] - f.Values[f.Index(x, y, clampVoxel(z-1, f.D))],
	}
}

func clampVoxel(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// FieldDims returns the voxel grid dimensions for the given bounds and step.
// Both field strategies must use this so their outputs stay comparable.
func FieldDims(b Bounds, step float32) (w, h, d int) {
	size := b.Size()
	w = int(size.X/step) + 1
	h = int(size.Y/step) + 1
	d = int(size.Z/step) + 1
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if d < 1 {
		d = 1
	}
	return w, h, d
}

// FieldComputer evaluates the signed scalar field for a resolved atom set.
// Implementations must be numerically compatible: same dims, same sign
// convention, values agreeing within a small tolerance.
type FieldComputer interface {
	// Name identifies the strategy in logs.
	Name() string
	// ComputeField samples the field over the bounds at the given step.
	// Radii must already include the probe expansion for SAS surfaces.
	ComputeField(positions []math.Vec3, radii []float32, b Bounds, step float32) (*ScalarField, error)
}
