package surface

import (
	"github.com/chewxy/math32"

	"github.com/chemviz/molsurf/pkg/math"
)

// CPUFieldComputer samples the scalar field on the CPU, gathering candidate
// atoms per voxel from the acceleration grid. Below gaussianAtomLimit atoms
// it blends Gaussian densities for a smooth merged surface; above it, it
// uses the hard-sphere signed distance to the closest sphere.
type CPUFieldComputer struct{}

// Name implements FieldComputer.
func (CPUFieldComputer) Name() string { return "cpu" }

// ComputeField implements FieldComputer.
func (c CPUFieldComputer) ComputeField(positions []math.Vec3, radii []float32, b Bounds, step float32) (*ScalarField, error) {
	w, h, d := FieldDims(b, step)
	f := NewField(w, h, d, step, b.Min)

	grid := newAccelGrid(positions, radii, b)
	gaussian := len(positions) <= gaussianAtomLimit
	scratch := make([]int32, 0, 64)

	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				p := f.VoxelCenter(x, y, z)
				scratch = grid.neighbors(p, scratch[:0])
				idx := f.Index(x, y, z)

				if len(scratch) == 0 {
					f.Values[idx] = outsideValue
					continue
				}

				if gaussian {
					f.Values[idx], f.Owner[idx] = gaussianSample(p, positions, radii, scratch)
				} else {
					f.Values[idx], f.Owner[idx] = hardSphereSample(p, positions, radii, scratch)
				}
			}
		}
	}

	return f, nil
}

// gaussianSample sums normalized Gaussian contributions over the candidate
// atoms. The owner is the atom with the largest single contribution.
func gaussianSample(p math.Vec3, positions []math.Vec3, radii []float32, candidates []int32) (float32, int32) {
	var density float32
	var bestTerm float32
	owner := int32(-1)

	for _, ai := range candidates {
		q := p.Distance(positions[ai]) / radii[ai]
		term := math32.Exp(-gaussianSharpness * (q*q - 1))
		density += term
		if term > bestTerm {
			bestTerm = term
			owner = ai
		}
	}

	return isoLevel - density, owner
}

// hardSphereSample returns the signed distance to the closest sphere
// surface. Minimization is by absolute value so the sign of the nearest
// crossing survives; a plain minimum would always prefer deep-inside
// negative values.
func hardSphereSample(p math.Vec3, positions []math.Vec3, radii []float32, candidates []int32) (float32, int32) {
	best := outsideValue
	owner := int32(-1)

	for _, ai := range candidates {
		v := p.Distance(positions[ai]) - radii[ai]
		if math32.Abs(v) < math32.Abs(best) {
			best = v
			owner = ai
		}
	}

	return best, owner
}
