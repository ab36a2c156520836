package surface

import (
	"github.com/chemviz/molsurf/pkg/math"
)

// boundsPadding is added beyond the outermost atom sphere so the scalar
// field always has a rim of outside voxels around the surface.
const boundsPadding = 2.0

// Bounds is an axis-aligned box. Max >= Min component-wise.
type Bounds struct {
	Min, Max math.Vec3
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// MaxExtent returns the largest axis extent.
func (b Bounds) MaxExtent() float32 {
	s := b.Size()
	e := s.X
	if s.Y > e {
		e = s.Y
	}
	if s.Z > e {
		e = s.Z
	}
	return e
}

// CalcBounds computes the axis-aligned box covering every atom sphere,
// expanded by a fixed padding plus the probe radius. Radii must already
// include the probe expansion for SAS. An empty atom set yields a
// degenerate zero-size box; callers treat empty input specially upstream.
func CalcBounds(positions []math.Vec3, radii []float32, probeRadius float32) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}

	b := Bounds{
		Min: positions[0],
		Max: positions[0],
	}
	for i, p := range positions {
		r := radii[i]
		b.Min = b.Min.Min(p.AddScalar(-r))
		b.Max = b.Max.Max(p.AddScalar(r))
	}

	pad := float32(boundsPadding) + probeRadius
	b.Min = b.Min.AddScalar(-pad)
	b.Max = b.Max.AddScalar(pad)
	return b
}
