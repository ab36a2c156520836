package surface

import (
	"testing"

	"github.com/chemviz/molsurf/pkg/math"
)

func TestCalcBoundsEmpty(t *testing.T) {
	b := CalcBounds(nil, nil, 0)
	if b.Min != (math.Vec3{}) || b.Max != (math.Vec3{}) {
		t.Errorf("empty input bounds = %v/%v, want zero box", b.Min, b.Max)
	}
}

func TestCalcBoundsSingleAtom(t *testing.T) {
	positions := []math.Vec3{{X: 1, Y: 2, Z: 3}}
	radii := []float32{1.5}

	b := CalcBounds(positions, radii, 0)

	// radius 1.5 plus 2.0 padding on each side
	wantMin := math.Vec3{X: -2.5, Y: -1.5, Z: -0.5}
	wantMax := math.Vec3{X: 4.5, Y: 5.5, Z: 6.5}
	if b.Min != wantMin {
		t.Errorf("Min = %v, want %v", b.Min, wantMin)
	}
	if b.Max != wantMax {
		t.Errorf("Max = %v, want %v", b.Max, wantMax)
	}
}

func TestCalcBoundsProbeExpandsPadding(t *testing.T) {
	positions := []math.Vec3{{}}
	radii := []float32{1.0}

	vdw := CalcBounds(positions, radii, 0)
	sas := CalcBounds(positions, radii, 1.4)

	if sas.Min.X != vdw.Min.X-1.4 {
		t.Errorf("SAS Min.X = %v, want %v", sas.Min.X, vdw.Min.X-1.4)
	}
	if sas.Max.Y != vdw.Max.Y+1.4 {
		t.Errorf("SAS Max.Y = %v, want %v", sas.Max.Y, vdw.Max.Y+1.4)
	}
}

func TestCalcBoundsCoversAllSpheres(t *testing.T) {
	positions := []math.Vec3{
		{X: -5, Y: 0, Z: 0},
		{X: 5, Y: 3, Z: -2},
		{X: 0, Y: -4, Z: 7},
	}
	radii := []float32{1.2, 1.7, 1.5}

	b := CalcBounds(positions, radii, 0)
	for i, p := range positions {
		r := radii[i]
		if p.X-r < b.Min.X || p.Y-r < b.Min.Y || p.Z-r < b.Min.Z ||
			p.X+r > b.Max.X || p.Y+r > b.Max.Y || p.Z+r > b.Max.Z {
			t.Errorf("atom %d sphere not covered by bounds %v/%v", i, b.Min, b.Max)
		}
	}
	if b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z {
		t.Errorf("bounds inverted: %v/%v", b.Min, b.Max)
	}
}
