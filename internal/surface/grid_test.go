package surface

import (
	"math/rand"
	"testing"

	"github.com/chemviz/molsurf/pkg/math"
)

func TestAccelGridFindsNearbyAtoms(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	positions := make([]math.Vec3, 200)
	radii := make([]float32, 200)
	for i := range positions {
		positions[i] = math.Vec3{
			X: rng.Float32() * 40,
			Y: rng.Float32() * 40,
			Z: rng.Float32() * 40,
		}
		radii[i] = 1 + rng.Float32()
	}

	b := CalcBounds(positions, radii, 0)
	g := newAccelGrid(positions, radii, b)

	scratch := make([]int32, 0, 64)
	for trial := 0; trial < 100; trial++ {
		p := math.Vec3{
			X: rng.Float32() * 40,
			Y: rng.Float32() * 40,
			Z: rng.Float32() * 40,
		}
		scratch = g.neighbors(p, scratch[:0])

		found := make(map[int32]bool, len(scratch))
		for _, ai := range scratch {
			if found[ai] {
				t.Fatalf("query returned duplicate atom %d", ai)
			}
			found[ai] = true
		}

		// Every atom within one cell size of the query point must be
		// reported; farther atoms cannot influence the voxel.
		for i, ap := range positions {
			if p.Distance(ap) <= g.cellSize && !found[int32(i)] {
				t.Errorf("atom %d at distance %v missing from query at %v",
					i, p.Distance(ap), p)
			}
		}
	}
}

func TestAccelGridSingleAtom(t *testing.T) {
	positions := []math.Vec3{{X: 1, Y: 1, Z: 1}}
	radii := []float32{1.5}

	b := CalcBounds(positions, radii, 0)
	g := newAccelGrid(positions, radii, b)

	got := g.neighbors(positions[0], nil)
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("neighbors at atom position = %v, want [0]", got)
	}
}

func TestAccelGridGenerationWraparound(t *testing.T) {
	positions := []math.Vec3{{}}
	radii := []float32{1.0}
	b := CalcBounds(positions, radii, 0)
	g := newAccelGrid(positions, radii, b)

	// Force the stamp counter to wrap and verify dedup still holds.
	g.generation = ^uint32(0)
	got := g.neighbors(positions[0], nil)
	if len(got) != 1 {
		t.Errorf("after wraparound, neighbors = %v, want one atom", got)
	}
	got = g.neighbors(positions[0], nil)
	if len(got) != 1 {
		t.Errorf("second query after wraparound = %v, want one atom", got)
	}
}
