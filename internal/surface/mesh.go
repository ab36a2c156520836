// Package surface reconstructs renderable triangle meshes approximating the
// Van der Waals or solvent-accessible surface of an atom set. The pipeline is
// bounds -> acceleration grid -> scalar field -> marching cubes -> smoothing,
// with finished meshes memoized in a small cache.
package surface

import (
	"github.com/chemviz/molsurf/pkg/math"
)

// SurfaceType selects which molecular surface is reconstructed.
type SurfaceType string

const (
	// TypeVDW is the union of atomic spheres at Van der Waals radii.
	TypeVDW SurfaceType = "vdw"
	// TypeSAS expands every radius by the probe radius, approximating the
	// surface reachable by a solvent molecule.
	TypeSAS SurfaceType = "sas"
)

// Atom is one input atom. Positions are in Angstroms. The element symbol is
// resolved to a radius by the generator's RadiusFunc.
type Atom struct {
	Position math.Vec3
	Element  string
}

// Options configures one surface request. The zero value is completed by
// applyDefaults; unrecognized types fall back to VDW.
type Options struct {
	Type        SurfaceType
	ProbeRadius float32 // only meaningful for TypeSAS
	Resolution  float32 // grid step in Angstroms, 0 = auto
}

func (o Options) applyDefaults() Options {
	if o.Type != TypeSAS {
		o.Type = TypeVDW
	}
	if o.ProbeRadius <= 0 {
		o.ProbeRadius = 1.4
	}
	if o.Resolution < 0 {
		o.Resolution = 0
	}
	return o
}

// probe returns the effective probe radius: zero for VDW surfaces.
func (o Options) probe() float32 {
	if o.Type == TypeSAS {
		return o.ProbeRadius
	}
	return 0
}

// Mesh is a reconstructed triangle mesh. Positions and Normals hold xyz
// triples, Indices holds triangle triples, and AtomIndex maps each vertex to
// its nearest atom for coloring.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
	AtomIndex []int32
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) math.Vec3 {
	return math.Vec3{
		X: m.Positions[i*3],
		Y: m.Positions[i*3+1],
		Z: m.Positions[i*3+2],
	}
}
