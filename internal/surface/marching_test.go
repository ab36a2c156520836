package surface

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/chemviz/molsurf/pkg/math"
)

// sphereField samples the signed distance to a sphere of the given radius
// centered in the field.
func sphereField(n int, step, radius float32) *ScalarField {
	half := float32(n) * step / 2
	f := NewField(n, n, n, step, math.Vec3{X: -half, Y: -half, Z: -half})
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				f.Values[f.Index(x, y, z)] = f.VoxelCenter(x, y, z).Length() - radius
				f.Owner[f.Index(x, y, z)] = 0
			}
		}
	}
	return f
}

func TestExtractSurfaceUniformField(t *testing.T) {
	f := NewField(4, 4, 4, 1, math.Vec3{})
	for i := range f.Values {
		f.Values[i] = 1
	}
	mesh := ExtractSurface(f)
	if mesh.VertexCount() != 0 || mesh.TriangleCount() != 0 {
		t.Errorf("all-positive field yielded %d verts, %d tris", mesh.VertexCount(), mesh.TriangleCount())
	}

	for i := range f.Values {
		f.Values[i] = -1
	}
	mesh = ExtractSurface(f)
	if mesh.VertexCount() != 0 || mesh.TriangleCount() != 0 {
		t.Errorf("all-negative field yielded %d verts, %d tris", mesh.VertexCount(), mesh.TriangleCount())
	}
}

func TestExtractSurfaceSingleCorner(t *testing.T) {
	// One inside corner in a single cell clips exactly one triangle.
	f := NewField(2, 2, 2, 1, math.Vec3{})
	for i := range f.Values {
		f.Values[i] = 1
	}
	f.Values[f.Index(0, 0, 0)] = -1

	mesh := ExtractSurface(f)
	if mesh.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
	if mesh.VertexCount() != 3 {
		t.Errorf("VertexCount = %d, want 3", mesh.VertexCount())
	}

	// Equal-magnitude corner values put each crossing at the edge midpoint.
	for i := 0; i < mesh.VertexCount(); i++ {
		p := mesh.Vertex(i)
		if d := p.Distance(f.VoxelCenter(0, 0, 0)); math32.Abs(d-0.5) > 1e-5 {
			t.Errorf("vertex %d at distance %v from inside corner, want 0.5", i, d)
		}
	}
}

func TestExtractSurfaceSphere(t *testing.T) {
	const radius = 3.0
	f := sphereField(32, 0.4, radius)
	mesh := ExtractSurface(f)

	if mesh.VertexCount() == 0 {
		t.Fatal("sphere field produced no vertices")
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("sphere field produced no triangles")
	}

	for i := 0; i < mesh.VertexCount(); i++ {
		p := mesh.Vertex(i)
		n := math.Vec3{X: mesh.Normals[i*3], Y: mesh.Normals[i*3+1], Z: mesh.Normals[i*3+2]}
		if d := p.Length(); math32.Abs(d-radius) > 0.05 {
			t.Fatalf("vertex %d at distance %v from center, want ~%v", i, d, radius)
		}
		if l := n.Length(); math32.Abs(l-1) > 1e-3 {
			t.Fatalf("vertex %d normal length = %v, want 1", i, l)
		}
		// Signed distance gradient points radially outward.
		if n.Dot(p.Normalize()) < 0.8 {
			t.Fatalf("vertex %d normal %v not outward at %v", i, n, p)
		}
	}
}

func TestExtractSurfaceIndicesInBounds(t *testing.T) {
	f := sphereField(24, 0.5, 3.5)
	mesh := ExtractSurface(f)

	if len(mesh.Indices)%3 != 0 {
		t.Fatalf("index count %d not a multiple of 3", len(mesh.Indices))
	}
	n := uint32(mesh.VertexCount())
	for i, idx := range mesh.Indices {
		if idx >= n {
			t.Fatalf("index %d = %d out of range (%d vertices)", i, idx, n)
		}
	}
	if len(mesh.AtomIndex) != mesh.VertexCount() {
		t.Errorf("AtomIndex length %d, want %d", len(mesh.AtomIndex), mesh.VertexCount())
	}
}

func TestExtractSurfaceWeldsSharedVertices(t *testing.T) {
	f := sphereField(24, 0.5, 3.5)
	mesh := ExtractSurface(f)

	seen := make(map[weldKey]int)
	for i := 0; i < mesh.VertexCount(); i++ {
		p := mesh.Vertex(i)
		key := makeWeldKey(p)
		if prev, ok := seen[key]; ok {
			t.Fatalf("vertices %d and %d share quantized position %v", prev, i, p)
		}
		seen[key] = i
	}

	// A welded closed surface has far fewer vertices than raw triangle
	// corners.
	if mesh.VertexCount() >= len(mesh.Indices) {
		t.Errorf("VertexCount %d not reduced below index count %d", mesh.VertexCount(), len(mesh.Indices))
	}
}

func TestMarchingTablesConsistent(t *testing.T) {
	for mask := 0; mask < 256; mask++ {
		var used uint16
		row := &mcTriTable[mask]
		for i := 0; i < 16 && row[i] != -1; i++ {
			if row[i] < 0 || row[i] > 11 {
				t.Fatalf("mask %d: edge %d out of range", mask, row[i])
			}
			used |= 1 << uint(row[i])
		}
		if used != mcEdgeTable[mask] {
			t.Fatalf("mask %d: triangle edges %012b != edge table %012b", mask, used, mcEdgeTable[mask])
		}
		if mcEdgeTable[mask] != mcEdgeTable[255-mask] {
			t.Fatalf("mask %d: edge table not symmetric with %d", mask, 255-mask)
		}
	}
}
