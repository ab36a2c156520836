package surface

import (
	"github.com/chewxy/math32"

	"github.com/chemviz/molsurf/pkg/math"
)

// weldScale quantizes vertex coordinates for deduplication: positions equal
// to 1/weldScale are considered the same vertex.
const weldScale = 1000

// weldKey identifies a quantized vertex position.
type weldKey struct {
	x, y, z int32
}

func makeWeldKey(p math.Vec3) weldKey {
	return weldKey{
		x: int32(math32.Round(p.X * weldScale)),
		y: int32(math32.Round(p.Y * weldScale)),
		z: int32(math32.Round(p.Z * weldScale)),
	}
}

// ExtractSurface runs Marching Cubes over the scalar field and returns the
// deduplicated triangle mesh. The surface is the zero level set; normals
// come from the interpolated field gradient, not from mesh topology.
func ExtractSurface(f *ScalarField) *Mesh {
	mesh := &Mesh{}
	welded := make(map[weldKey]uint32)

	// Per-cell vertex index for each of the 12 edges.
	var edgeVerts [12]int64

	for z := 0; z < f.D-1; z++ {
		for y := 0; y < f.H-1; y++ {
			for x := 0; x < f.W-1; x++ {
				var corner [8]float32
				var mask int
				for i, off := range mcCornerOffsets {
					corner[i] = f.Values[f.Index(x+off[0], y+off[1], z+off[2])]
					if corner[i] < 0 {
						mask |= 1 << i
					}
				}
				// Entirely outside or entirely inside.
				if mask == 0 || mask == 255 {
					continue
				}

				edges := mcEdgeTable[mask]
				for e := 0; e < 12; e++ {
					edgeVerts[e] = -1
					if edges&(1<<e) == 0 {
						continue
					}
					edgeVerts[e] = int64(emitEdgeVertex(f, mesh, welded, x, y, z, e, &corner))
				}

				tris := &mcTriTable[mask]
				for t := 0; t < 16 && tris[t] != -1; t += 3 {
					i0 := edgeVerts[tris[t]]
					i1 := edgeVerts[tris[t+1]]
					i2 := edgeVerts[tris[t+2]]
					if i0 < 0 || i1 < 0 || i2 < 0 {
						continue
					}
					mesh.Indices = append(mesh.Indices, uint32(i0), uint32(i1), uint32(i2))
				}
			}
		}
	}

	return mesh
}

// emitEdgeVertex interpolates the surface crossing on cell edge e and
// returns its mesh vertex index, reusing a welded vertex when the quantized
// position was already emitted by a neighboring cell.
func emitEdgeVertex(f *ScalarField, mesh *Mesh, welded map[weldKey]uint32, x, y, z, e int, corner *[8]float32) uint32 {
	c0 := mcEdgeCorners[e][0]
	c1 := mcEdgeCorners[e][1]
	v0 := corner[c0]
	v1 := corner[c1]

	// Parametric crossing for the zero level set.
	var t float32
	if denom := v0 - v1; denom != 0 {
		t = v0 / denom
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	o0 := mcCornerOffsets[c0]
	o1 := mcCornerOffsets[c1]
	x0, y0, z0 := x+o0[0], y+o0[1], z+o0[2]
	x1, y1, z1 := x+o1[0], y+o1[1], z+o1[2]

	pos := f.VoxelCenter(x0, y0, z0).Lerp(f.VoxelCenter(x1, y1, z1), t)

	key := makeWeldKey(pos)
	if idx, ok := welded[key]; ok {
		return idx
	}

	normal := f.Gradient(x0, y0, z0).Lerp(f.Gradient(x1, y1, z1), t).Normalize()
	if normal == (math.Vec3{}) {
		normal = math.Vec3{Y: 1}
	}

	idx := uint32(mesh.VertexCount())
	welded[key] = idx
	mesh.Positions = append(mesh.Positions, pos.X, pos.Y, pos.Z)
	mesh.Normals = append(mesh.Normals, normal.X, normal.Y, normal.Z)
	mesh.AtomIndex = append(mesh.AtomIndex, edgeOwner(f, x0, y0, z0, x1, y1, z1, v0, v1))
	return idx
}

// edgeOwner picks the vertex's nearest atom from the edge corner with the
// smaller absolute field value, falling back to the other corner, then to
// atom 0.
func edgeOwner(f *ScalarField, x0, y0, z0, x1, y1, z1 int, v0, v1 float32) int32 {
	near := f.Owner[f.Index(x0, y0, z0)]
	far := f.Owner[f.Index(x1, y1, z1)]
	if math32.Abs(v1) < math32.Abs(v0) {
		near, far = far, near
	}
	if near >= 0 {
		return near
	}
	if far >= 0 {
		return far
	}
	return 0
}
