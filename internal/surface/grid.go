package surface

import (
	"github.com/chemviz/molsurf/pkg/math"
)

// accelGrid is a uniform spatial grid over the field bounds. Every atom is
// inserted into its home cell and all 26 adjacent cells, so a query only
// has to walk the 3x3x3 neighborhood of the query point's cell to see every
// atom that can influence it. The redundancy trades memory for branch-light
// query code.
type accelGrid struct {
	origin     math.Vec3
	cellSize   float32
	nx, ny, nz int

	cells [][]int32

	// Generation-stamped visited marks, reused across queries so dedup
	// costs no per-query allocation or clear.
	visited    []uint32
	generation uint32
}

// newAccelGrid builds the grid for the given atom set. Cell size is derived
// from the largest atom radius so the 27-cell neighborhood is guaranteed to
// cover every influencing atom.
func newAccelGrid(positions []math.Vec3, radii []float32, b Bounds) *accelGrid {
	var maxRadius float32
	for _, r := range radii {
		if r > maxRadius {
			maxRadius = r
		}
	}
	if maxRadius < 2.0 {
		maxRadius = 2.0
	}
	cellSize := maxRadius * 2.5

	size := b.Size()
	g := &accelGrid{
		origin:   b.Min,
		cellSize: cellSize,
		nx:       gridDim(size.X, cellSize),
		ny:       gridDim(size.Y, cellSize),
		nz:       gridDim(size.Z, cellSize),
		visited:  make([]uint32, len(positions)),
	}
	g.cells = make([][]int32, g.nx*g.ny*g.nz)

	for i, p := range positions {
		cx, cy, cz := g.cellOf(p)
		for dz := -1; dz <= 1; dz++ {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					x, y, z := cx+dx, cy+dy, cz+dz
					if x < 0 || x >= g.nx || y < 0 || y >= g.ny || z < 0 || z >= g.nz {
						continue
					}
					idx := (z*g.ny+y)*g.nx + x
					g.cells[idx] = append(g.cells[idx], int32(i))
				}
			}
		}
	}

	return g
}

func gridDim(extent, cellSize float32) int {
	n := int(extent/cellSize) + 1
	if n < 1 {
		n = 1
	}
	return n
}

// cellOf returns the cell coordinates containing p, clamped into range.
func (g *accelGrid) cellOf(p math.Vec3) (int, int, int) {
	local := p.Sub(g.origin)
	return clampCell(int(local.X/g.cellSize), g.nx),
		clampCell(int(local.Y/g.cellSize), g.ny),
		clampCell(int(local.Z/g.cellSize), g.nz)
}

func clampCell(c, n int) int {
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}

// neighbors appends to out the deduplicated indices of atoms that may
// influence p, gathered from the 3x3x3 neighborhood of p's cell. The
// returned slice aliases out's backing array.
func (g *accelGrid) neighbors(p math.Vec3, out []int32) []int32 {
	g.generation++
	if g.generation == 0 {
		// Stamp counter wrapped: invalidate all marks once.
		for i := range g.visited {
			g.visited[i] = 0
		}
		g.generation = 1
	}

	cx, cy, cz := g.cellOf(p)
	for dz := -1; dz <= 1; dz++ {
		z := cz + dz
		if z < 0 || z >= g.nz {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			y := cy + dy
			if y < 0 || y >= g.ny {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				x := cx + dx
				if x < 0 || x >= g.nx {
					continue
				}
				for _, ai := range g.cells[(z*g.ny+y)*g.nx+x] {
					if g.visited[ai] != g.generation {
						g.visited[ai] = g.generation
						out = append(out, ai)
					}
				}
			}
		}
	}
	return out
}
