package surface

import (
	"github.com/chemviz/molsurf/pkg/math"
)

// Laplacian smoothing defaults.
const (
	smoothIterations = 2
	smoothLambda     = 0.5
)

// SmoothMesh runs Laplacian relaxation over the mesh in place to soften
// voxel-grid faceting, then recomputes vertex normals from face normals.
// The index buffer is never modified.
func SmoothMesh(mesh *Mesh, iterations int, lambda float32) {
	n := mesh.VertexCount()
	if n == 0 || iterations <= 0 {
		return
	}

	adjacency := buildAdjacency(mesh)

	current := make([]math.Vec3, n)
	next := make([]math.Vec3, n)
	for i := 0; i < n; i++ {
		current[i] = mesh.Vertex(i)
	}

	for it := 0; it < iterations; it++ {
		for i := 0; i < n; i++ {
			neighbors := adjacency[i]
			if len(neighbors) == 0 {
				next[i] = current[i]
				continue
			}
			var centroid math.Vec3
			for _, j := range neighbors {
				centroid = centroid.Add(current[j])
			}
			centroid = centroid.Scale(1 / float32(len(neighbors)))
			next[i] = current[i].Add(centroid.Sub(current[i]).Scale(lambda))
		}
		current, next = next, current
	}

	for i := 0; i < n; i++ {
		mesh.Positions[i*3] = current[i].X
		mesh.Positions[i*3+1] = current[i].Y
		mesh.Positions[i*3+2] = current[i].Z
	}

	recomputeNormals(mesh)
}

// buildAdjacency derives the undirected vertex adjacency from the triangle
// index buffer. Each triangle contributes its three edges.
func buildAdjacency(mesh *Mesh) [][]uint32 {
	adjacency := make([][]uint32, mesh.VertexCount())

	addEdge := func(a, b uint32) {
		for _, j := range adjacency[a] {
			if j == b {
				return
			}
		}
		adjacency[a] = append(adjacency[a], b)
	}

	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		a, b, c := mesh.Indices[t], mesh.Indices[t+1], mesh.Indices[t+2]
		addEdge(a, b)
		addEdge(b, a)
		addEdge(b, c)
		addEdge(c, b)
		addEdge(c, a)
		addEdge(a, c)
	}

	return adjacency
}

// recomputeNormals accumulates un-normalized face normals into each
// triangle's vertices and normalizes. Zero-length accumulations default
// to +Y.
func recomputeNormals(mesh *Mesh) {
	n := mesh.VertexCount()
	acc := make([]math.Vec3, n)

	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		a, b, c := mesh.Indices[t], mesh.Indices[t+1], mesh.Indices[t+2]
		va := mesh.Vertex(int(a))
		vb := mesh.Vertex(int(b))
		vc := mesh.Vertex(int(c))
		face := vb.Sub(va).Cross(vc.Sub(va))
		acc[a] = acc[a].Add(face)
		acc[b] = acc[b].Add(face)
		acc[c] = acc[c].Add(face)
	}

	for i := 0; i < n; i++ {
		normal := acc[i].Normalize()
		if normal == (math.Vec3{}) {
			normal = math.Vec3{Y: 1}
		}
		// Keep the outward orientation established by the field gradient.
		prev := math.Vec3{X: mesh.Normals[i*3], Y: mesh.Normals[i*3+1], Z: mesh.Normals[i*3+2]}
		if normal.Dot(prev) < 0 {
			normal = normal.Scale(-1)
		}
		mesh.Normals[i*3] = normal.X
		mesh.Normals[i*3+1] = normal.Y
		mesh.Normals[i*3+2] = normal.Z
	}
}
