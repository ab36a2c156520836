package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/chemviz/molsurf/internal/surface"
)

// writeOBJ writes the mesh as a Wavefront OBJ with per-vertex normals.
func writeOBJ(path string, mesh *surface.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	for i := 0; i < mesh.VertexCount(); i++ {
		fmt.Fprintf(w, "v %g %g %g\n", mesh.Positions[i*3], mesh.Positions[i*3+1], mesh.Positions[i*3+2])
	}
	for i := 0; i < mesh.VertexCount(); i++ {
		fmt.Fprintf(w, "vn %g %g %g\n", mesh.Normals[i*3], mesh.Normals[i*3+1], mesh.Normals[i*3+2])
	}
	// OBJ indices are 1-based
	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		a, b, c := mesh.Indices[t]+1, mesh.Indices[t+1]+1, mesh.Indices[t+2]+1
		fmt.Fprintf(w, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}

	return w.Flush()
}
