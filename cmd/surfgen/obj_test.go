package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chemviz/molsurf/internal/surface"
)

func TestWriteOBJ(t *testing.T) {
	mesh := &surface.Mesh{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:   []uint32{0, 1, 2},
	}
	path := filepath.Join(t.TempDir(), "out.obj")

	if err := writeOBJ(path, mesh); err != nil {
		t.Fatalf("writeOBJ failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), data)
	}
	if lines[0] != "v 0 0 0" || lines[1] != "v 1 0 0" {
		t.Errorf("unexpected vertex lines: %q, %q", lines[0], lines[1])
	}
	if lines[3] != "vn 0 0 1" {
		t.Errorf("unexpected normal line: %q", lines[3])
	}
	// Face indices are 1-based.
	if lines[6] != "f 1//1 2//2 3//3" {
		t.Errorf("unexpected face line: %q", lines[6])
	}
}

func TestWriteOBJEmptyMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.obj")
	if err := writeOBJ(path, &surface.Mesh{}); err != nil {
		t.Fatalf("writeOBJ failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("empty mesh wrote %d bytes, want 0", len(data))
	}
}
