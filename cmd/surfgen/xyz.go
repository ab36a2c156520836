package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chemviz/molsurf/internal/surface"
	"github.com/chemviz/molsurf/pkg/math"
)

// readXYZ parses a minimal XYZ file: an atom count line, a comment line,
// then one "Element x y z" line per atom.
func readXYZ(path string) ([]surface.Atom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if !scanner.Scan() {
		return nil, fmt.Errorf("%s: missing atom count line", path)
	}
	count, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("%s: bad atom count: %w", path, err)
	}

	// Comment line
	if !scanner.Scan() {
		return nil, fmt.Errorf("%s: truncated file", path)
	}

	atoms := make([]surface.Atom, 0, count)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("%s: malformed atom line %q", path, scanner.Text())
		}

		x, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			return nil, fmt.Errorf("%s: bad coordinate: %w", path, err)
		}
		y, err := strconv.ParseFloat(fields[2], 32)
		if err != nil {
			return nil, fmt.Errorf("%s: bad coordinate: %w", path, err)
		}
		z, err := strconv.ParseFloat(fields[3], 32)
		if err != nil {
			return nil, fmt.Errorf("%s: bad coordinate: %w", path, err)
		}

		atoms = append(atoms, surface.Atom{
			Element:  fields[0],
			Position: math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(atoms) != count {
		return nil, fmt.Errorf("%s: header declares %d atoms, found %d", path, count, len(atoms))
	}
	return atoms, nil
}
