// Package element provides the per-element Van der Waals radius lookup
// consumed by the surface generator.
package element

import "strings"

// DefaultRadius is used for elements missing from the table.
const DefaultRadius float32 = 1.7

// Bondi radii in Angstroms for the elements common in molecular files.
var vdwRadii = map[string]float32{
	"H":  1.20,
	"He": 1.40,
	"Li": 1.82,
	"B":  1.92,
	"C":  1.70,
	"N":  1.55,
	"O":  1.52,
	"F":  1.47,
	"Ne": 1.54,
	"Na": 2.27,
	"Mg": 1.73,
	"Al": 1.84,
	"Si": 2.10,
	"P":  1.80,
	"S":  1.80,
	"Cl": 1.75,
	"Ar": 1.88,
	"K":  2.75,
	"Ca": 2.31,
	"Mn": 2.05,
	"Fe": 2.04,
	"Co": 2.00,
	"Ni": 1.63,
	"Cu": 1.40,
	"Zn": 1.39,
	"Se": 1.90,
	"Br": 1.85,
	"I":  1.98,
}

// VDWRadius returns the Van der Waals radius for an element symbol.
// Lookup is case-insensitive; unknown symbols get DefaultRadius.
func VDWRadius(symbol string) float32 {
	if r, ok := vdwRadii[symbol]; ok {
		return r
	}
	if r, ok := vdwRadii[normalize(symbol)]; ok {
		return r
	}
	return DefaultRadius
}

// normalize converts arbitrary-case symbols ("CL", "cl") to canonical form.
func normalize(symbol string) string {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return s
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}
