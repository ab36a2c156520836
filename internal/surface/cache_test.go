package surface

import (
	"fmt"
	"testing"

	"github.com/chemviz/molsurf/pkg/math"
)

func TestCacheHitReturnsSameMesh(t *testing.T) {
	c := NewCache(4)
	mesh := &Mesh{Positions: []float32{1, 2, 3}}

	c.Put("a", mesh)
	if got := c.Get("a"); got != mesh {
		t.Errorf("Get returned %p, want the stored mesh %p", got, mesh)
	}
	if got := c.Get("missing"); got != nil {
		t.Errorf("Get on a miss returned %p, want nil", got)
	}
}

func TestCacheEvictsOldestFirst(t *testing.T) {
	c := NewCache(3)
	for i := 0; i < 5; i++ {
		c.Put(fmt.Sprintf("k%d", i), &Mesh{})
	}

	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if c.Get("k0") != nil || c.Get("k1") != nil {
		t.Error("oldest entries survived eviction")
	}
	for _, k := range []string{"k2", "k3", "k4"} {
		if c.Get(k) == nil {
			t.Errorf("entry %s evicted too early", k)
		}
	}
}

func TestCacheOverwriteKeepsOneEntry(t *testing.T) {
	c := NewCache(2)
	first := &Mesh{}
	second := &Mesh{Positions: []float32{1, 2, 3}}

	c.Put("a", first)
	c.Put("a", second)

	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	if c.Get("a") != second {
		t.Error("overwrite did not replace the mesh")
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := NewCache(0)
	for i := 0; i < DefaultCacheCapacity+5; i++ {
		c.Put(fmt.Sprintf("k%d", i), &Mesh{})
	}
	if c.Len() != DefaultCacheCapacity {
		t.Errorf("Len = %d, want %d", c.Len(), DefaultCacheCapacity)
	}
}

func TestCacheKeyDistinguishesRequests(t *testing.T) {
	positions := []math.Vec3{{X: 1.234, Y: 0, Z: 0}, {X: 4, Y: 5, Z: 6}}
	base := CacheKey(positions, Options{Type: TypeVDW}, 0.5)

	if got := CacheKey(positions, Options{Type: TypeVDW}, 0.5); got != base {
		t.Errorf("identical requests keyed differently: %q vs %q", got, base)
	}
	if got := CacheKey(positions, Options{Type: TypeSAS, ProbeRadius: 1.4}, 0.5); got == base {
		t.Error("surface type not reflected in key")
	}
	if got := CacheKey(positions, Options{Type: TypeVDW}, 0.4); got == base {
		t.Error("resolution not reflected in key")
	}
	moved := []math.Vec3{{X: 9.9, Y: 0, Z: 0}, positions[1]}
	if got := CacheKey(moved, Options{Type: TypeVDW}, 0.5); got == base {
		t.Error("first atom position not reflected in key")
	}
}
