package surface

import (
	"fmt"

	"github.com/chemviz/molsurf/pkg/math"
)

// DefaultCacheCapacity bounds the number of memoized meshes.
const DefaultCacheCapacity = 10

// Cache memoizes finished meshes by molecule fingerprint and request
// parameters. Eviction is insertion-ordered: once the capacity is exceeded
// the oldest inserted entry goes, regardless of access pattern.
type Cache struct {
	capacity int
	entries  map[string]*Mesh
	order    []string
}

// NewCache creates a cache holding at most capacity meshes. Non-positive
// capacities get DefaultCacheCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*Mesh),
	}
}

// Get returns the cached mesh for key, or nil on a miss.
func (c *Cache) Get(key string) *Mesh {
	return c.entries[key]
}

// Put inserts a mesh, evicting the oldest entry when over capacity.
func (c *Cache) Put(key string, mesh *Mesh) {
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = mesh

	for len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Len returns the number of cached meshes.
func (c *Cache) Len() int {
	return len(c.entries)
}

// CacheKey builds a stable fingerprint for an atom set and request
// parameters. The molecule part uses the atom count plus the first and last
// atom coordinates truncated to two decimals; combined with surface type,
// probe radius, and resolution it identifies a request without hashing
// every atom.
func CacheKey(positions []math.Vec3, opts Options, step float32) string {
	var first, last math.Vec3
	if len(positions) > 0 {
		first = positions[0]
		last = positions[len(positions)-1]
	}
	return fmt.Sprintf("%d:%.2f,%.2f,%.2f:%.2f,%.2f,%.2f:%s:%.2f:%.3f",
		len(positions),
		first.X, first.Y, first.Z,
		last.X, last.Y, last.Z,
		opts.Type, opts.probe(), step)
}
