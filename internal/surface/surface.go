package surface

import (
	"go.uber.org/zap"

	"github.com/chemviz/molsurf/internal/element"
	"github.com/chemviz/molsurf/internal/logger"
	"github.com/chemviz/molsurf/pkg/math"
)

// RadiusFunc resolves an element symbol to its Van der Waals radius.
type RadiusFunc func(symbol string) float32

// Generator runs the surface reconstruction pipeline and memoizes results.
// Construct it once with New and reuse it across requests; each Generate
// call is a single blocking computation with no shared mutable state beyond
// the cache.
type Generator struct {
	radius RadiusFunc
	cache  *Cache

	gpu    FieldComputer
	caps   Capabilities
	cpu    CPUFieldComputer
	smooth SmoothOptions
}

// SmoothOptions configures the post-extraction Laplacian pass.
type SmoothOptions struct {
	Iterations int
	Lambda     float32
}

// Option customizes a Generator.
type Option func(*Generator)

// WithGPU attaches a GPU field computer and the capabilities its probe
// reported. Without it the generator always computes fields on the CPU.
func WithGPU(fc FieldComputer, caps Capabilities) Option {
	return func(g *Generator) {
		g.gpu = fc
		g.caps = caps
	}
}

// WithRadiusFunc overrides the element radius lookup.
func WithRadiusFunc(fn RadiusFunc) Option {
	return func(g *Generator) {
		g.radius = fn
	}
}

// WithCacheCapacity overrides the mesh cache capacity.
func WithCacheCapacity(capacity int) Option {
	return func(g *Generator) {
		g.cache = NewCache(capacity)
	}
}

// WithSmoothing overrides the Laplacian smoothing parameters.
func WithSmoothing(iterations int, lambda float32) Option {
	return func(g *Generator) {
		g.smooth = SmoothOptions{Iterations: iterations, Lambda: lambda}
	}
}

// New creates a Generator with defaults: element table radii, CPU-only
// field computation, default cache size and smoothing.
func New(opts ...Option) *Generator {
	g := &Generator{
		radius: element.VDWRadius,
		cache:  NewCache(DefaultCacheCapacity),
		smooth: SmoothOptions{Iterations: smoothIterations, Lambda: smoothLambda},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate reconstructs the requested molecular surface. It never fails for
// valid input: oversized atom sets and empty input return an empty mesh,
// GPU trouble falls back to the CPU strategy, and numerical edge cases
// resolve to fixed defaults.
func (g *Generator) Generate(atoms []Atom, opts Options) *Mesh {
	opts = opts.applyDefaults()

	if len(atoms) == 0 {
		return &Mesh{}
	}
	if len(atoms) > MaxAtoms {
		logger.Warn("atom count exceeds cap, returning empty mesh",
			zap.Int("atoms", len(atoms)), zap.Int("cap", MaxAtoms))
		return &Mesh{}
	}

	positions, radii := g.resolve(atoms, opts)
	bounds := CalcBounds(positions, radii, opts.probe())

	step := opts.Resolution
	if step <= 0 {
		step = AutoStep(len(atoms), bounds)
	} else {
		step = ClampStep(step, len(atoms), bounds)
	}

	key := CacheKey(positions, opts, step)
	if cached := g.cache.Get(key); cached != nil {
		logger.Debug("surface cache hit", zap.String("key", key))
		return cached
	}

	field := g.computeField(positions, radii, bounds, step)
	mesh := ExtractSurface(field)
	SmoothMesh(mesh, g.smooth.Iterations, g.smooth.Lambda)

	logger.Debug("surface generated",
		zap.Int("atoms", len(atoms)),
		zap.String("type", string(opts.Type)),
		zap.Float32("step", step),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()))

	g.cache.Put(key, mesh)
	return mesh
}

// resolve maps atoms to positions and effective radii, expanding by the
// probe radius for SAS surfaces.
func (g *Generator) resolve(atoms []Atom, opts Options) ([]math.Vec3, []float32) {
	positions := make([]math.Vec3, len(atoms))
	radii := make([]float32, len(atoms))
	probe := opts.probe()
	for i, a := range atoms {
		positions[i] = a.Position
		radii[i] = g.radius(a.Element) + probe
	}
	return positions, radii
}

// computeField picks the field strategy and falls back to the CPU on any
// GPU failure. The fallback is transparent: callers never see GPU errors.
func (g *Generator) computeField(positions []math.Vec3, radii []float32, b Bounds, step float32) *ScalarField {
	if g.gpu != nil && UseGPU(len(positions), g.caps) {
		field, err := g.gpu.ComputeField(positions, radii, b, step)
		if err == nil {
			return field
		}
		logger.Warn("GPU field computation failed, falling back to CPU",
			zap.String("strategy", g.gpu.Name()), zap.Error(err))
	}

	field, _ := g.cpu.ComputeField(positions, radii, b, step)
	return field
}
