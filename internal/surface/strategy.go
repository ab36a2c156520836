package surface

const (
	// MaxAtoms is the hard input cap. Larger inputs short-circuit the
	// pipeline and return an empty mesh.
	MaxAtoms = 50000

	// GPU strategy supported atom-count range. The upper bound keeps the
	// fragment shader loop and the two-channel ownership encoding honest.
	gpuMinAtoms = 16
	gpuMaxAtoms = 16384

	// Per-axis voxel budgets bounding field memory. Very large inputs get
	// a tighter budget.
	gridBudget      = 256
	gridBudgetLarge = 160
	largeAtomCount  = 20000
)

// Capabilities describes what the GPU strategy needs from a graphics
// context. It is produced once by an explicit probe and passed into the
// pipeline; there is no package-level capability state.
type Capabilities struct {
	FloatTextures  bool
	MaxTextureSize int
}

// UseGPU reports whether the GPU field strategy should be selected for the
// given atom count. Pure function of its inputs so the heuristic is
// testable in isolation.
func UseGPU(atomCount int, caps Capabilities) bool {
	if !caps.FloatTextures {
		return false
	}
	return atomCount >= gpuMinAtoms && atomCount <= gpuMaxAtoms
}

// AutoStep picks the sampling step for bounds b and atomCount atoms: finer
// for small or compact molecules, coarser as the count grows, then clamped
// so no grid axis exceeds the voxel budget.
func AutoStep(atomCount int, b Bounds) float32 {
	var step float32
	switch {
	case atomCount <= 128:
		step = 0.3
	case atomCount <= 1024:
		step = 0.45
	case atomCount <= 10000:
		step = 0.6
	default:
		step = 0.8
	}

	// Compact molecules can afford the finest sampling regardless of count.
	if b.MaxExtent() < 20 {
		step = 0.3
	}

	return ClampStep(step, atomCount, b)
}

// ClampStep raises step until the largest grid axis fits the voxel budget.
func ClampStep(step float32, atomCount int, b Bounds) float32 {
	budget := float32(gridBudget)
	if atomCount > largeAtomCount {
		budget = gridBudgetLarge
	}
	if floor := b.MaxExtent() / budget; step < floor {
		step = floor
	}
	return step
}
