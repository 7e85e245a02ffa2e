package core

// FloatGrid stores a 2D grid of float64 scratch values in row-major
// order. The erosion passes use it to accumulate per-sweep deltas that
// are applied to the height field only after a full sweep completes.
type FloatGrid struct {
	W, H int
	data []float64
}

// NewFloatGrid allocates a grid with the given dimensions.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FloatGrid{W: w, H: h, data: make([]float64, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a valid cell.
func (g *FloatGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// Add accumulates a delta at (x, y); out-of-range writes are dropped.
func (g *FloatGrid) Add(x, y int, v float64) {
	if !g.InBounds(x, y) {
		return
	}
	g.data[y*g.W+x] += v
}

// Clear fills the grid with zeros.
func (g *FloatGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
