package erosion

import "math"

// BrushCell is one weighted offset of an erosion brush.
type BrushCell struct {
	DX, DY int
	Weight float64
}

// Brush is a precomputed disc of (offset, weight) pairs used to spread a
// single erosion event over neighboring cells. Weights fall off linearly
// from the center and sum to 1. A brush is built once per radius and
// shared by every droplet, so it must never be mutated after construction.
type Brush struct {
	radius int
	cells  []BrushCell
}

// NewBrush builds a disc brush with the given radius (minimum 1).
func NewBrush(radius int) *Brush {
	if radius < 1 {
		radius = 1
	}
	b := &Brush{radius: radius}
	sum := 0.0
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			w := 1 - math.Sqrt(float64(d2))/float64(radius)
			if w <= 0 {
				continue
			}
			b.cells = append(b.cells, BrushCell{DX: dx, DY: dy, Weight: w})
			sum += w
		}
	}
	for i := range b.cells {
		b.cells[i].Weight /= sum
	}
	return b
}

// Radius reports the brush radius.
func (b *Brush) Radius() int { return b.radius }

// Cells exposes the weighted offsets. Callers must treat the slice as
// read-only.
func (b *Brush) Cells() []BrushCell { return b.cells }
