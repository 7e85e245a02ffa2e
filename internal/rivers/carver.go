package rivers

import (
	"math"

	"terraflow/pkg/terrain"
)

// Carver rasterizes traced rivers back into the height field. Each river
// point carves a circular cross-section whose depth falls off
// quadratically with radial distance from the centerline. Targets are
// derived from the elevation recorded at trace time and written with a
// min-clamp, so carving never raises terrain and carving the same river
// twice equals carving it once.
type Carver struct{}

// NewCarver constructs a carver.
func NewCarver() *Carver { return &Carver{} }

// CarveAll carves every river in order.
func (c *Carver) CarveAll(f *terrain.HeightField, rivers []terrain.River) {
	for i := range rivers {
		c.Carve(f, &rivers[i])
	}
}

// Carve applies one river's full profile to the field. The operation is
// atomic with respect to the progressive pipeline: a carve is never
// suspended partway through a river.
func (c *Carver) Carve(f *terrain.HeightField, r *terrain.River) {
	for i := range r.Points {
		carvePoint(f, &r.Points[i])
	}
}

func carvePoint(f *terrain.HeightField, p *terrain.RiverPoint) {
	if p.Width <= 0 || p.Depth <= 0 {
		return
	}
	r := int(math.Ceil(p.Width))
	cx := int(math.Round(p.Pos.X))
	cy := int(math.Round(p.Pos.Y))

	for dy := -r; dy <= r; dy++ {
		y := cy + dy
		for dx := -r; dx <= r; dx++ {
			x := cx + dx
			if !f.InBounds(x, y) {
				continue
			}
			d := math.Hypot(float64(x)-p.Pos.X, float64(y)-p.Pos.Y)
			if d >= p.Width {
				continue
			}
			falloff := 1 - d/p.Width
			target := p.Elevation - p.Depth*falloff*falloff
			f.CarveTo(x, y, target)
		}
	}
}
