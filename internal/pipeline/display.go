package pipeline

import (
	"image/color"
	"math"
)

const (
	// displayLevels is how many elevation bands the display encodes.
	displayLevels = 255
	// displayRiverValue marks cells covered by a traced river.
	displayRiverValue = 255
)

var terrainPalette = buildTerrainPalette()

// Palette exposes the color palette used for rendering the height field.
func (p *Pipeline) Palette() []color.RGBA {
	return terrainPalette
}

type paletteStop struct {
	at float64
	c  color.RGBA
}

// Hypsometric tint ramp: water-blue lowlands through greens and browns
// up to snow-capped peaks.
var elevationStops = []paletteStop{
	{0.00, color.RGBA{R: 38, G: 72, B: 120, A: 255}},
	{0.15, color.RGBA{R: 60, G: 108, B: 86, A: 255}},
	{0.35, color.RGBA{R: 88, G: 140, B: 72, A: 255}},
	{0.55, color.RGBA{R: 150, G: 132, B: 80, A: 255}},
	{0.75, color.RGBA{R: 130, G: 110, B: 100, A: 255}},
	{0.90, color.RGBA{R: 170, G: 170, B: 178, A: 255}},
	{1.00, color.RGBA{R: 245, G: 245, B: 250, A: 255}},
}

func buildTerrainPalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := 0; i < displayLevels; i++ {
		t := float64(i) / float64(displayLevels-1)
		palette[i] = elevationColor(t)
	}
	palette[displayRiverValue] = color.RGBA{R: 52, G: 120, B: 190, A: 255}
	return palette
}

func elevationColor(t float64) color.RGBA {
	if t <= elevationStops[0].at {
		return elevationStops[0].c
	}
	for i := 1; i < len(elevationStops); i++ {
		hi := elevationStops[i]
		if t > hi.at {
			continue
		}
		lo := elevationStops[i-1]
		span := hi.at - lo.at
		f := 0.0
		if span > 0 {
			f = (t - lo.at) / span
		}
		return lerpRGBA(lo.c, hi.c, f)
	}
	return elevationStops[len(elevationStops)-1].c
}

func lerpRGBA(a, b color.RGBA, f float64) color.RGBA {
	inv := 1 - f
	return color.RGBA{
		R: uint8(float64(a.R)*inv + float64(b.R)*f + 0.5),
		G: uint8(float64(a.G)*inv + float64(b.G)*f + 0.5),
		B: uint8(float64(a.B)*inv + float64(b.B)*f + 0.5),
		A: 255,
	}
}

func (p *Pipeline) rebuildDisplay() {
	if p.field == nil {
		return
	}
	values := p.field.Values()
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		p.display[i] = uint8(v * float64(displayLevels-1))
	}
	for ri := range p.rivers {
		r := &p.rivers[ri]
		for pi := range r.Points {
			pt := &r.Points[pi]
			x := int(math.Round(pt.Pos.X))
			y := int(math.Round(pt.Pos.Y))
			if !p.field.InBounds(x, y) {
				continue
			}
			p.display[p.field.Index(x, y)] = displayRiverValue
		}
	}
}
