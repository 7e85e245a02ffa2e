//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"terraflow/internal/core"
	"terraflow/pkg/terrain"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type terrainProvider interface {
	Snapshot() *terrain.Snapshot
}

type geologyProvider interface {
	Geology() terrain.GeologySettings
}

type riversProvider interface {
	Rivers() []terrain.River
}

// Overlay draws optional debugging visuals on top of the base terrain view.
type Overlay struct {
	proc  core.Process
	scale int

	showElev     bool
	showHardness bool
	showRivers   bool

	elevationImg *ebiten.Image
	elevationBuf []byte

	maskImg *ebiten.Image
	maskBuf []byte

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(proc core.Process, scale int) *Overlay {
	o := &Overlay{proc: proc, scale: scale, showRivers: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showElev = !o.showElev
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHardness = !o.showHardness
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showRivers = !o.showRivers
	}
}

// Draw renders the enabled overlay layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.proc.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showElev {
		if provider, ok := o.proc.(terrainProvider); ok {
			o.drawElevation(screen, provider.Snapshot(), size, scale)
		}
	}
	if o.showHardness {
		if provider, ok := o.proc.(geologyProvider); ok {
			o.drawHardness(screen, provider.Geology(), size, scale)
		}
	}
	if o.showRivers {
		if provider, ok := o.proc.(riversProvider); ok {
			o.drawRivers(screen, provider.Rivers(), scale)
		}
	}
}

func (o *Overlay) drawElevation(screen *ebiten.Image, snap *terrain.Snapshot, size core.Size, scale int) {
	if snap == nil {
		return
	}
	total := size.W * size.H
	values := snap.Values()
	if len(values) != total || total == 0 {
		return
	}
	if o.elevationImg == nil || o.elevationImg.Bounds().Dx() != size.W || o.elevationImg.Bounds().Dy() != size.H {
		o.elevationImg = ebiten.NewImage(size.W, size.H)
		o.elevationBuf = make([]byte, 4*total)
	}

	minVal := values[0]
	maxVal := values[0]
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rangeVal := maxVal - minVal
	if rangeVal == 0 {
		rangeVal = 1
	}

	for i, v := range values {
		base := i * 4
		col := elevationTint(clamp01((v - minVal) / rangeVal))
		o.elevationBuf[base+0] = col.R
		o.elevationBuf[base+1] = col.G
		o.elevationBuf[base+2] = col.B
		o.elevationBuf[base+3] = col.A
	}

	o.elevationImg.WritePixels(o.elevationBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.elevationImg, op)
}

func (o *Overlay) drawHardness(screen *ebiten.Image, geo terrain.GeologySettings, size core.Size, scale int) {
	total := size.W * size.H
	if total == 0 {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}

	const maxAlpha = 150.0
	tint := color.RGBA{R: 200, G: 70, B: 70}
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			base := (y*size.W + x) * 4
			hard := geo.HardnessAt(x, y)
			if hard <= 0 {
				o.maskBuf[base+0] = 0
				o.maskBuf[base+1] = 0
				o.maskBuf[base+2] = 0
				o.maskBuf[base+3] = 0
				continue
			}
			glow := 0.35 + 0.65*math.Sqrt(hard)
			o.maskBuf[base+0] = scaleColorComponent(tint.R, glow)
			o.maskBuf[base+1] = scaleColorComponent(tint.G, glow)
			o.maskBuf[base+2] = scaleColorComponent(tint.B, glow)
			o.maskBuf[base+3] = uint8(math.Round(maxAlpha * hard))
		}
	}

	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}

func (o *Overlay) drawRivers(screen *ebiten.Image, rivers []terrain.River, scale int) {
	col := color.RGBA{R: 90, G: 170, B: 240, A: 220}
	for ri := range rivers {
		points := rivers[ri].Points
		for i := 1; i < len(points); i++ {
			a := points[i-1]
			b := points[i]
			thickness := float64(scale) * 0.5 * (a.Width + b.Width) * 0.5
			if thickness < 1 {
				thickness = 1
			}
			o.drawLine(screen,
				a.Pos.X*float64(scale), a.Pos.Y*float64(scale),
				b.Pos.X*float64(scale), b.Pos.Y*float64(scale),
				thickness, col)
		}
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func elevationTint(t float64) color.RGBA {
	t = clamp01(t)
	stops := []struct {
		t   float64
		col color.RGBA
	}{
		{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 150}},
		{0.25, color.RGBA{R: 70, G: 105, B: 160, A: 165}},
		{0.5, color.RGBA{R: 90, G: 150, B: 100, A: 185}},
		{0.75, color.RGBA{R: 190, G: 160, B: 80, A: 205}},
		{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 215}},
	}
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, clamp01(local))
		}
	}
	return stops[len(stops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
