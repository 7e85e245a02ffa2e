//go:build ebiten

package app

import (
	"image/color"
	"time"

	"terraflow/internal/core"
	"terraflow/internal/render"
	"terraflow/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// Game adapts a core process to the ebiten.Game interface.
type Game struct {
	proc    core.Process
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	palette []color.RGBA

	scale    int
	panel    int
	paused   bool
	stepOnce bool
	seed     int64
}

// New constructs a Game for the provided process.
func New(proc core.Process, scale int, seed int64, panelWidth int) *Game {
	size := proc.Size()
	g := &Game{
		proc:    proc,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(proc, scale),
		hud:     ui.NewHUD(proc, panelWidth),
		palette: grayPalette(),
		scale:   scale,
		panel:   panelWidth,
		seed:    seed,
	}
	if provider, ok := proc.(paletteProvider); ok {
		g.palette = provider.Palette()
	}
	return g
}

// Reset reinitializes the process state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.proc.Reset(seed)
	g.stepOnce = false
}

// Update handles per-frame logic and advances the generation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.stepOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.hud != nil {
		g.hud.Update()
	}

	if ((!g.paused) || g.stepOnce) && !g.proc.Done() {
		g.proc.Step()
		g.stepOnce = false
	}
	return nil
}

// Draw renders the current terrain state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.proc.Cells(), g.palette, g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	if g.hud != nil {
		size := g.proc.Size()
		g.hud.Draw(screen, size.W*g.scale, g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.proc.Size()
	w := size.W * g.scale
	if g.panel > 0 {
		w += g.panel
	}
	return w, size.H * g.scale
}

func grayPalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := range palette {
		v := uint8(i)
		palette[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return palette
}
