//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"terraflow/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type stageProvider interface {
	Progress() float64
}

// HUD renders the parameter panel to the right of the terrain view.
type HUD struct {
	proc       core.Process
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	progress   float64
	title      string
}

// NewHUD constructs a HUD for the provided process and panel width.
func NewHUD(proc core.Process, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{proc: proc, width: width}
	h.title = buildTitle(proc)
	return h
}

// Update refreshes the cached parameter snapshot from the process.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	if provider, ok := h.proc.(parameterProvider); ok {
		h.snapshot = provider.Parameters()
	} else {
		h.snapshot = core.ParameterSnapshot{}
	}
	if provider, ok := h.proc.(stageProvider); ok {
		h.progress = provider.Progress()
	}
}

// Draw paints the HUD panel anchored to the right edge of the terrain view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	size := h.proc.Size()
	height := size.H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := 18
	text.Draw(h.panel, h.title, face, 10, y, color.White)
	y += 16
	text.Draw(h.panel, fmt.Sprintf("progress %3.0f%%", h.progress*100), face, 10, y, color.RGBA{R: 150, G: 200, B: 150, A: 255})
	y += 20

	for _, group := range h.snapshot.Groups {
		if y >= height-6 {
			break
		}
		text.Draw(h.panel, group.Name, face, 10, y, color.RGBA{R: 200, G: 180, B: 120, A: 255})
		y += 15
		for _, param := range group.Params {
			if y >= height-6 {
				break
			}
			line := fmt.Sprintf("%-18s %s", param.Label, param.Value)
			text.Draw(h.panel, line, face, 14, y, color.RGBA{R: 190, G: 190, B: 196, A: 255})
			y += 14
		}
		y += 8
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(proc core.Process) string {
	if proc == nil {
		return "Parameters"
	}
	name := proc.Name()
	if name == "" {
		return "Parameters"
	}
	return strings.Title(name) + " Parameters"
}
