package erosion

import (
	"math"

	intcore "terraflow/internal/core"
	"terraflow/pkg/terrain"
)

// ThermalConfig holds parameters for the slope-collapse pass.
type ThermalConfig struct {
	// TalusThreshold is the stable height difference per unit of
	// horizontal distance. Slopes steeper than this shed material.
	TalusThreshold float64
	// TransferRate is the fraction of the unstable excess moved per pass.
	TransferRate float64
	// Iterations is the number of full relaxation sweeps.
	Iterations int
}

// DefaultThermalConfig returns a balanced slope-collapse configuration.
func DefaultThermalConfig() ThermalConfig {
	return ThermalConfig{
		TalusThreshold: 0.01,
		TransferRate:   0.25,
		Iterations:     3,
	}
}

// ThermalEngine relaxes slopes steeper than the stability threshold by
// moving material to the steepest lower neighbor. Each sweep reads only
// the pre-pass field and accumulates changes in a scratch grid that is
// applied after the sweep finishes; applying in place mid-sweep would
// make the result depend on scan order.
type ThermalEngine struct {
	cfg    ThermalConfig
	geo    terrain.GeologySettings
	deltas *intcore.FloatGrid
}

// NewThermalEngine constructs a thermal engine for fields of the given size.
func NewThermalEngine(cfg ThermalConfig, geo terrain.GeologySettings, w, h int) *ThermalEngine {
	if cfg.TransferRate < 0 {
		cfg.TransferRate = 0
	}
	if cfg.TransferRate > 1 {
		cfg.TransferRate = 1
	}
	if cfg.Iterations < 0 {
		cfg.Iterations = 0
	}
	return &ThermalEngine{
		cfg:    cfg,
		geo:    geo.Clamped(),
		deltas: intcore.NewFloatGrid(w, h),
	}
}

// Config returns the engine's effective configuration.
func (t *ThermalEngine) Config() ThermalConfig { return t.cfg }

// Relax runs the configured number of full sweeps.
func (t *ThermalEngine) Relax(f *terrain.HeightField) {
	for i := 0; i < t.cfg.Iterations; i++ {
		t.SweepRows(f, 0, f.Height())
		t.Apply(f)
	}
}

// SweepRows accumulates transfer deltas for rows [y0, y1) without
// touching the field. The progressive pipeline sweeps row batches across
// several calls and applies the buffer once the sweep covers every row.
func (t *ThermalEngine) SweepRows(f *terrain.HeightField, y0, y1 int) {
	w := f.Width()
	h := f.Height()
	if y0 < 0 {
		y0 = 0
	}
	if y1 > h {
		y1 = h
	}
	const diag = math.Sqrt2

	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			hc := f.At(x, y)
			if hc <= 0 {
				continue
			}

			// Steepest descent among the 8 neighbors.
			bestSlope := 0.0
			bestDX, bestDY := 0, 0
			bestDist := 1.0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := x + dx
					ny := y + dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					dist := 1.0
					if dx != 0 && dy != 0 {
						dist = diag
					}
					slope := (hc - f.At(nx, ny)) / dist
					if slope > bestSlope {
						bestSlope = slope
						bestDX = dx
						bestDY = dy
						bestDist = dist
					}
				}
			}
			if bestSlope <= t.cfg.TalusThreshold {
				continue
			}

			diff := hc - f.At(x+bestDX, y+bestDY)
			excess := diff - t.cfg.TalusThreshold*bestDist
			transfer := excess * t.cfg.TransferRate * (1 - t.geo.HardnessAt(x, y))
			// Moving more than half the difference would invert the
			// slope; moving more than the cell holds would go negative.
			transfer = math.Min(transfer, diff/2)
			transfer = math.Min(transfer, hc)
			if transfer <= 0 {
				continue
			}

			t.deltas.Add(x, y, -transfer)
			t.deltas.Add(x+bestDX, y+bestDY, transfer)
		}
	}
}

// Apply folds the accumulated deltas into the field and clears the
// scratch buffer. Cells clamp at zero.
func (t *ThermalEngine) Apply(f *terrain.HeightField) {
	vals := f.Values()
	deltas := t.deltas.Cells()
	for i := range vals {
		vals[i] += deltas[i]
		if vals[i] < 0 {
			vals[i] = 0
		}
	}
	t.deltas.Clear()
}
