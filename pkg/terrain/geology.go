package terrain

// GeologySettings describes the rock properties both erosion engines read.
// It is a read-only input; the engines never mutate it.
type GeologySettings struct {
	// RockHardness scales how strongly material resists erosion, in [0, 1].
	// 0 is loose sediment, 1 is bedrock that never erodes.
	RockHardness float64

	// Hardness optionally overrides RockHardness per cell. When set it
	// must have the same dimensions as the field being eroded.
	Hardness *HeightField
}

// DefaultGeology returns settings for moderately soft terrain.
func DefaultGeology() GeologySettings {
	return GeologySettings{RockHardness: 0.2}
}

// Clamped returns a copy with RockHardness forced into [0, 1].
func (g GeologySettings) Clamped() GeologySettings {
	if g.RockHardness < 0 {
		g.RockHardness = 0
	}
	if g.RockHardness > 1 {
		g.RockHardness = 1
	}
	return g
}

// HardnessAt returns the hardness for a lattice cell, falling back to the
// scalar RockHardness when no per-cell field is configured.
func (g GeologySettings) HardnessAt(x, y int) float64 {
	if g.Hardness == nil {
		return clamp01(g.RockHardness)
	}
	return clamp01(g.Hardness.At(x, y))
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
