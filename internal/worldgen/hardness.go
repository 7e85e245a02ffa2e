package worldgen

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"terraflow/pkg/terrain"
)

// HardnessConfig controls the rock-hardness field synthesis.
type HardnessConfig struct {
	Octaves     int
	Frequency   float64
	Persistence float64
	// Min and Max bound the resulting hardness values in [0, 1].
	Min float64
	Max float64
}

// DefaultHardnessConfig returns mostly-soft rock with harder veins.
func DefaultHardnessConfig() HardnessConfig {
	return HardnessConfig{
		Octaves:     3,
		Frequency:   0.02,
		Persistence: 0.5,
		Min:         0.05,
		Max:         0.65,
	}
}

// HardnessMap builds a per-cell rock hardness field from layered simplex
// noise, remapped into [cfg.Min, cfg.Max]. Deterministic per seed.
func HardnessMap(w, h int, seed int64, cfg HardnessConfig) (*terrain.HeightField, error) {
	f, err := terrain.NewHeightField(w, h)
	if err != nil {
		return nil, err
	}
	if cfg.Octaves < 1 {
		cfg.Octaves = 1
	}
	if cfg.Max < cfg.Min {
		cfg.Max = cfg.Min
	}
	lo := clamp01(cfg.Min)
	hi := clamp01(cfg.Max)

	noise := opensimplex.NewNormalized(seed)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := octaveNoise(noise, float64(x), float64(y), cfg.Octaves, cfg.Frequency, cfg.Persistence)
			f.Set(x, y, lo+(hi-lo)*v)
		}
	}
	return f, nil
}

// octaveNoise layers normalized simplex noise, keeping the result in [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	if maxValue <= 0 {
		return 0
	}
	return total / maxValue
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
