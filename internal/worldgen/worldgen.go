// Package worldgen synthesizes the raw input fields the erosion pipeline
// consumes: a layered-noise height field and an optional rock-hardness
// field. It only ever produces fields; the erosion engines own all
// mutation after that.
package worldgen

import (
	"math"

	"github.com/aquilax/go-perlin"

	"terraflow/pkg/terrain"
)

// NoiseConfig controls the layered perlin synthesis of the initial
// height field.
type NoiseConfig struct {
	Octaves     int
	Scale       float64 // grid cells per noise unit at the base octave
	Persistence float64 // amplitude falloff per octave
	Lacunarity  float64 // frequency growth per octave
}

// DefaultNoiseConfig returns the standard synthesis parameters.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Octaves:     5,
		Scale:       96,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

// HeightMap builds a w*h height field from layered perlin noise,
// normalized into [0, 1]. The same seed and config always produce the
// same field.
func HeightMap(w, h int, seed int64, cfg NoiseConfig) (*terrain.HeightField, error) {
	f, err := terrain.NewHeightField(w, h)
	if err != nil {
		return nil, err
	}
	if cfg.Octaves < 1 {
		cfg.Octaves = 1
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}

	gen := perlin.NewPerlin(2, 2, 3, seed)
	vals := f.Values()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			amplitude := 1.0
			frequency := 1.0 / cfg.Scale
			sum := 0.0
			for o := 0; o < cfg.Octaves; o++ {
				sum += gen.Noise2D(float64(x)*frequency, float64(y)*frequency) * amplitude
				amplitude *= cfg.Persistence
				frequency *= cfg.Lacunarity
			}
			// Raw octave sums may dip below zero; Normalize remaps the
			// whole field into [0, 1] before anything else reads it.
			vals[f.Index(x, y)] = sum
		}
	}
	f.Normalize()
	return f, nil
}

// Cone builds an analytic radially symmetric peak: height peak at the
// center falling linearly to zero at radius (a fraction of the smaller
// field dimension). Used by tests and demo scenes.
func Cone(w, h int, peak, radius float64) (*terrain.HeightField, error) {
	f, err := terrain.NewHeightField(w, h)
	if err != nil {
		return nil, err
	}
	if radius <= 0 {
		radius = 0.5
	}
	cx := float64(w-1) / 2
	cy := float64(h-1) / 2
	span := math.Min(float64(w), float64(h)) * radius
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			v := peak * (1 - d/span)
			if v < 0 {
				v = 0
			}
			f.Set(x, y, v)
		}
	}
	return f, nil
}

// Flat builds a constant field of the given elevation.
func Flat(w, h int, v float64) (*terrain.HeightField, error) {
	f, err := terrain.NewHeightField(w, h)
	if err != nil {
		return nil, err
	}
	f.Fill(v)
	return f, nil
}
