package worldgen

import (
	"math"
	"slices"
	"testing"
)

func TestHeightMapDeterministic(t *testing.T) {
	a, err := HeightMap(48, 32, 1234, DefaultNoiseConfig())
	if err != nil {
		t.Fatalf("HeightMap: %v", err)
	}
	b, err := HeightMap(48, 32, 1234, DefaultNoiseConfig())
	if err != nil {
		t.Fatalf("HeightMap: %v", err)
	}
	if !slices.Equal(a.Values(), b.Values()) {
		t.Fatal("same seed produced different height fields")
	}

	c, _ := HeightMap(48, 32, 4321, DefaultNoiseConfig())
	if slices.Equal(a.Values(), c.Values()) {
		t.Fatal("different seeds produced identical height fields")
	}
}

func TestHeightMapRange(t *testing.T) {
	f, err := HeightMap(64, 64, 7, DefaultNoiseConfig())
	if err != nil {
		t.Fatalf("HeightMap: %v", err)
	}
	lo, hi := f.MinMax()
	if lo < 0 || hi > 1 {
		t.Fatalf("height range [%v, %v] escapes [0, 1]", lo, hi)
	}
	if hi-lo < 0.5 {
		t.Fatalf("height range [%v, %v] suspiciously flat", lo, hi)
	}
}

func TestHeightMapRejectsBadDims(t *testing.T) {
	if _, err := HeightMap(0, 10, 1, DefaultNoiseConfig()); err == nil {
		t.Fatal("HeightMap accepted zero width")
	}
}

func TestHardnessMapStaysInConfiguredBand(t *testing.T) {
	cfg := DefaultHardnessConfig()
	f, err := HardnessMap(32, 32, 99, cfg)
	if err != nil {
		t.Fatalf("HardnessMap: %v", err)
	}
	for _, v := range f.Values() {
		if v < cfg.Min-1e-9 || v > cfg.Max+1e-9 {
			t.Fatalf("hardness %v escapes [%v, %v]", v, cfg.Min, cfg.Max)
		}
	}

	again, _ := HardnessMap(32, 32, 99, cfg)
	if !slices.Equal(f.Values(), again.Values()) {
		t.Fatal("same seed produced different hardness fields")
	}
}

func TestConeShape(t *testing.T) {
	f, err := Cone(65, 65, 1.0, 0.5)
	if err != nil {
		t.Fatalf("Cone: %v", err)
	}
	center := f.At(32, 32)
	if math.Abs(center-1.0) > 1e-9 {
		t.Fatalf("cone center = %v, want 1.0", center)
	}
	if f.At(0, 0) != 0 {
		t.Fatalf("cone corner = %v, want 0", f.At(0, 0))
	}
	// Monotone descent along the +x axis from the peak.
	prev := center
	for x := 33; x < 65; x++ {
		v := f.At(x, 32)
		if v > prev+1e-12 {
			t.Fatalf("cone rises at x=%d: %v > %v", x, v, prev)
		}
		prev = v
	}
}

func TestFlat(t *testing.T) {
	f, err := Flat(16, 16, 0.5)
	if err != nil {
		t.Fatalf("Flat: %v", err)
	}
	for _, v := range f.Values() {
		if v != 0.5 {
			t.Fatalf("flat cell = %v, want 0.5", v)
		}
	}
}
