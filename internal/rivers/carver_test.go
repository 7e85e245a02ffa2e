package rivers

import (
	"slices"
	"testing"

	"terraflow/pkg/terrain"
)

func tracedCone(t *testing.T) (*terrain.HeightField, []terrain.River) {
	t.Helper()
	f := coneField(t)
	cfg := DefaultTracerConfig()
	cfg.SourceMinHeight = 0.3
	rivers := NewTracer(cfg).Trace(f)
	if len(rivers) == 0 {
		t.Fatal("no river to carve")
	}
	return f, rivers
}

func TestCarveNeverRaisesTerrain(t *testing.T) {
	f, rivers := tracedCone(t)
	before := append([]float64(nil), f.Values()...)

	NewCarver().CarveAll(f, rivers)

	lowered := false
	for i, v := range f.Values() {
		if v > before[i]+1e-12 {
			t.Fatalf("cell %d was raised from %v to %v", i, before[i], v)
		}
		if v < before[i] {
			lowered = true
		}
		if v < 0 {
			t.Fatalf("cell %d went negative: %v", i, v)
		}
	}
	if !lowered {
		t.Fatal("carving changed nothing")
	}
}

func TestCarveIsIdempotent(t *testing.T) {
	f, rivers := tracedCone(t)
	carver := NewCarver()

	carver.CarveAll(f, rivers)
	once := append([]float64(nil), f.Values()...)

	carver.CarveAll(f, rivers)
	if !slices.Equal(once, f.Values()) {
		t.Fatal("carving the same rivers twice differed from carving once")
	}
}

func TestCarveDegeneratePointIsNoOp(t *testing.T) {
	f, _ := terrain.NewHeightField(16, 16)
	f.Fill(0.5)
	before := append([]float64(nil), f.Values()...)

	r := terrain.River{Points: []terrain.RiverPoint{
		{Pos: terrain.Vec2{X: 8, Y: 8}, Elevation: 0.5, Width: 0, Depth: 0.1},
		{Pos: terrain.Vec2{X: 8, Y: 8}, Elevation: 0.5, Width: 2, Depth: 0},
	}}
	NewCarver().Carve(f, &r)

	if !slices.Equal(before, f.Values()) {
		t.Fatal("degenerate river points mutated the field")
	}
}
