package terrain

import (
	"math"
	"testing"
)

func TestNewHeightFieldRejectsBadDimensions(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 8},
		{"zero height", 8, 0},
		{"negative width", -1, 8},
		{"negative height", 8, -4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewHeightField(tc.w, tc.h); err == nil {
				t.Fatalf("NewHeightField(%d, %d) should fail", tc.w, tc.h)
			}
		})
	}

	f, err := NewHeightField(4, 3)
	if err != nil {
		t.Fatalf("NewHeightField(4, 3): %v", err)
	}
	if f.Width() != 4 || f.Height() != 3 {
		t.Fatalf("dimensions %dx%d, want 4x3", f.Width(), f.Height())
	}
}

func TestSampleBilinear(t *testing.T) {
	f, _ := NewHeightField(2, 2)
	f.Set(0, 0, 0)
	f.Set(1, 0, 1)
	f.Set(0, 1, 2)
	f.Set(1, 1, 3)

	cases := []struct {
		x, y float64
		want float64
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 2},
		{1, 1, 3},
		{0.5, 0, 0.5},
		{0, 0.5, 1},
		{0.5, 0.5, 1.5},
		// Queries outside the field clamp to the border.
		{-2, -2, 0},
		{5, 5, 3},
		{0.5, 9, 2.5},
	}
	for _, tc := range cases {
		got := f.Sample(tc.x, tc.y)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("Sample(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestGradientPointsUphill(t *testing.T) {
	f, _ := NewHeightField(8, 8)
	// Plane rising along +x: h = x * 0.25.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			f.Set(x, y, float64(x)*0.25)
		}
	}
	gx, gy := f.Gradient(3.4, 4.7)
	if math.Abs(gx-0.25) > 1e-12 {
		t.Fatalf("gx = %v, want 0.25", gx)
	}
	if math.Abs(gy) > 1e-12 {
		t.Fatalf("gy = %v, want 0", gy)
	}
}

func TestGradientFlatFieldIsZero(t *testing.T) {
	f, _ := NewHeightField(16, 16)
	f.Fill(0.5)
	gx, gy := f.Gradient(7.3, 8.9)
	if gx != 0 || gy != 0 {
		t.Fatalf("gradient on flat field = (%v, %v), want (0, 0)", gx, gy)
	}
}

func TestAddAtConservesMass(t *testing.T) {
	f, _ := NewHeightField(6, 6)
	f.Fill(1)
	before := total(f)

	f.AddAt(2.3, 3.8, 0.75)

	if diff := total(f) - before - 0.75; math.Abs(diff) > 1e-12 {
		t.Fatalf("deposited mass off by %v", diff)
	}

	// The deposit must land entirely in the 2x2 enclosing cells.
	touched := map[[2]int]bool{{2, 3}: true, {3, 3}: true, {2, 4}: true, {3, 4}: true}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			changed := math.Abs(f.At(x, y)-1) > 1e-12
			if changed && !touched[[2]int{x, y}] {
				t.Fatalf("cell (%d,%d) changed outside the bilinear footprint", x, y)
			}
		}
	}
}

func TestAddAtEdgeStillConservesMass(t *testing.T) {
	f, _ := NewHeightField(4, 4)
	f.Fill(0.5)
	before := total(f)
	f.AddAt(3, 3, 0.25)
	f.AddAt(0, 0, 0.25)
	f.AddAt(-4, 10, 0.25)
	if diff := total(f) - before - 0.75; math.Abs(diff) > 1e-12 {
		t.Fatalf("edge deposits lost mass: off by %v", diff)
	}
}

func TestMutationsNeverGoNegative(t *testing.T) {
	f, _ := NewHeightField(5, 5)
	f.Fill(0.1)

	f.AddAt(2.5, 2.5, -10)
	f.Set(1, 1, -3)
	f.Take(0, 0, 99)
	f.CarveTo(4, 4, -2)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if f.At(x, y) < 0 {
				t.Fatalf("cell (%d,%d) went negative: %v", x, y, f.At(x, y))
			}
		}
	}
}

func TestTakeReturnsActualRemoval(t *testing.T) {
	f, _ := NewHeightField(3, 3)
	f.Set(1, 1, 0.2)

	if got := f.Take(1, 1, 0.15); math.Abs(got-0.15) > 1e-12 {
		t.Fatalf("Take removed %v, want 0.15", got)
	}
	// Only 0.05 remains; the removal clamps there.
	if got := f.Take(1, 1, 0.5); math.Abs(got-0.05) > 1e-12 {
		t.Fatalf("clamped Take removed %v, want 0.05", got)
	}
	if got := f.Take(-1, 0, 0.5); got != 0 {
		t.Fatalf("out-of-bounds Take removed %v, want 0", got)
	}
}

func TestCarveToOnlyLowers(t *testing.T) {
	f, _ := NewHeightField(3, 3)
	f.Set(1, 1, 0.4)
	f.CarveTo(1, 1, 0.8)
	if f.At(1, 1) != 0.4 {
		t.Fatalf("CarveTo raised terrain to %v", f.At(1, 1))
	}
	f.CarveTo(1, 1, 0.25)
	if f.At(1, 1) != 0.25 {
		t.Fatalf("CarveTo = %v, want 0.25", f.At(1, 1))
	}
}

func TestSnapshotIsolation(t *testing.T) {
	f, _ := NewHeightField(4, 4)
	f.Fill(0.5)
	snap := f.Snapshot()

	f.Set(2, 2, 0.9)
	if snap.At(2, 2) != 0.5 {
		t.Fatal("snapshot observed a mutation of the live field")
	}
	if snap.Width() != 4 || snap.Height() != 4 {
		t.Fatalf("snapshot dimensions %dx%d", snap.Width(), snap.Height())
	}
}

func TestNormalize(t *testing.T) {
	f, _ := NewHeightField(2, 2)
	f.Set(0, 0, 2)
	f.Set(1, 0, 4)
	f.Set(0, 1, 6)
	f.Set(1, 1, 10)
	f.Normalize()
	lo, hi := f.MinMax()
	if lo != 0 || hi != 1 {
		t.Fatalf("normalized range [%v, %v], want [0, 1]", lo, hi)
	}
	if math.Abs(f.At(1, 0)-0.25) > 1e-12 {
		t.Fatalf("At(1,0) = %v, want 0.25", f.At(1, 0))
	}

	flat, _ := NewHeightField(2, 2)
	flat.Fill(3)
	flat.Normalize()
	if lo, hi := flat.MinMax(); lo != 0 || hi != 0 {
		t.Fatalf("constant field should normalize to zero, got [%v, %v]", lo, hi)
	}
}

func TestGeologyHardnessAt(t *testing.T) {
	g := GeologySettings{RockHardness: 1.7}.Clamped()
	if g.RockHardness != 1 {
		t.Fatalf("Clamped hardness = %v, want 1", g.RockHardness)
	}
	if got := g.HardnessAt(3, 3); got != 1 {
		t.Fatalf("scalar HardnessAt = %v, want 1", got)
	}

	hard, _ := NewHeightField(2, 2)
	hard.Set(0, 0, 0.3)
	hard.Set(1, 1, 5)
	g = GeologySettings{RockHardness: 0.5, Hardness: hard}
	if got := g.HardnessAt(0, 0); math.Abs(got-0.3) > 1e-12 {
		t.Fatalf("per-cell HardnessAt = %v, want 0.3", got)
	}
	if got := g.HardnessAt(1, 1); got != 1 {
		t.Fatalf("per-cell HardnessAt should clamp to 1, got %v", got)
	}
}

func total(f *HeightField) float64 {
	sum := 0.0
	for _, v := range f.Values() {
		sum += v
	}
	return sum
}
