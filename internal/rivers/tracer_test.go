package rivers

import (
	"reflect"
	"testing"

	"terraflow/internal/worldgen"
	"terraflow/pkg/terrain"
)

func coneField(t *testing.T) *terrain.HeightField {
	t.Helper()
	f, err := worldgen.Cone(129, 129, 1.0, 0.5)
	if err != nil {
		t.Fatalf("Cone: %v", err)
	}
	return f
}

func TestConePeakYieldsExactlyOneRiver(t *testing.T) {
	f := coneField(t)
	cfg := DefaultTracerConfig()
	cfg.SourceMinHeight = 0.3

	tracer := NewTracer(cfg)
	sources := tracer.FindSources(f)
	if len(sources) != 1 {
		t.Fatalf("found %d sources on a single cone, want 1", len(sources))
	}
	if sources[0].X != 64 || sources[0].Y != 64 {
		t.Fatalf("source at (%v, %v), want the peak (64, 64)", sources[0].X, sources[0].Y)
	}

	rivers := tracer.Trace(f)
	if len(rivers) != 1 {
		t.Fatalf("traced %d rivers, want 1", len(rivers))
	}
	r := rivers[0]
	if !r.HasMouth {
		t.Fatal("cone river should reach a mouth at the sink or the boundary")
	}
	last := r.Points[len(r.Points)-1]
	atBoundary := last.Pos.X <= 1 || last.Pos.Y <= 1 || last.Pos.X >= 127 || last.Pos.Y >= 127
	belowSink := f.Sample(last.Pos.X, last.Pos.Y) < cfg.SinkHeight
	if !atBoundary && !belowSink {
		t.Fatalf("river ended mid-slope at (%v, %v), height %v",
			last.Pos.X, last.Pos.Y, f.Sample(last.Pos.X, last.Pos.Y))
	}
}

func TestCloseSourcesOnlyHigherAccepted(t *testing.T) {
	f, _ := terrain.NewHeightField(64, 64)
	f.Fill(0.2)
	// Two spikes farther apart than the radius (both are local maxima)
	// but closer than twice the radius (the spacing rule excludes one).
	f.Set(20, 20, 0.9)
	f.Set(26, 20, 0.8)

	cfg := DefaultTracerConfig()
	cfg.SourceMinHeight = 0.5
	cfg.SourceRadius = 4

	sources := NewTracer(cfg).FindSources(f)
	if len(sources) != 1 {
		t.Fatalf("found %d sources, want 1", len(sources))
	}
	if sources[0].X != 20 || sources[0].Y != 20 {
		t.Fatalf("accepted source (%v, %v), want the higher spike (20, 20)", sources[0].X, sources[0].Y)
	}
}

func TestSpacedSourcesBothAccepted(t *testing.T) {
	f, _ := terrain.NewHeightField(64, 64)
	f.Fill(0.2)
	f.Set(15, 32, 0.9)
	f.Set(45, 32, 0.8)

	cfg := DefaultTracerConfig()
	cfg.SourceMinHeight = 0.5
	cfg.SourceRadius = 4

	sources := NewTracer(cfg).FindSources(f)
	if len(sources) != 2 {
		t.Fatalf("found %d sources, want 2", len(sources))
	}
}

func TestTraceDeterministic(t *testing.T) {
	f := coneField(t)
	cfg := DefaultTracerConfig()
	cfg.SourceMinHeight = 0.3

	a := NewTracer(cfg).Trace(f)
	b := NewTracer(cfg).Trace(f)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("repeated traces of the same field diverged")
	}
}

func TestShortPathIsDiscarded(t *testing.T) {
	// A spike sitting on an uphill ramp: the path leaves the spike,
	// immediately runs uphill and stops after a couple of points.
	f, _ := terrain.NewHeightField(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			f.Set(x, y, 0.3+0.4*float64(x)/63)
		}
	}
	f.Set(5, 32, 0.95)

	cfg := DefaultTracerConfig()
	cfg.SourceMinHeight = 0.9

	tracer := NewTracer(cfg)
	sources := tracer.FindSources(f)
	if len(sources) != 1 {
		t.Fatalf("found %d sources, want the spike only", len(sources))
	}
	if rivers := tracer.Trace(f); len(rivers) != 0 {
		t.Fatalf("too-short path was kept: %d rivers", len(rivers))
	}
}

func TestNoCandidatesMeansNoRivers(t *testing.T) {
	f, _ := terrain.NewHeightField(32, 32)
	f.Fill(0.2)

	rivers := NewTracer(DefaultTracerConfig()).Trace(f)
	if len(rivers) != 0 {
		t.Fatalf("flat low field produced %d rivers, want 0", len(rivers))
	}
}

func TestRiverProfileGrowsMonotonically(t *testing.T) {
	f := coneField(t)
	cfg := DefaultTracerConfig()
	cfg.SourceMinHeight = 0.3

	rivers := NewTracer(cfg).Trace(f)
	if len(rivers) == 0 {
		t.Fatal("no river traced")
	}
	pts := rivers[0].Points
	for i := 1; i < len(pts); i++ {
		if pts[i].Width < pts[i-1].Width {
			t.Fatalf("width shrank at point %d: %v -> %v", i, pts[i-1].Width, pts[i].Width)
		}
		if pts[i].FlowRate < pts[i-1].FlowRate {
			t.Fatalf("flow shrank at point %d: %v -> %v", i, pts[i-1].FlowRate, pts[i].FlowRate)
		}
		if pts[i].Elevation > pts[i-1].Elevation {
			t.Fatalf("river flowed uphill at point %d: %v -> %v", i, pts[i-1].Elevation, pts[i].Elevation)
		}
	}
}

func TestTracerCorrectsDegenerateConfig(t *testing.T) {
	cfg := DefaultTracerConfig()
	cfg.SourceRadius = 0
	cfg.StepSize = -1

	got := NewTracer(cfg).Config()
	if got.SourceRadius != 1 {
		t.Fatalf("SourceRadius = %d, want 1", got.SourceRadius)
	}
	if got.StepSize != 1 {
		t.Fatalf("StepSize = %v, want 1", got.StepSize)
	}
}
