package rivers

import (
	"log"
	"math"
	"sort"

	"terraflow/pkg/terrain"
)

// TracerConfig holds the source-finding and path-tracing tunables.
type TracerConfig struct {
	// SourceMinHeight is the lowest elevation a source candidate may have.
	SourceMinHeight float64
	// SourceRadius is the neighborhood (in cells) a candidate must
	// dominate; accepted sources are spaced at least twice this apart.
	SourceRadius int
	// MaxRivers caps how many sources are accepted.
	MaxRivers int
	// MinPoints discards traced paths shorter than this many points.
	MinPoints int
	// MaxPathSteps caps a single trace.
	MaxPathSteps int

	StepSize float64
	// Momentum is the weight of the previous flow direction when
	// blending with the local descent direction.
	Momentum float64
	// MeanderStrength scales the sinusoidal lateral offset; the
	// frequency is in radians per step.
	MeanderStrength  float64
	MeanderFrequency float64
	// SinkHeight terminates a path once it drops below this elevation.
	// Kept configurable so differently scaled fields can set their own
	// sea level.
	SinkHeight float64

	WidthBase float64
	WidthMax  float64
	DepthBase float64
	DepthMax  float64
	FlowBase  float64
	FlowMax   float64
	// GrowthDistance is the path length over which width, depth and flow
	// grow from their base values to their maxima.
	GrowthDistance float64
}

// DefaultTracerConfig returns the standard river tracing parameters for
// fields normalized to [0, 1].
func DefaultTracerConfig() TracerConfig {
	return TracerConfig{
		SourceMinHeight:  0.6,
		SourceRadius:     6,
		MaxRivers:        12,
		MinPoints:        10,
		MaxPathSteps:     4096,
		StepSize:         1.0,
		Momentum:         0.8,
		MeanderStrength:  0.25,
		MeanderFrequency: 0.35,
		SinkHeight:       0.15,
		WidthBase:        1.0,
		WidthMax:         4.0,
		DepthBase:        0.01,
		DepthMax:         0.05,
		FlowBase:         0.2,
		FlowMax:          1.0,
		GrowthDistance:   120,
	}
}

// Tracer locates river sources on a height field and traces each into a
// downhill path. Tracing reads the field and never mutates it; given the
// same field and configuration the output is fully deterministic.
type Tracer struct {
	cfg TracerConfig
}

// NewTracer constructs a tracer, correcting degenerate configuration
// values with a logged warning.
func NewTracer(cfg TracerConfig) *Tracer {
	if cfg.SourceRadius < 1 {
		log.Printf("rivers: source radius %d corrected to 1", cfg.SourceRadius)
		cfg.SourceRadius = 1
	}
	if cfg.StepSize <= 0 {
		log.Printf("rivers: step size %v corrected to 1", cfg.StepSize)
		cfg.StepSize = 1
	}
	if cfg.Momentum < 0 {
		cfg.Momentum = 0
	}
	if cfg.Momentum > 1 {
		cfg.Momentum = 1
	}
	if cfg.MaxPathSteps < 1 {
		cfg.MaxPathSteps = 1
	}
	if cfg.GrowthDistance <= 0 {
		cfg.GrowthDistance = 1
	}
	return &Tracer{cfg: cfg}
}

// Config returns the tracer's effective configuration.
func (t *Tracer) Config() TracerConfig { return t.cfg }

type sourceCell struct {
	x, y   int
	height float64
}

// FindSources scans interior cells for spaced local maxima above the
// minimum source height. Candidates are ranked by descending height and
// accepted greedily, skipping any candidate within twice the source
// radius of an already accepted source. An empty result is a valid
// outcome, not an error.
func (t *Tracer) FindSources(f *terrain.HeightField) []terrain.Vec2 {
	w := f.Width()
	h := f.Height()
	radius := t.cfg.SourceRadius
	r2 := radius * radius

	var candidates []sourceCell
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			hc := f.At(x, y)
			if hc < t.cfg.SourceMinHeight {
				continue
			}
			if !t.isLocalMax(f, x, y, hc, r2) {
				continue
			}
			candidates = append(candidates, sourceCell{x: x, y: y, height: hc})
		}
	}

	// Height-first greedy selection. The stable sort preserves scan
	// order among equal heights, which is the documented tie-break.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].height > candidates[j].height
	})

	minDist2 := float64(4 * r2)
	var accepted []terrain.Vec2
	for _, c := range candidates {
		if t.cfg.MaxRivers > 0 && len(accepted) >= t.cfg.MaxRivers {
			break
		}
		pos := terrain.Vec2{X: float64(c.x), Y: float64(c.y)}
		tooClose := false
		for _, a := range accepted {
			d := pos.Sub(a)
			if d.X*d.X+d.Y*d.Y < minDist2 {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		accepted = append(accepted, pos)
	}
	return accepted
}

func (t *Tracer) isLocalMax(f *terrain.HeightField, x, y int, hc float64, r2 int) bool {
	radius := t.cfg.SourceRadius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if dx*dx+dy*dy > r2 {
				continue
			}
			nx := x + dx
			ny := y + dy
			if !f.InBounds(nx, ny) {
				continue
			}
			// Strictly higher disqualifies; equals tie-break first-found.
			if f.At(nx, ny) > hc {
				return false
			}
		}
	}
	return true
}

// Trace finds sources and traces every accepted one, returning the
// rivers that reached the minimum point count.
func (t *Tracer) Trace(f *terrain.HeightField) []terrain.River {
	sources := t.FindSources(f)
	rivers := make([]terrain.River, 0, len(sources))
	for _, src := range sources {
		if r, ok := t.TracePath(f, src); ok {
			rivers = append(rivers, r)
		}
	}
	return rivers
}

// TracePath follows the descent from a single source. It reports false
// when the resulting path is shorter than the configured minimum; a
// too-short river is discarded, not an error.
func (t *Tracer) TracePath(f *terrain.HeightField, source terrain.Vec2) (terrain.River, bool) {
	cfg := t.cfg
	maxX := float64(f.Width() - 1)
	maxY := float64(f.Height() - 1)

	river := terrain.River{Source: source}
	pos := source
	hCur := f.Sample(pos.X, pos.Y)
	dir := terrain.Vec2{}
	dist := 0.0

	river.Points = append(river.Points, t.pointAt(pos, dir, hCur, dist))

	for step := 0; step < cfg.MaxPathSteps; step++ {
		gx, gy := f.Gradient(pos.X, pos.Y)
		descent := terrain.Vec2{X: -gx, Y: -gy}.Normalized()

		blended := dir.Scale(cfg.Momentum).Add(descent.Scale(1 - cfg.Momentum))
		heading := blended.Normalized()
		if heading.Len() == 0 {
			// Flat ground with no momentum: the path just stops here.
			break
		}

		// Lateral meander so paths do not run ruler-straight downhill.
		wobble := math.Sin(float64(step)*cfg.MeanderFrequency) * cfg.MeanderStrength
		heading = heading.Add(heading.Perp().Scale(wobble)).Normalized()

		next := pos.Add(heading.Scale(cfg.StepSize))
		if next.X < 0 || next.Y < 0 || next.X > maxX || next.Y > maxY {
			// The path leaves the grid; the last accepted point is the
			// mouth.
			river.Mouth = pos
			river.HasMouth = true
			break
		}

		hNext := f.Sample(next.X, next.Y)
		if hNext > hCur {
			// Rivers only flow downhill.
			break
		}

		dist += cfg.StepSize
		pos = next
		hCur = hNext
		dir = heading
		river.Points = append(river.Points, t.pointAt(pos, dir, hCur, dist))

		if hNext < cfg.SinkHeight {
			river.Mouth = pos
			river.HasMouth = true
			break
		}
	}

	river.Length = dist
	if len(river.Points) < cfg.MinPoints {
		return terrain.River{}, false
	}
	return river, true
}

// pointAt derives the river profile for a path position: width, depth
// and flow grow monotonically with distance from the source until they
// reach their configured maxima.
func (t *Tracer) pointAt(pos, dir terrain.Vec2, elevation, dist float64) terrain.RiverPoint {
	cfg := t.cfg
	frac := dist / cfg.GrowthDistance
	if frac > 1 {
		frac = 1
	}
	return terrain.RiverPoint{
		Pos:       pos,
		Elevation: elevation,
		Width:     cfg.WidthBase + (cfg.WidthMax-cfg.WidthBase)*frac,
		Depth:     cfg.DepthBase + (cfg.DepthMax-cfg.DepthBase)*frac,
		FlowRate:  cfg.FlowBase + (cfg.FlowMax-cfg.FlowBase)*frac,
		FlowDir:   dir,
	}
}
