package erosion

import (
	"log"
	"math"

	"terraflow/pkg/core"
	"terraflow/pkg/terrain"
)

// Config holds the tunables of the droplet-based hydraulic erosion pass.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	Droplets int // droplets simulated per full pass
	MaxSteps int // lifetime cap per droplet

	Inertia       float64 // blend of previous direction vs. gradient, [0, 1]
	Capacity      float64 // sediment capacity factor
	MinSlope      float64 // slope floor when deriving capacity
	DepositRate   float64 // fraction of excess sediment dropped per step
	ErodeRate     float64 // fraction of spare capacity eroded per step
	EvaporateRate float64 // water lost per step
	Gravity       float64 // converts height drop into speed
	InitialWater  float64
	InitialSpeed  float64
	MinWater      float64 // droplet dies below this water volume
	BrushRadius   int     // erosion brush disc radius
}

// DefaultConfig returns the balanced hydraulic parameters.
func DefaultConfig() Config {
	return Config{
		Droplets:      10000,
		MaxSteps:      30,
		Inertia:       0.05,
		Capacity:      4.0,
		MinSlope:      0.01,
		DepositRate:   0.3,
		ErodeRate:     0.3,
		EvaporateRate: 0.01,
		Gravity:       4.0,
		InitialWater:  1.0,
		InitialSpeed:  1.0,
		MinWater:      0.005,
		BrushRadius:   3,
	}
}

// Engine simulates independent water droplets that erode and deposit as
// they flow downhill. Droplets are processed strictly one at a time:
// they all read and write the shared field, and serializing them keeps
// every single erosion event bounded and order-stable.
type Engine struct {
	cfg   Config
	geo   terrain.GeologySettings
	brush *Brush
	rng   *core.RNG
}

// NewEngine constructs a hydraulic engine. Degenerate configuration
// values are corrected to their minimum valid values with a logged
// warning rather than failing.
func NewEngine(cfg Config, geo terrain.GeologySettings, seed int64) *Engine {
	if cfg.BrushRadius < 1 {
		log.Printf("erosion: brush radius %d corrected to 1", cfg.BrushRadius)
		cfg.BrushRadius = 1
	}
	if cfg.MaxSteps < 1 {
		log.Printf("erosion: max steps %d corrected to 1", cfg.MaxSteps)
		cfg.MaxSteps = 1
	}
	if cfg.Droplets < 0 {
		cfg.Droplets = 0
	}
	if cfg.Inertia < 0 {
		cfg.Inertia = 0
	}
	if cfg.Inertia > 1 {
		cfg.Inertia = 1
	}
	return &Engine{
		cfg:   cfg,
		geo:   geo.Clamped(),
		brush: NewBrush(cfg.BrushRadius),
		rng:   core.NewRNG(seed),
	}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Reseed resets the droplet spawn sequence.
func (e *Engine) Reseed(seed int64) { e.rng = core.NewRNG(seed) }

// Erode runs the full configured droplet count against the field.
func (e *Engine) Erode(f *terrain.HeightField) {
	e.ErodeN(f, e.cfg.Droplets)
}

// ErodeN simulates up to n droplets against the field and returns the
// number actually simulated. The progressive pipeline calls this with
// bounded batches; a droplet always runs to completion within one call.
func (e *Engine) ErodeN(f *terrain.HeightField, n int) int {
	if n < 0 {
		n = 0
	}
	for i := 0; i < n; i++ {
		e.simulateDroplet(f)
	}
	return n
}

// simulateDroplet walks one droplet downhill until it leaves the grid,
// runs out of water, stalls on flat ground, or hits the step cap.
func (e *Engine) simulateDroplet(f *terrain.HeightField) {
	w := f.Width()
	h := f.Height()

	pos := terrain.Vec2{
		X: e.rng.Float64In(0, float64(w-1)),
		Y: e.rng.Float64In(0, float64(h-1)),
	}
	dir := terrain.Vec2{}
	speed := e.cfg.InitialSpeed
	water := e.cfg.InitialWater
	sediment := 0.0

	for step := 0; step < e.cfg.MaxSteps; step++ {
		gx, gy := f.Gradient(pos.X, pos.Y)

		// Momentum blend: keep some of the old direction, pull the rest
		// downhill along the negative gradient.
		dir.X = dir.X*e.cfg.Inertia - gx*(1-e.cfg.Inertia)
		dir.Y = dir.Y*e.cfg.Inertia - gy*(1-e.cfg.Inertia)
		l := dir.Len()
		if l < 1e-9 {
			// Flat cell and no momentum: the droplet stalls without
			// touching the field.
			break
		}
		dir.X /= l
		dir.Y /= l

		next := terrain.Vec2{X: pos.X + dir.X, Y: pos.Y + dir.Y}
		if next.X < 0 || next.Y < 0 || next.X > float64(w-1) || next.Y > float64(h-1) {
			break
		}

		hOld := f.Sample(pos.X, pos.Y)
		hNew := f.Sample(next.X, next.Y)
		dh := hNew - hOld

		capacity := math.Max(-dh, e.cfg.MinSlope) * speed * water * e.cfg.Capacity

		if sediment > capacity || dh > 0 {
			// Deposit: fill the pit completely when moving uphill,
			// otherwise drop a fraction of the excess. Spread across the
			// 2x2 cell via bilinear weights so mass is conserved.
			var deposit float64
			if dh > 0 {
				deposit = math.Min(dh, sediment)
			} else {
				deposit = (sediment - capacity) * e.cfg.DepositRate
			}
			sediment -= deposit
			f.AddAt(pos.X, pos.Y, deposit)
		} else {
			// Erode at most the height drop, so the droplet never digs a
			// hole deeper than the slope it is descending.
			want := math.Min((capacity-sediment)*e.cfg.ErodeRate, -dh)
			sediment += e.erodeAround(f, pos, want)
		}

		speed = math.Sqrt(math.Max(speed*speed-dh*e.cfg.Gravity, 0))
		water *= 1 - e.cfg.EvaporateRate
		pos = next

		if water < e.cfg.MinWater {
			break
		}
	}
}

// erodeAround removes up to want material through the brush disc centered
// on the droplet's cell, scaling each removal by local rock softness.
// Returns the material actually picked up.
func (e *Engine) erodeAround(f *terrain.HeightField, pos terrain.Vec2, want float64) float64 {
	if want <= 0 {
		return 0
	}
	cx := int(pos.X)
	cy := int(pos.Y)
	removed := 0.0
	for _, c := range e.brush.Cells() {
		x := cx + c.DX
		y := cy + c.DY
		if !f.InBounds(x, y) {
			continue
		}
		soft := 1 - e.geo.HardnessAt(x, y)
		removed += f.Take(x, y, want*c.Weight*soft)
	}
	return removed
}
