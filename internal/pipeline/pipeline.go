package pipeline

import (
	"log"

	"terraflow/internal/core"
	"terraflow/internal/erosion"
	"terraflow/internal/rivers"
	"terraflow/internal/worldgen"
	"terraflow/pkg/terrain"
)

// Stage identifies the pipeline pass currently running.
type Stage int

const (
	StageUninitialized Stage = iota
	StageHydraulic
	StageThermal
	StageRiverTrace
	StageRiverCarve
	StageDone
)

// String returns the stage name used in logs and stream frames.
func (s Stage) String() string {
	switch s {
	case StageUninitialized:
		return "uninitialized"
	case StageHydraulic:
		return "hydraulic"
	case StageThermal:
		return "thermal"
	case StageRiverTrace:
		return "river-trace"
	case StageRiverCarve:
		return "river-carve"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Pipeline runs the terrain passes in a fixed order over one shared
// height field: hydraulic erosion, thermal relaxation, river tracing and
// river carving. Work is split into bounded batches so a host loop can
// interleave generation with rendering or streaming; results are
// identical regardless of batch size.
type Pipeline struct {
	cfg Config

	field *terrain.HeightField
	geo   terrain.GeologySettings

	hydro   *erosion.Engine
	thermal *erosion.ThermalEngine
	tracer  *rivers.Tracer
	carver  *rivers.Carver

	stage     Stage
	cancelled bool

	dropletsDone int
	thermalIter  int
	thermalRow   int

	sources      []terrain.Vec2
	sourcesFound bool
	sourceIdx    int
	rivers       []terrain.River
	carveIdx     int

	display []uint8
}

// New returns a pipeline with the provided dimensions using defaults.
func New(w, h int) *Pipeline {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a pipeline configured from the provided options.
// The pipeline is unusable until Reset seeds the terrain.
func NewWithConfig(cfg Config) *Pipeline {
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.Height < 1 {
		cfg.Height = 1
	}
	if cfg.DropletBatch < 1 {
		cfg.DropletBatch = 1
	}
	if cfg.ThermalRowBatch < 1 {
		cfg.ThermalRowBatch = 1
	}
	return &Pipeline{
		cfg:     cfg,
		stage:   StageUninitialized,
		display: make([]uint8, cfg.Width*cfg.Height),
	}
}

// Name returns the process identifier.
func (p *Pipeline) Name() string { return "terraflow" }

// Size reports the grid dimensions.
func (p *Pipeline) Size() core.Size { return core.Size{W: p.cfg.Width, H: p.cfg.Height} }

// Cells exposes the current display buffer.
func (p *Pipeline) Cells() []uint8 { return p.display }

// Config returns the pipeline's effective configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Stage reports which pass the pipeline is currently in.
func (p *Pipeline) Stage() Stage { return p.stage }

// Field exposes the live height field. Callers that only read should
// prefer Snapshot.
func (p *Pipeline) Field() *terrain.HeightField { return p.field }

// Geology exposes the active hardness settings.
func (p *Pipeline) Geology() terrain.GeologySettings { return p.geo }

// Snapshot returns a read-only copy of the current height field.
func (p *Pipeline) Snapshot() *terrain.Snapshot { return p.field.Snapshot() }

// Rivers returns the rivers traced so far. The slice is shared; callers
// must not mutate it.
func (p *Pipeline) Rivers() []terrain.River { return p.rivers }

// Reset regenerates the base terrain from the seed and rewinds every
// stage. A zero seed falls back to the configured seed.
func (p *Pipeline) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = p.cfg.Seed
	}

	field, err := worldgen.HeightMap(p.cfg.Width, p.cfg.Height, effective, p.cfg.Noise)
	if err != nil {
		log.Printf("pipeline: heightmap generation failed: %v", err)
		field, _ = worldgen.Flat(p.cfg.Width, p.cfg.Height, 0)
	}
	p.field = field

	p.geo = terrain.GeologySettings{RockHardness: p.cfg.RockHardness}
	if p.cfg.UseHardnessMap {
		hard, err := worldgen.HardnessMap(p.cfg.Width, p.cfg.Height, effective, p.cfg.Hardness)
		if err != nil {
			log.Printf("pipeline: hardness map generation failed: %v", err)
		} else {
			p.geo.Hardness = hard
		}
	}

	p.hydro = erosion.NewEngine(p.cfg.Hydraulic, p.geo, effective)
	p.thermal = erosion.NewThermalEngine(p.cfg.Thermal, p.geo, p.cfg.Width, p.cfg.Height)
	p.tracer = rivers.NewTracer(p.cfg.Rivers)
	p.carver = rivers.NewCarver()

	p.cancelled = false
	p.dropletsDone = 0
	p.thermalIter = 0
	p.thermalRow = 0
	p.sources = nil
	p.sourcesFound = false
	p.sourceIdx = 0
	p.rivers = nil
	p.carveIdx = 0

	p.stage = StageUninitialized
	p.advance()
	p.rebuildDisplay()
}

// Cancel stops the pipeline at the next batch boundary. Work already
// applied to the field stays; the field remains valid.
func (p *Pipeline) Cancel() { p.cancelled = true }

// Done reports whether every enabled stage has finished.
func (p *Pipeline) Done() bool { return p.stage == StageDone }

// Step performs one bounded batch of work and reports whether more work
// remains.
func (p *Pipeline) Step() bool {
	if p.stage == StageUninitialized {
		p.Reset(p.cfg.Seed)
	}
	if p.cancelled {
		p.stage = StageDone
	}

	switch p.stage {
	case StageHydraulic:
		p.stepHydraulic()
	case StageThermal:
		p.stepThermal()
	case StageRiverTrace:
		p.stepRiverTrace()
	case StageRiverCarve:
		p.stepRiverCarve()
	case StageDone:
		return false
	}

	p.rebuildDisplay()
	return p.stage != StageDone
}

// Run blocks until the pipeline finishes or is cancelled.
func (p *Pipeline) Run() {
	for p.Step() {
	}
}

// Progress reports overall completion in [0, 1].
func (p *Pipeline) Progress() float64 {
	enabled := p.enabledStages()
	if len(enabled) == 0 {
		return 1
	}
	completed := 0.0
	for _, s := range enabled {
		switch {
		case s < p.stage:
			completed++
		case s == p.stage:
			completed += p.stageFraction(s)
		}
	}
	if p.stage == StageDone {
		return 1
	}
	frac := completed / float64(len(enabled))
	if frac > 1 {
		frac = 1
	}
	return frac
}

func (p *Pipeline) enabledStages() []Stage {
	var out []Stage
	if p.cfg.Stages.Hydraulic {
		out = append(out, StageHydraulic)
	}
	if p.cfg.Stages.Thermal {
		out = append(out, StageThermal)
	}
	if p.cfg.Stages.Rivers {
		out = append(out, StageRiverTrace)
	}
	if p.cfg.Stages.Carve {
		out = append(out, StageRiverCarve)
	}
	return out
}

func (p *Pipeline) stageFraction(s Stage) float64 {
	switch s {
	case StageHydraulic:
		total := p.cfg.Hydraulic.Droplets
		if total <= 0 {
			return 1
		}
		return float64(p.dropletsDone) / float64(total)
	case StageThermal:
		total := p.cfg.Thermal.Iterations
		if total <= 0 {
			return 1
		}
		return float64(p.thermalIter) / float64(total)
	case StageRiverTrace:
		if !p.sourcesFound || len(p.sources) == 0 {
			return 0
		}
		return float64(p.sourceIdx) / float64(len(p.sources))
	case StageRiverCarve:
		if len(p.rivers) == 0 {
			return 1
		}
		return float64(p.carveIdx) / float64(len(p.rivers))
	default:
		return 0
	}
}

func (p *Pipeline) stageEnabled(s Stage) bool {
	switch s {
	case StageHydraulic:
		return p.cfg.Stages.Hydraulic
	case StageThermal:
		return p.cfg.Stages.Thermal
	case StageRiverTrace:
		return p.cfg.Stages.Rivers
	case StageRiverCarve:
		return p.cfg.Stages.Carve
	default:
		return false
	}
}

func (p *Pipeline) advance() {
	for p.stage < StageDone {
		p.stage++
		if p.stage == StageDone || p.stageEnabled(p.stage) {
			return
		}
	}
}

func (p *Pipeline) stepHydraulic() {
	remaining := p.cfg.Hydraulic.Droplets - p.dropletsDone
	if remaining > p.cfg.DropletBatch {
		remaining = p.cfg.DropletBatch
	}
	if remaining > 0 {
		p.dropletsDone += p.hydro.ErodeN(p.field, remaining)
	}
	if p.dropletsDone >= p.cfg.Hydraulic.Droplets {
		p.advance()
	}
}

func (p *Pipeline) stepThermal() {
	iterations := p.thermal.Config().Iterations
	if p.thermalIter >= iterations {
		p.advance()
		return
	}
	y1 := p.thermalRow + p.cfg.ThermalRowBatch
	if y1 > p.cfg.Height {
		y1 = p.cfg.Height
	}
	p.thermal.SweepRows(p.field, p.thermalRow, y1)
	p.thermalRow = y1
	if p.thermalRow >= p.cfg.Height {
		p.thermal.Apply(p.field)
		p.thermalRow = 0
		p.thermalIter++
	}
	if p.thermalIter >= iterations {
		p.advance()
	}
}

func (p *Pipeline) stepRiverTrace() {
	if !p.sourcesFound {
		p.sources = p.tracer.FindSources(p.field)
		p.sourcesFound = true
		if len(p.sources) == 0 {
			p.advance()
		}
		return
	}
	if p.sourceIdx < len(p.sources) {
		if river, ok := p.tracer.TracePath(p.field, p.sources[p.sourceIdx]); ok {
			p.rivers = append(p.rivers, river)
		}
		p.sourceIdx++
	}
	if p.sourceIdx >= len(p.sources) {
		p.advance()
	}
}

func (p *Pipeline) stepRiverCarve() {
	if p.carveIdx < len(p.rivers) {
		p.carver.Carve(p.field, &p.rivers[p.carveIdx])
		p.carveIdx++
	}
	if p.carveIdx >= len(p.rivers) {
		p.advance()
	}
}

func init() {
	core.Register("terraflow", func(cfg map[string]string) core.Process {
		return NewWithConfig(FromMap(cfg))
	})
	core.Register("terraflow-gentle", func(cfg map[string]string) core.Process {
		c := GentleConfig()
		return NewWithConfig(mergeFromMap(c, cfg))
	})
	core.Register("terraflow-aggressive", func(cfg map[string]string) core.Process {
		c := AggressiveConfig()
		return NewWithConfig(mergeFromMap(c, cfg))
	})
	core.Register("terraflow-thermal", func(cfg map[string]string) core.Process {
		c := ThermalOnlyConfig()
		return NewWithConfig(mergeFromMap(c, cfg))
	})
	core.Register("terraflow-rivers", func(cfg map[string]string) core.Process {
		c := RiversOnlyConfig()
		return NewWithConfig(mergeFromMap(c, cfg))
	})
}

// mergeFromMap applies the map on top of a preset, keeping the preset's
// values wherever the map is silent.
func mergeFromMap(base Config, cfg map[string]string) Config {
	if len(cfg) == 0 {
		return base
	}
	parsed := FromMap(cfg)
	defaults := DefaultConfig()
	if parsed.Width != defaults.Width {
		base.Width = parsed.Width
	}
	if parsed.Height != defaults.Height {
		base.Height = parsed.Height
	}
	if parsed.Seed != defaults.Seed {
		base.Seed = parsed.Seed
	}
	return base
}
