package pipeline

import (
	"strconv"

	"terraflow/internal/erosion"
	"terraflow/internal/rivers"
	"terraflow/internal/worldgen"
)

// Stages toggles the individual passes of the pipeline. Disabled stages
// are skipped; the ordering of the remaining stages never changes.
type Stages struct {
	Hydraulic bool
	Thermal   bool
	Rivers    bool
	Carve     bool
}

// Config aggregates the settings of every pipeline stage.
type Config struct {
	Width  int
	Height int

	Seed int64

	Noise    worldgen.NoiseConfig
	Hardness worldgen.HardnessConfig
	// UseHardnessMap selects per-cell rock hardness from noise instead
	// of the uniform RockHardness value.
	UseHardnessMap bool
	RockHardness   float64

	Hydraulic erosion.Config
	Thermal   erosion.ThermalConfig
	Rivers    rivers.TracerConfig

	Stages Stages

	// DropletBatch is the number of droplets simulated per Step call
	// during the hydraulic stage.
	DropletBatch int
	// ThermalRowBatch is the number of grid rows swept per Step call
	// during the thermal stage.
	ThermalRowBatch int
}

// DefaultConfig returns the standard full pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Width:          256,
		Height:         256,
		Seed:           1337,
		Noise:          worldgen.DefaultNoiseConfig(),
		Hardness:       worldgen.DefaultHardnessConfig(),
		UseHardnessMap: false,
		RockHardness:   0.2,
		Hydraulic:      erosion.DefaultConfig(),
		Thermal:        erosion.DefaultThermalConfig(),
		Rivers:         rivers.DefaultTracerConfig(),
		Stages: Stages{
			Hydraulic: true,
			Thermal:   true,
			Rivers:    true,
			Carve:     true,
		},
		DropletBatch:    250,
		ThermalRowBatch: 64,
	}
}

// GentleConfig is the full pipeline with the soft-touch erosion presets.
func GentleConfig() Config {
	c := DefaultConfig()
	c.Hydraulic = erosion.GentleConfig()
	c.Thermal = erosion.GentleThermalConfig()
	return c
}

// AggressiveConfig is the full pipeline with the heavy erosion presets.
func AggressiveConfig() Config {
	c := DefaultConfig()
	c.Hydraulic = erosion.AggressiveConfig()
	c.Thermal = erosion.AggressiveThermalConfig()
	return c
}

// ThermalOnlyConfig runs just the slope-collapse pass.
func ThermalOnlyConfig() Config {
	c := DefaultConfig()
	c.Stages = Stages{Thermal: true}
	return c
}

// RiversOnlyConfig traces and carves rivers on the raw noise terrain.
func RiversOnlyConfig() Config {
	c := DefaultConfig()
	c.Stages = Stages{Rivers: true, Carve: true}
	return c
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["noise_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Noise.Scale = parsed
		}
	}
	if v, ok := cfg["noise_octaves"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Noise.Octaves = parsed
		}
	}
	if v, ok := cfg["use_hardness_map"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.UseHardnessMap = parsed
		}
	}
	if v, ok := cfg["rock_hardness"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.RockHardness = parsed
		}
	}
	if v, ok := cfg["droplets"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Hydraulic.Droplets = parsed
		}
	}
	if v, ok := cfg["droplet_steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Hydraulic.MaxSteps = parsed
		}
	}
	if v, ok := cfg["inertia"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Hydraulic.Inertia = parsed
		}
	}
	if v, ok := cfg["capacity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Hydraulic.Capacity = parsed
		}
	}
	if v, ok := cfg["erode_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Hydraulic.ErodeRate = parsed
		}
	}
	if v, ok := cfg["deposit_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Hydraulic.DepositRate = parsed
		}
	}
	if v, ok := cfg["evaporate_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed < 1 {
			c.Hydraulic.EvaporateRate = parsed
		}
	}
	if v, ok := cfg["brush_radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Hydraulic.BrushRadius = parsed
		}
	}
	if v, ok := cfg["talus"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Thermal.TalusThreshold = parsed
		}
	}
	if v, ok := cfg["transfer_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Thermal.TransferRate = parsed
		}
	}
	if v, ok := cfg["thermal_iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Thermal.Iterations = parsed
		}
	}
	if v, ok := cfg["max_rivers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Rivers.MaxRivers = parsed
		}
	}
	if v, ok := cfg["source_min_height"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Rivers.SourceMinHeight = parsed
		}
	}
	if v, ok := cfg["source_radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rivers.SourceRadius = parsed
		}
	}
	if v, ok := cfg["sink_height"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Rivers.SinkHeight = parsed
		}
	}
	if v, ok := cfg["meander_strength"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Rivers.MeanderStrength = parsed
		}
	}
	if v, ok := cfg["momentum"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Rivers.Momentum = parsed
		}
	}
	if v, ok := cfg["hydraulic"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Stages.Hydraulic = parsed
		}
	}
	if v, ok := cfg["thermal"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Stages.Thermal = parsed
		}
	}
	if v, ok := cfg["rivers"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Stages.Rivers = parsed
		}
	}
	if v, ok := cfg["carve"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Stages.Carve = parsed
		}
	}
	if v, ok := cfg["droplet_batch"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.DropletBatch = parsed
		}
	}
	if v, ok := cfg["thermal_row_batch"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ThermalRowBatch = parsed
		}
	}
	return c
}
