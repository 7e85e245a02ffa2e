package pipeline

import (
	"strconv"

	"terraflow/internal/core"
)

func (p *Pipeline) Parameters() core.ParameterSnapshot {
	hydro := p.cfg.Hydraulic
	thermal := p.cfg.Thermal
	riv := p.cfg.Rivers
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", p.cfg.Width),
				intParam("h", "Height", p.cfg.Height),
				int64Param("seed", "Seed", p.cfg.Seed),
				floatParam("rock_hardness", "Rock hardness", p.cfg.RockHardness),
			},
		},
		{
			Name: "Hydraulic",
			Params: []core.Parameter{
				intParam("droplets", "Droplets", hydro.Droplets),
				intParam("droplet_steps", "Droplet lifetime", hydro.MaxSteps),
				floatParam("inertia", "Inertia", hydro.Inertia),
				floatParam("capacity", "Capacity factor", hydro.Capacity),
				floatParam("erode_rate", "Erode rate", hydro.ErodeRate),
				floatParam("deposit_rate", "Deposit rate", hydro.DepositRate),
				floatParam("evaporate_rate", "Evaporate rate", hydro.EvaporateRate),
				intParam("brush_radius", "Brush radius", hydro.BrushRadius),
			},
		},
		{
			Name: "Thermal",
			Params: []core.Parameter{
				floatParam("talus", "Talus threshold", thermal.TalusThreshold),
				floatParam("transfer_rate", "Transfer rate", thermal.TransferRate),
				intParam("thermal_iterations", "Iterations", thermal.Iterations),
			},
		},
		{
			Name: "Rivers",
			Params: []core.Parameter{
				intParam("max_rivers", "Max rivers", riv.MaxRivers),
				floatParam("source_min_height", "Source min height", riv.SourceMinHeight),
				intParam("source_radius", "Source radius", riv.SourceRadius),
				floatParam("sink_height", "Sink height", riv.SinkHeight),
				floatParam("momentum", "Momentum", riv.Momentum),
				floatParam("meander_strength", "Meander strength", riv.MeanderStrength),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// SetIntParameter updates an integer tunable. Changes apply on the next
// Reset; the running stages keep their current values.
func (p *Pipeline) SetIntParameter(key string, value int) bool {
	switch key {
	case "droplets":
		if value < 0 {
			return false
		}
		p.cfg.Hydraulic.Droplets = value
	case "droplet_steps":
		if value < 1 {
			return false
		}
		p.cfg.Hydraulic.MaxSteps = value
	case "brush_radius":
		if value < 1 {
			return false
		}
		p.cfg.Hydraulic.BrushRadius = value
	case "thermal_iterations":
		if value < 0 {
			return false
		}
		p.cfg.Thermal.Iterations = value
	case "max_rivers":
		if value < 0 {
			return false
		}
		p.cfg.Rivers.MaxRivers = value
	case "source_radius":
		if value < 1 {
			return false
		}
		p.cfg.Rivers.SourceRadius = value
	case "seed":
		p.cfg.Seed = int64(value)
	default:
		return false
	}
	return true
}

// SetFloatParameter updates a floating point tunable. Changes apply on
// the next Reset.
func (p *Pipeline) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "inertia":
		if value < 0 || value > 1 {
			return false
		}
		p.cfg.Hydraulic.Inertia = value
	case "capacity":
		if value <= 0 {
			return false
		}
		p.cfg.Hydraulic.Capacity = value
	case "erode_rate":
		if value < 0 {
			return false
		}
		p.cfg.Hydraulic.ErodeRate = value
	case "deposit_rate":
		if value < 0 {
			return false
		}
		p.cfg.Hydraulic.DepositRate = value
	case "evaporate_rate":
		if value < 0 || value >= 1 {
			return false
		}
		p.cfg.Hydraulic.EvaporateRate = value
	case "talus":
		if value < 0 {
			return false
		}
		p.cfg.Thermal.TalusThreshold = value
	case "transfer_rate":
		if value < 0 || value > 1 {
			return false
		}
		p.cfg.Thermal.TransferRate = value
	case "rock_hardness":
		if value < 0 || value > 1 {
			return false
		}
		p.cfg.RockHardness = value
	case "source_min_height":
		p.cfg.Rivers.SourceMinHeight = value
	case "sink_height":
		if value < 0 {
			return false
		}
		p.cfg.Rivers.SinkHeight = value
	case "momentum":
		if value < 0 || value > 1 {
			return false
		}
		p.cfg.Rivers.Momentum = value
	case "meander_strength":
		if value < 0 {
			return false
		}
		p.cfg.Rivers.MeanderStrength = value
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
