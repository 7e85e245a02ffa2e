package erosion

// GentleConfig returns light weathering that keeps the input field's
// large shapes intact.
func GentleConfig() Config {
	cfg := DefaultConfig()
	cfg.Droplets = 4000
	cfg.ErodeRate = 0.15
	cfg.DepositRate = 0.15
	cfg.EvaporateRate = 0.02
	return cfg
}

// AggressiveConfig returns heavy erosion that carves deep valleys and
// builds broad sediment fans.
func AggressiveConfig() Config {
	cfg := DefaultConfig()
	cfg.Droplets = 40000
	cfg.MaxSteps = 60
	cfg.Capacity = 8.0
	cfg.ErodeRate = 0.5
	cfg.DepositRate = 0.2
	cfg.EvaporateRate = 0.008
	return cfg
}

// GentleThermalConfig returns slope collapse for only the steepest scarps.
func GentleThermalConfig() ThermalConfig {
	cfg := DefaultThermalConfig()
	cfg.TalusThreshold = 0.02
	cfg.TransferRate = 0.1
	cfg.Iterations = 2
	return cfg
}

// AggressiveThermalConfig returns scree-heavy collapse on gentle slopes.
func AggressiveThermalConfig() ThermalConfig {
	cfg := DefaultThermalConfig()
	cfg.TalusThreshold = 0.005
	cfg.TransferRate = 0.5
	cfg.Iterations = 8
	return cfg
}
