package core

// Size describes the dimensions of a terrain grid.
type Size struct {
	W int
	H int
}

// Process is the contract a progressive generation process implements.
// Step performs one bounded batch of work and reports whether more work
// remains, so a host loop can interleave generation with its own frames.
type Process interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step() bool
	Done() bool
	Cells() []uint8
}

// Factory constructs a Process using an optional configuration map.
type Factory func(cfg map[string]string) Process

var processes = map[string]Factory{}

// Register adds a process factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	processes[name] = f
}

// Processes exposes the registry of available process factories.
func Processes() map[string]Factory {
	return processes
}
