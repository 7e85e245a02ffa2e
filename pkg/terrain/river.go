package terrain

import "math"

// Vec2 is a 2D vector over the continuous field coordinate space.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalized returns v scaled to unit length, or the zero vector when v
// is too small to normalize.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns the counter-clockwise perpendicular of v.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// RiverPoint is one step along a traced river path. Elevation records
// the surface height at trace time; carving computes its targets from it
// so reapplying a carve is a no-op.
type RiverPoint struct {
	Pos       Vec2
	Elevation float64
	Width     float64
	Depth     float64
	FlowRate  float64
	FlowDir   Vec2
}

// River is an ordered downhill path from a source toward a mouth. Rivers
// are produced by tracing and consumed once by carving; exported copies
// are read-only snapshots.
type River struct {
	Source Vec2
	// Mouth is where the path reached a sink or left the field. HasMouth
	// is false when tracing stopped for any other reason.
	Mouth    Vec2
	HasMouth bool
	Points   []RiverPoint
	Length   float64
}
