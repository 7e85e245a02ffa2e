package terrain

import (
	"fmt"
	"math"
)

// HeightField stores a 2D grid of elevation values in row-major order.
// Values are kept non-negative by every mutation path; callers that need
// a normalized field rescale explicitly via Normalize.
type HeightField struct {
	w, h int
	data []float64
}

// NewHeightField allocates a field with the given dimensions. Non-positive
// dimensions are a configuration error and fail fast.
func NewHeightField(w, h int) (*HeightField, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("terrain: invalid field dimensions %dx%d", w, h)
	}
	return &HeightField{w: w, h: h, data: make([]float64, w*h)}, nil
}

// Width reports the number of columns.
func (f *HeightField) Width() int { return f.w }

// Height reports the number of rows.
func (f *HeightField) Height() int { return f.h }

// Values exposes the backing slice so callers can read/write values directly.
func (f *HeightField) Values() []float64 { return f.data }

// Index returns the linear slice index for cell (x, y).
func (f *HeightField) Index(x, y int) int { return y*f.w + x }

// InBounds reports whether (x, y) addresses a valid cell.
func (f *HeightField) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.w && y < f.h
}

// At returns the elevation at a lattice cell. Out-of-range coordinates are
// clamped to the nearest valid cell.
func (f *HeightField) At(x, y int) float64 {
	x, y = f.clampCell(x, y)
	return f.data[y*f.w+x]
}

// Set writes an elevation value at a lattice cell. Negative values are
// clamped to zero; out-of-range coordinates are ignored.
func (f *HeightField) Set(x, y int, v float64) {
	if !f.InBounds(x, y) {
		return
	}
	if v < 0 {
		v = 0
	}
	f.data[y*f.w+x] = v
}

// AddAt deposits amount at a continuous position, distributing it across
// the 2x2 enclosing cells weighted by their bilinear coefficients. The
// four contributions sum to amount exactly, so deposition conserves mass.
// Removals clamp each cell at zero.
func (f *HeightField) AddAt(x, y float64, amount float64) {
	x, y = f.clampQuery(x, y)
	x0 := int(x)
	y0 := int(y)
	if x0 > f.w-2 {
		x0 = f.w - 2
	}
	if y0 > f.h-2 {
		y0 = f.h - 2
	}
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	tx := x - float64(x0)
	ty := y - float64(y0)

	f.addCell(x0, y0, amount*(1-tx)*(1-ty))
	f.addCell(x0+1, y0, amount*tx*(1-ty))
	f.addCell(x0, y0+1, amount*(1-tx)*ty)
	f.addCell(x0+1, y0+1, amount*tx*ty)
}

// Take removes up to amount from a lattice cell, clamping the cell at
// zero, and returns the quantity actually removed.
func (f *HeightField) Take(x, y int, amount float64) float64 {
	if !f.InBounds(x, y) || amount <= 0 {
		return 0
	}
	i := y*f.w + x
	if amount > f.data[i] {
		amount = f.data[i]
	}
	f.data[i] -= amount
	return amount
}

// CarveTo lowers a lattice cell to target if it is currently higher.
// Carving never raises terrain and never drives a cell negative, which
// makes repeated carves of the same profile a no-op.
func (f *HeightField) CarveTo(x, y int, target float64) {
	if !f.InBounds(x, y) {
		return
	}
	if target < 0 {
		target = 0
	}
	i := y*f.w + x
	if f.data[i] > target {
		f.data[i] = target
	}
}

// Sample returns a bilinearly interpolated elevation for a continuous
// position. Queries outside the field are clamped to the valid range.
func (f *HeightField) Sample(x, y float64) float64 {
	x, y = f.clampQuery(x, y)
	x0 := int(x)
	y0 := int(y)
	tx := x - float64(x0)
	ty := y - float64(y0)

	a := f.At(x0, y0)*(1-tx) + f.At(x0+1, y0)*tx
	b := f.At(x0, y0+1)*(1-tx) + f.At(x0+1, y0+1)*tx
	return a*(1-ty) + b*ty
}

// Gradient estimates the local slope at a continuous position via finite
// differences of the four surrounding lattice values. The returned vector
// points uphill; descend along its negation.
func (f *HeightField) Gradient(x, y float64) (gx, gy float64) {
	x, y = f.clampQuery(x, y)
	x0 := int(x)
	y0 := int(y)
	tx := x - float64(x0)
	ty := y - float64(y0)

	h00 := f.At(x0, y0)
	h10 := f.At(x0+1, y0)
	h01 := f.At(x0, y0+1)
	h11 := f.At(x0+1, y0+1)

	gx = (h10-h00)*(1-ty) + (h11-h01)*ty
	gy = (h01-h00)*(1-tx) + (h11-h10)*tx
	return gx, gy
}

// Fill sets every cell to the provided value (clamped at zero).
func (f *HeightField) Fill(v float64) {
	if v < 0 {
		v = 0
	}
	for i := range f.data {
		f.data[i] = v
	}
}

// Clone returns an independent copy of the field.
func (f *HeightField) Clone() *HeightField {
	c := &HeightField{w: f.w, h: f.h, data: make([]float64, len(f.data))}
	copy(c.data, f.data)
	return c
}

// MinMax scans the field and reports its extreme values.
func (f *HeightField) MinMax() (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, v := range f.data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Normalize rescales all values into [0, 1]. A constant field maps to zero.
func (f *HeightField) Normalize() {
	lo, hi := f.MinMax()
	span := hi - lo
	if span <= 0 {
		for i := range f.data {
			f.data[i] = 0
		}
		return
	}
	for i := range f.data {
		f.data[i] = (f.data[i] - lo) / span
	}
}

// Snapshot returns an immutable copy for downstream consumers. The
// snapshot shares no storage with the live field.
func (f *HeightField) Snapshot() *Snapshot {
	data := make([]float64, len(f.data))
	copy(data, f.data)
	return &Snapshot{w: f.w, h: f.h, data: data}
}

func (f *HeightField) addCell(x, y int, amount float64) {
	if !f.InBounds(x, y) {
		return
	}
	i := y*f.w + x
	f.data[i] += amount
	if f.data[i] < 0 {
		f.data[i] = 0
	}
}

func (f *HeightField) clampCell(x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= f.w {
		x = f.w - 1
	}
	if y < 0 {
		y = 0
	} else if y >= f.h {
		y = f.h - 1
	}
	return x, y
}

func (f *HeightField) clampQuery(x, y float64) (float64, float64) {
	maxX := float64(f.w - 1)
	maxY := float64(f.h - 1)
	if x < 0 {
		x = 0
	} else if x > maxX {
		x = maxX
	}
	if y < 0 {
		y = 0
	} else if y > maxY {
		y = maxY
	}
	return x, y
}

// Snapshot is a read-only view of a height field produced once a
// generation run completes.
type Snapshot struct {
	w, h int
	data []float64
}

// Width reports the number of columns.
func (s *Snapshot) Width() int { return s.w }

// Height reports the number of rows.
func (s *Snapshot) Height() int { return s.h }

// At returns the elevation at a lattice cell, clamping out-of-range
// coordinates to the nearest valid cell.
func (s *Snapshot) At(x, y int) float64 {
	if x < 0 {
		x = 0
	} else if x >= s.w {
		x = s.w - 1
	}
	if y < 0 {
		y = 0
	} else if y >= s.h {
		y = s.h - 1
	}
	return s.data[y*s.w+x]
}

// Values exposes the snapshot data. Callers must treat it as read-only.
func (s *Snapshot) Values() []float64 { return s.data }
