package terrain

import "fmt"

// HeightField is a Height x Width grid of elevations stored row-major.
// It starts raw (straight from the generator) and becomes normalized after Normalize.
type HeightField struct {
	Width  int
	Height int
	values []float64
}

// NewHeightField allocates a zeroed field.
func NewHeightField(width, height int) *HeightField {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("terrain: negative field size %dx%d", width, height))
	}
	return &HeightField{
		Width:  width,
		Height: height,
		values: make([]float64, width*height),
	}
}

// FromRows builds a field from rows[y][x]. All rows must have the same length.
func FromRows(rows [][]float64) (*HeightField, error) {
	if len(rows) == 0 {
		return NewHeightField(0, 0), nil
	}
	f := NewHeightField(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != f.Width {
			return nil, fmt.Errorf("row %d has %d values, want %d", y, len(row), f.Width)
		}
		copy(f.values[y*f.Width:], row)
	}
	return f, nil
}

// index converts grid coordinates to the flat row-major offset.
func (f *HeightField) index(x, y int) int {
	return y*f.Width + x
}

// At returns the value at (x,y).
func (f *HeightField) At(x, y int) float64 {
	return f.values[f.index(x, y)]
}

// Set stores v at (x,y).
func (f *HeightField) Set(x, y int, v float64) {
	f.values[f.index(x, y)] = v
}

// Row returns the backing slice of row y. Writes go straight into the field.
func (f *HeightField) Row(y int) []float64 {
	start := f.index(0, y)
	return f.values[start : start+f.Width]
}

// Values returns the backing row-major slice.
func (f *HeightField) Values() []float64 {
	return f.values
}

// Len returns the number of cells.
func (f *HeightField) Len() int {
	return len(f.values)
}

// Clone returns a deep copy.
func (f *HeightField) Clone() *HeightField {
	c := &HeightField{Width: f.Width, Height: f.Height, values: make([]float64, len(f.values))}
	copy(c.values, f.values)
	return c
}

// Range returns the minimum and maximum cell values. An empty field yields (0,0).
func (f *HeightField) Range() (lo, hi float64) {
	if len(f.values) == 0 {
		return 0, 0
	}
	lo, hi = f.values[0], f.values[0]
	for _, v := range f.values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Normalize rescales every value to [0,1] using the field's own min and max.
// A flat field (max == min) is left untouched and Normalize returns false.
func (f *HeightField) Normalize() bool {
	lo, hi := f.Range()
	if !(hi > lo) {
		return false
	}
	span := hi - lo
	for i, v := range f.values {
		f.values[i] = (v - lo) / span
	}
	return true
}

// Equal reports whether both fields have the same shape and bit-identical values.
func (f *HeightField) Equal(o *HeightField) bool {
	if f.Width != o.Width || f.Height != o.Height || len(f.values) != len(o.values) {
		return false
	}
	for i := range f.values {
		if f.values[i] != o.values[i] {
			return false
		}
	}
	return true
}
