package fractal

import "fmt"

// Viewport is the rectangle of the complex plane sampled by the grid.
type Viewport struct {
	RealStart, RealEnd float64
	ImagStart, ImagEnd float64
}

// DefaultViewport covers [-2, 1] x [-2, 2].
var DefaultViewport = Viewport{
	RealStart: -2.0,
	RealEnd:   1.0,
	ImagStart: -2.0,
	ImagEnd:   2.0,
}

// Width returns the extent of the real axis.
func (v Viewport) Width() float64 {
	return v.RealEnd - v.RealStart
}

// Height returns the extent of the imaginary axis.
func (v Viewport) Height() float64 {
	return v.ImagEnd - v.ImagStart
}

// Mapper converts grid cells to points of a viewport.
type Mapper struct {
	Viewport Viewport
}

// DefaultMapper maps onto DefaultViewport.
func DefaultMapper() Mapper {
	return Mapper{Viewport: DefaultViewport}
}

// Point returns the complex point for the cell at (row, col) of a
// width x height grid. Columns run along the real axis and rows along
// the imaginary axis; the last index never reaches the end bound.
func (m Mapper) Point(row, col, width, height int) (Complex, error) {
	if width <= 0 || height <= 0 {
		return Complex{}, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, width, height)
	}
	if row < 0 || col < 0 || row >= height || col >= width {
		return Complex{}, fmt.Errorf("%w: row %d col %d in %dx%d", ErrCellOutOfRange, row, col, width, height)
	}
	return m.point(row, col, width, height), nil
}

// point maps without validation. Callers check the grid first.
func (m Mapper) point(row, col, width, height int) Complex {
	v := m.Viewport
	re := v.RealStart + float64((float64(col)/float64(width))*(v.RealEnd-v.RealStart))
	im := v.ImagStart + float64((float64(row)/float64(height))*(v.ImagEnd-v.ImagStart))
	return Complex{re, im}
}

// ValidateGrid checks that a grid has positive dimensions.
func ValidateGrid(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyGrid, width, height)
	}
	return nil
}
