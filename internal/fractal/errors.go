package fractal

import "errors"

// Precondition errors.
var (
	// ErrNoCoefficients indicates a polynomial with no terms.
	ErrNoCoefficients = errors.New("polynomial has no coefficients")

	// ErrEmptyGrid indicates a grid with zero or negative width or height.
	ErrEmptyGrid = errors.New("grid dimensions must be positive")

	// ErrCellOutOfRange indicates a cell outside the grid.
	ErrCellOutOfRange = errors.New("cell outside grid")
)
