package fractal

// MaxIterations is the iteration cap for the escape-time loop.
const MaxIterations = 80

// EscapeRadius is the modulus above which a point has escaped.
const EscapeRadius = 2.0

// Result is the outcome of iterating one point.
type Result struct {
	// Steps is the number of iterations run, in [1, MaxIterations].
	Steps int

	// Member is true if the orbit stayed within EscapeRadius.
	Member bool
}

// Iterator runs the escape-time recurrence.
type Iterator struct {
	// MaxIterations caps the loop. Values below 1 behave as 1.
	MaxIterations int
}

// DefaultIterator returns an iterator capped at MaxIterations.
func DefaultIterator() Iterator {
	return Iterator{MaxIterations: MaxIterations}
}

// Recurrence returns the polynomial evaluated each step for the point c:
// c + 0*z + i*z^2.
func Recurrence(c Complex) Polynomial {
	return Polynomial{c, Zero, I}
}

// Iterate runs the recurrence for c starting from z = 0.
//
// The loop body always runs at least once, so Steps is never 0.
func (it Iterator) Iterate(c Complex) Result {
	poly := Recurrence(c)
	z := Zero
	steps := 0
	d := 0.0

	for {
		// Recurrence never returns an empty polynomial.
		z, _ = poly.Eval(z)
		d = z.Mod()
		steps++
		// NaN fails d <= EscapeRadius and ends the loop as an escape.
		if !(steps < it.MaxIterations && d <= EscapeRadius) {
			break
		}
	}

	return Result{Steps: steps, Member: d <= EscapeRadius}
}

// Iterate runs the default iterator for c.
func Iterate(c Complex) Result {
	return DefaultIterator().Iterate(c)
}
