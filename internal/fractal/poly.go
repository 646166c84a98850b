package fractal

// Polynomial is an ordered list of coefficients c0..ck.
type Polynomial []Complex

// Eval returns the sum of c[n] * z.PowInt(n) for every coefficient,
// folded left to right with Add.
func (p Polynomial) Eval(z Complex) (Complex, error) {
	if len(p) == 0 {
		return Complex{}, ErrNoCoefficients
	}

	sum := p[0].Mul(z.PowInt(0))
	for n := 1; n < len(p); n++ {
		sum = sum.Add(p[n].Mul(z.PowInt(n)))
	}
	return sum, nil
}
