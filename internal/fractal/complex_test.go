package fractal

import (
	"math"
	"testing"
)

var sampleValues = []Complex{
	{0, 0},
	{1, 0},
	{0, 1},
	{-1.5, 2.25},
	{3, -4},
	{0.1, 0.2},
	{-0.7436, 0.1318},
	{1e-300, -1e300},
}

func TestAddEqualOperandsDoubles(t *testing.T) {
	for _, z := range sampleValues {
		got := z.Add(z)
		want := Complex{2 * z.Re, 2 * z.Im}
		if !got.Equal(want) {
			t.Errorf("Add(%v, %v): expected %v, got %v", z, z, want, got)
		}
	}
}

func TestAddDistinct(t *testing.T) {
	got := Complex{1, 2}.Add(Complex{3, -5})
	if !got.Equal(Complex{4, -3}) {
		t.Errorf("expected (4, -3), got %v", got)
	}
}

func TestSubEqualOperandsIsZero(t *testing.T) {
	for _, z := range sampleValues {
		got := z.Sub(z)
		if !got.Equal(Zero) {
			t.Errorf("Sub(%v, %v): expected zero, got %v", z, z, got)
		}
	}

	// Infinite components would give NaN through plain subtraction.
	inf := Complex{math.Inf(1), 1}
	if got := inf.Sub(inf); math.IsNaN(got.Re) || math.IsNaN(got.Im) || !got.Equal(Zero) {
		t.Errorf("Sub(inf, inf): expected zero, got %v", got)
	}
}

func TestSubDistinct(t *testing.T) {
	got := Complex{1, 2}.Sub(Complex{3, -5})
	if !got.Equal(Complex{-2, 7}) {
		t.Errorf("expected (-2, 7), got %v", got)
	}
}

func TestSquare(t *testing.T) {
	got := Complex{3, 4}.Square()
	if !got.Equal(Complex{-7, 24}) {
		t.Errorf("expected (-7, 24), got %v", got)
	}
}

func TestMulSelfMatchesSquare(t *testing.T) {
	for _, z := range sampleValues {
		if got, want := z.Mul(z), z.Square(); !got.Equal(want) {
			t.Errorf("Mul(%v, %v): expected %v, got %v", z, z, want, got)
		}

		// The general product formula agrees with Square.
		generic := Complex{z.Re*z.Re - z.Im*z.Im, z.Re*z.Im + z.Re*z.Im}
		sq := z.Square()
		if math.Abs(generic.Re-sq.Re) > 1e-12*math.Max(1, math.Abs(sq.Re)) ||
			math.Abs(generic.Im-sq.Im) > 1e-12*math.Max(1, math.Abs(sq.Im)) {
			t.Errorf("generic product of %v: expected %v, got %v", z, sq, generic)
		}
	}
}

func TestMulDistinct(t *testing.T) {
	got := Complex{1, 2}.Mul(Complex{3, 4})
	if !got.Equal(Complex{-5, 10}) {
		t.Errorf("expected (-5, 10), got %v", got)
	}
}

func TestDivEqualOperandsIsOne(t *testing.T) {
	for _, z := range sampleValues {
		if got := z.Div(z); !got.Equal(One) {
			t.Errorf("Div(%v, %v): expected one, got %v", z, z, got)
		}
	}
}

func TestDivZeroByZeroIsOne(t *testing.T) {
	got := Zero.Div(Zero)
	if !got.Equal(One) {
		t.Errorf("expected (1, 0), got %v", got)
	}
}

func TestDivDistinct(t *testing.T) {
	got := Complex{1, 2}.Div(Complex{3, 4})
	if !got.Equal(Complex{0.44, 0.08}) {
		t.Errorf("expected (0.44, 0.08), got %v", got)
	}

	// Distinct operands use IEEE division, so dividing by zero is not guarded.
	got = Complex{1, 0}.Div(Zero)
	if !math.IsNaN(got.Re) || !math.IsNaN(got.Im) {
		t.Errorf("expected (NaN, NaN), got %v", got)
	}
}

func TestPowIntShortcuts(t *testing.T) {
	for _, z := range sampleValues {
		if got := z.PowInt(0); !got.Equal(One) {
			t.Errorf("PowInt(%v, 0): expected one, got %v", z, got)
		}
		if got := z.PowInt(1); !got.Equal(z) {
			t.Errorf("PowInt(%v, 1): expected %v, got %v", z, z, got)
		}
		if got := z.PowInt(2); !got.Equal(z.Square()) {
			t.Errorf("PowInt(%v, 2): expected %v, got %v", z, z.Square(), got)
		}
	}
}

func TestPowIntIgnoresBaseAboveTwo(t *testing.T) {
	for _, z := range sampleValues {
		for n := 3; n <= 6; n++ {
			base := Complex{float64(n), 0}
			got := z.PowInt(n)
			want := base.PowInt(n)
			if !got.Equal(want) {
				t.Errorf("PowInt(%v, %d): expected %v, got %v", z, n, want, got)
			}
		}
	}

	if got := (Complex{2.5, -1}).PowInt(3); !got.Equal(Complex{27, 0}) {
		t.Errorf("expected (27, 0), got %v", got)
	}
	if got := Zero.PowInt(5); !got.Equal(Complex{3125, 0}) {
		t.Errorf("expected (3125, 0), got %v", got)
	}
}

func TestPowIntNegativeIsOne(t *testing.T) {
	if got := (Complex{2, 3}).PowInt(-4); !got.Equal(One) {
		t.Errorf("expected one, got %v", got)
	}
}

func TestPowComplex(t *testing.T) {
	tests := []struct {
		name string
		exp  Complex
		want Complex
	}{
		{"one", Complex{1, 0}, Complex{0, 0}},
		{"two", Complex{2, 0}, Complex{math.Log(2) * 2, 0}},
		{"i", Complex{0, 1}, Complex{-math.Pi / 2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The base does not participate.
			for _, z := range []Complex{Zero, {5, -2}} {
				got := z.PowComplex(tt.exp)
				if math.Abs(got.Re-tt.want.Re) > 1e-15 || math.Abs(got.Im-tt.want.Im) > 1e-15 {
					t.Errorf("PowComplex(%v, %v): expected %v, got %v", z, tt.exp, tt.want, got)
				}
			}
		})
	}
}

func TestPowComplexZeroExponentPropagatesNaN(t *testing.T) {
	got := (Complex{2, 2}).PowComplex(Zero)
	if !math.IsNaN(got.Re) && !math.IsNaN(got.Im) {
		t.Errorf("expected NaN component, got %v", got)
	}
}

func TestPolar(t *testing.T) {
	got := Polar(2, math.Pi/2)
	if math.Abs(got.Re) > 1e-15 || got.Im != 2 {
		t.Errorf("expected (0, 2), got %v", got)
	}
}

func TestModArg(t *testing.T) {
	z := Complex{3, 4}
	if z.Mod() != 5 {
		t.Errorf("expected modulus 5, got %v", z.Mod())
	}
	if got := (Complex{0, 1}).Arg(); got != math.Pi/2 {
		t.Errorf("expected pi/2, got %v", got)
	}
	if got := (Complex{-1, 0}).Arg(); got != math.Pi {
		t.Errorf("expected pi, got %v", got)
	}
}

func TestEqualSignedZero(t *testing.T) {
	if !(Complex{0, 0}).Equal(Complex{math.Copysign(0, -1), 0}) {
		t.Error("-0 should equal 0")
	}
	nan := Complex{math.NaN(), 0}
	if nan.Equal(nan) {
		t.Error("NaN should not equal itself")
	}
}

func TestString(t *testing.T) {
	if got := (Complex{1.5, -2}).String(); got != "(1.5, -2)" {
		t.Errorf("expected (1.5, -2), got %q", got)
	}
}
