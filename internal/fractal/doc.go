// Package fractal provides the numeric core of the Mandelbrot renderer.
//
// It contains a small complex arithmetic type, a polynomial evaluator,
// the escape-time iterator and the mapping from grid cells to points of
// the complex plane.
//
// The arithmetic is deliberately not the textbook one. Binary operations
// take an explicit branch when both operands are value-equal, and PowInt
// exponentiates the constant (n, 0) instead of its base for n >= 3. The
// iterator is built on top of these operations, so the picture it produces
// depends on them bit for bit. Do not replace them with math/cmplx.
package fractal
