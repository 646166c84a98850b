// Package renderer paints the Mandelbrot set onto a display surface.
//
// The renderer walks a grid of cells in row-major order. For each cell it
// maps (row, col) to a point of the complex plane, runs the escape-time
// iterator and paints the palette entry for the result:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (row-major walk)     │
//	├─────────────────────────────────────────┤
//	│  fractal.Mapper │ fractal.Iterator      │
//	│  palette.Select                         │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ Stream (ANSI text)  │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	term.Init()
//	r := renderer.New(term)
//	stats, err := r.Draw(core.RectFromSize(0, 0, 39, 80))
package renderer
