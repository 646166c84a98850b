package renderer

import (
	"fmt"
	"sync"
	"time"

	"github.com/dshills/mandelterm/internal/fractal"
	"github.com/dshills/mandelterm/internal/palette"
	"github.com/dshills/mandelterm/internal/renderer/backend"
	"github.com/dshills/mandelterm/internal/renderer/core"
)

// Stats summarizes one drawing pass.
type Stats struct {
	// Cells is the number of cells painted.
	Cells int

	// Members is the number of cells classified as in the set.
	Members int

	// Steps is the total number of iterations over all cells.
	Steps int

	// Duration is the wall time of the pass, including Show.
	Duration time.Duration
}

// Renderer draws the set onto a backend.
type Renderer struct {
	mu sync.Mutex

	backend  backend.Backend
	mapper   fractal.Mapper
	iterator fractal.Iterator
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMapper replaces the default coordinate mapper.
func WithMapper(m fractal.Mapper) Option {
	return func(r *Renderer) {
		r.mapper = m
	}
}

// WithIterator replaces the default iterator.
func WithIterator(it fractal.Iterator) Option {
	return func(r *Renderer) {
		r.iterator = it
	}
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts ...Option) *Renderer {
	r := &Renderer{
		backend:  b,
		mapper:   fractal.DefaultMapper(),
		iterator: fractal.DefaultIterator(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Backend returns the surface the renderer draws to.
func (r *Renderer) Backend() backend.Backend {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend
}

// SetBackend changes the surface the renderer draws to.
func (r *Renderer) SetBackend(b backend.Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend = b
}

// Cell computes the entry for one grid cell without painting it.
func (r *Renderer) Cell(row, col, width, height int) (palette.Entry, fractal.Result, error) {
	c, err := r.mapper.Point(row, col, width, height)
	if err != nil {
		return palette.Entry{}, fractal.Result{}, err
	}
	res := r.iterator.Iterate(c)
	return palette.Select(res), res, nil
}

// Draw renders the set into area. The grid is area's width by height and
// its top-left cell is painted at (area.Left, area.Top).
//
// Cells are computed and painted strictly one at a time, rows outer and
// columns inner. An empty area returns fractal.ErrEmptyGrid and paints
// nothing.
func (r *Renderer) Draw(area core.ScreenRect) (Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend == nil {
		return Stats{}, ErrNoBackend
	}

	width, height := area.Width(), area.Height()
	if err := fractal.ValidateGrid(width, height); err != nil {
		return Stats{}, err
	}

	start := time.Now()
	var stats Stats

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			c, err := r.mapper.Point(row, col, width, height)
			if err != nil {
				return stats, fmt.Errorf("mapping cell (%d, %d): %w", row, col, err)
			}
			res := r.iterator.Iterate(c)

			r.backend.SetCell(area.Left+col, area.Top+row, palette.Select(res).Cell())

			stats.Cells++
			stats.Steps += res.Steps
			if res.Member {
				stats.Members++
			}
		}
	}

	r.backend.Show()
	stats.Duration = time.Since(start)
	return stats, nil
}

// DrawPalette paints every palette entry in order on one row starting at
// (left, top), followed by the member style. It returns the number of
// cells painted.
func (r *Renderer) DrawPalette(top, left int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend == nil {
		return 0, ErrNoBackend
	}

	entries := palette.Entries()
	for i, e := range entries {
		r.backend.SetCell(left+i, top, e.Cell())
	}
	r.backend.SetCell(left+len(entries), top, palette.Black.Cell())

	r.backend.Show()
	return len(entries) + 1, nil
}
