package backend

import (
	"sync"

	"github.com/dshills/mandelterm/internal/renderer/core"
)

// frame is a full surface of cells kept row by row. A row is dirty once
// any of its cells has been written since the last Show.
type frame struct {
	width, height int
	rows          [][]core.Cell
	dirty         []bool
}

func newFrame(width, height int) *frame {
	f := &frame{width: max(width, 0), height: max(height, 0)}
	f.rows = make([][]core.Cell, f.height)
	f.dirty = make([]bool, f.height)
	for y := range f.rows {
		f.rows[y] = blankRow(f.width)
	}
	return f
}

func blankRow(width int) []core.Cell {
	row := make([]core.Cell, width)
	empty := core.EmptyCell()
	for x := range row {
		row[x] = empty
	}
	return row
}

func (f *frame) contains(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

func (f *frame) set(x, y int, cell core.Cell) {
	if !f.contains(x, y) {
		return
	}
	f.rows[y][x] = cell
	f.dirty[y] = true
}

func (f *frame) get(x, y int) core.Cell {
	if !f.contains(x, y) {
		return core.EmptyCell()
	}
	return f.rows[y][x]
}

func (f *frame) clear() {
	for y := range f.rows {
		f.rows[y] = blankRow(f.width)
		f.dirty[y] = true
	}
}

// resized returns a frame of the new size holding the overlapping cells.
func (f *frame) resized(width, height int) *frame {
	next := newFrame(width, height)
	for y := 0; y < min(f.height, next.height); y++ {
		copy(next.rows[y], f.rows[y])
	}
	return next
}

// cellChange is a cell the wrapped backend has not shown yet.
type cellChange struct {
	x, y int
	cell core.Cell
}

// changes lists, in row-major order, the cells of dirty rows that differ
// from front. With full set every cell is listed.
func (f *frame) changes(front *frame, full bool) []cellChange {
	var out []cellChange
	for y, row := range f.rows {
		if !full && !f.dirty[y] {
			continue
		}
		for x, cell := range row {
			if full || !cell.Equals(front.rows[y][x]) {
				out = append(out, cellChange{x: x, y: y, cell: cell})
			}
		}
	}
	return out
}

// BufferedBackend wraps a Backend with a back frame that drawing writes
// to and a front frame holding what the wrapped backend last showed.
// Show forwards only the cells that differ, so repainting an unchanged
// picture sends nothing. It is safe for concurrent use.
//
// The frames are not resized from the wrapped backend's resize callback,
// which runs on whichever goroutine polls events. The event loop calls
// SyncSize when it handles EventResize instead.
type BufferedBackend struct {
	mu      sync.Mutex
	backend Backend
	back    *frame
	front   *frame
	full    bool
}

// NewBufferedBackend creates a buffered wrapper around a backend.
func NewBufferedBackend(backend Backend) *BufferedBackend {
	b := &BufferedBackend{backend: backend, back: newFrame(backend.Size())}
	b.front = newFrame(b.back.width, b.back.height)
	b.full = true
	return b
}

func (b *BufferedBackend) Init() error {
	if err := b.backend.Init(); err != nil {
		return err
	}
	b.SyncSize(b.backend.Size())
	return nil
}

// SyncSize adopts a new surface size, keeping the drawn cells that still
// fit. The next Show repaints every cell.
func (b *BufferedBackend) SyncSize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width == b.back.width && height == b.back.height {
		return
	}
	b.back = b.back.resized(width, height)
	b.front = newFrame(b.back.width, b.back.height)
	b.full = true
}

func (b *BufferedBackend) Shutdown() {
	b.backend.Shutdown()
}

func (b *BufferedBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.back.width, b.back.height
}

func (b *BufferedBackend) OnResize(callback func(width, height int)) {
	b.backend.OnResize(callback)
}

func (b *BufferedBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.back.set(x, y, cell)
}

func (b *BufferedBackend) GetCell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.back.get(x, y)
}

func (b *BufferedBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.back.clear()
}

// Show forwards the changed cells to the wrapped backend and shows it.
func (b *BufferedBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.back.changes(b.front, b.full) {
		b.backend.SetCell(ch.x, ch.y, ch.cell)
	}
	for y, dirty := range b.back.dirty {
		if dirty || b.full {
			copy(b.front.rows[y], b.back.rows[y])
			b.back.dirty[y] = false
		}
	}
	b.full = false
	b.backend.Show()
}

func (b *BufferedBackend) PollEvent() Event {
	return b.backend.PollEvent()
}

func (b *BufferedBackend) PostEvent(event Event) {
	b.backend.PostEvent(event)
}
